package extension

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

func testConfig() *config.StructuredConfig {
	cfg := config.Defaults()
	cfg.App.SecretKey = "test-secret"
	cfg.App.Env = config.EnvTesting
	cfg.Security.BcryptLogRounds = 4
	cfg.Mail.SuppressSend = true
	return &cfg
}

type recordingResponder struct {
	errs []error
}

func (rr *recordingResponder) respond(w http.ResponseWriter, r *http.Request, err error) {
	rr.errs = append(rr.errs, err)
	he := httperr.From(err)
	http.Error(w, http.StatusText(he.Code), he.Code)
}

func TestSet_AllInInitializationOrder(t *testing.T) {
	set := NewSet()

	var names []string
	for _, ext := range set.All() {
		names = append(names, ext.Name())
	}

	assert.Equal(t, []string{"bcrypt", "cache", "csrf", "debug_toolbar", "static_digest", "mail"}, names)
}

func TestSet_InitAndClose(t *testing.T) {
	set := NewSet()
	cfg := testConfig()
	cfg.Assets.Dir = t.TempDir()

	for _, ext := range set.All() {
		require.NoError(t, ext.InitApp(cfg, logger.Nop()), ext.Name())
	}

	assert.NoError(t, set.Close())
}

func TestSet_OptionalInterfaces(t *testing.T) {
	set := NewSet()

	var _ Middleware = set.CSRF
	var _ Middleware = set.DebugToolbar
	var _ Mounter = set.DebugToolbar
	var _ Mounter = set.StaticDigest
	var _ Closer = set.Cache

	_, isMounter := Extension(set.Mail).(Mounter)
	assert.False(t, isMounter)
}
