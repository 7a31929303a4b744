package extension

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

func newCSRF(t *testing.T, disabled bool) *CSRFProtect {
	t.Helper()

	cfg := testConfig()
	cfg.Security.DisableCSRF = disabled

	c := NewCSRFProtect()
	require.NoError(t, c.InitApp(cfg, logger.Nop()))
	return c
}

// issueToken returns a token and the session cookie it is bound to.
func issueToken(t *testing.T, c *CSRFProtect) (string, *http.Cookie) {
	t.Helper()

	rr := httptest.NewRecorder()
	token, err := c.GenerateToken(rr, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.NoError(t, err)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, csrfSessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	return token, cookies[0]
}

func TestCSRF_GenerateTokenReusesSession(t *testing.T) {
	c := newCSRF(t, false)
	_, cookie := issueToken(t, c)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()

	token, err := c.GenerateToken(rr, req)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, rr.Result().Cookies(), "existing session cookie is kept")
}

func TestCSRF_Validate(t *testing.T) {
	c := newCSRF(t, false)
	token, cookie := issueToken(t, c)
	_, otherCookie := issueToken(t, c)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    csrfIssuer,
		Subject:   cookie.Value,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredToken, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:  csrfIssuer,
		Subject: cookie.Value,
	})
	forgedToken, err := forged.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		form    string
		cookie  *http.Cookie
		wantErr error
	}{
		{name: "valid header token", header: token, cookie: cookie},
		{name: "valid form token", form: token, cookie: cookie},
		{name: "missing token", cookie: cookie, wantErr: ErrCSRFTokenMissing},
		{name: "missing session cookie", header: token, wantErr: ErrCSRFTokenInvalid},
		{name: "token of another session", header: token, cookie: otherCookie, wantErr: ErrCSRFTokenInvalid},
		{name: "expired token", header: expiredToken, cookie: cookie, wantErr: ErrCSRFTokenInvalid},
		{name: "forged signature", header: forgedToken, cookie: cookie, wantErr: ErrCSRFTokenInvalid},
		{name: "garbage", header: "not.a.jwt", cookie: cookie, wantErr: ErrCSRFTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.form != "" {
				body := url.Values{CSRFFormField: {tt.form}}.Encode()
				req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(http.MethodPost, "/contact", nil)
			}
			if tt.header != "" {
				req.Header.Set(CSRFHeader, tt.header)
			}
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			err := c.Validate(req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCSRF_Middleware(t *testing.T) {
	tests := []struct {
		name       string
		disabled   bool
		method     string
		withToken  bool
		wantStatus int
	}{
		{name: "GET passes without token", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "POST without token is rejected", method: http.MethodPost, wantStatus: http.StatusBadRequest},
		{name: "DELETE without token is rejected", method: http.MethodDelete, wantStatus: http.StatusBadRequest},
		{name: "POST with token passes", method: http.MethodPost, withToken: true, wantStatus: http.StatusOK},
		{name: "disabled protection passes POST", disabled: true, method: http.MethodPost, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCSRF(t, tt.disabled)
			rec := &recordingResponder{}

			handler := c.Middleware(rec.respond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/contact", nil)
			if tt.withToken {
				token, cookie := issueToken(t, c)
				req.Header.Set(CSRFHeader, token)
				req.AddCookie(cookie)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusBadRequest {
				require.Len(t, rec.errs, 1)
				assert.ErrorIs(t, rec.errs[0], ErrCSRFTokenMissing)
			}
		})
	}
}

func TestCSRF_InitAppNeedsSecret(t *testing.T) {
	cfg := testConfig()
	cfg.App.SecretKey = ""

	assert.ErrorIs(t, NewCSRFProtect().InitApp(cfg, logger.Nop()), ErrInvalidOption)
}

func TestCSRF_NotInitialized(t *testing.T) {
	c := NewCSRFProtect()

	_, err := c.GenerateToken(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, c.Validate(httptest.NewRequest(http.MethodPost, "/", nil)), ErrNotInitialized)
}
