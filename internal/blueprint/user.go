package blueprint

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apphttp "github.com/MKhiriev/go-web-skeleton/internal/handler/http"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
)

const membersRealm = `Basic realm="members", charset="UTF-8"`

// User serves the members area guarded by HTTP Basic auth. Any user name is
// accepted; the password is checked against APP_MEMBERS_PASSWORD_HASH.
var User = Blueprint{
	Name:      "user",
	URLPrefix: "/users",
	Register:  registerUser,
}

type userHandler struct {
	deps Deps
}

func registerUser(r chi.Router, deps Deps) {
	h := &userHandler{deps: deps}

	r.Get("/", apphttp.Handle(h.members, deps.Respond))
}

func (h *userHandler) members(w http.ResponseWriter, r *http.Request) error {
	username, password, ok := r.BasicAuth()
	if !ok || !h.deps.Extensions.Bcrypt.CheckPasswordHash(h.deps.Config.App.MembersPasswordHash, password) {
		w.Header().Set("WWW-Authenticate", membersRealm)
		return httperr.New(http.StatusUnauthorized, ErrUnauthorized)
	}

	return render(w, h.deps, http.StatusOK, "members.html", struct {
		Username string
	}{Username: username})
}
