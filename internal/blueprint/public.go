package blueprint

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apphttp "github.com/MKhiriev/go-web-skeleton/internal/handler/http"
	"github.com/MKhiriev/go-web-skeleton/internal/extension"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
	"github.com/MKhiriev/go-web-skeleton/internal/utils"
)

const homeCacheTTL = 5 * time.Minute

// Public serves the pages available to everyone.
var Public = Blueprint{
	Name:      "public",
	URLPrefix: "/",
	Register:  registerPublic,
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

type contactForm struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,max=5000"`
}

type publicHandler struct {
	deps Deps
}

func registerPublic(r chi.Router, deps Deps) {
	h := &publicHandler{deps: deps}

	r.With(deps.Extensions.Cache.Cached(homeCacheTTL)).
		Get("/", apphttp.Handle(h.home, deps.Respond))
	r.Get("/about", apphttp.Handle(h.about, deps.Respond))
	r.Post("/contact", apphttp.Handle(h.contact, deps.Respond))
	r.Get("/healthz", apphttp.Handle(h.healthz, deps.Respond))
}

func (h *publicHandler) home(w http.ResponseWriter, r *http.Request) error {
	return render(w, h.deps, http.StatusOK, "home.html", nil)
}

func (h *publicHandler) about(w http.ResponseWriter, r *http.Request) error {
	token, err := h.deps.Extensions.CSRF.GenerateToken(w, r)
	if err != nil {
		return err
	}

	return render(w, h.deps, http.StatusOK, "about.html", struct {
		CSRFToken string
	}{CSRFToken: token})
}

// contact mails the submitted form to MAIL_DEFAULT_SENDER. The CSRF token is
// checked by the CSRF middleware before this handler runs.
func (h *publicHandler) contact(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return httperr.New(http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidContactForm, err))
	}

	form := contactForm{
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Message: strings.TrimSpace(r.PostForm.Get("message")),
	}
	if err := formValidator.Struct(form); err != nil {
		return httperr.New(http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidContactForm, err))
	}

	err := h.deps.Extensions.Mail.Send(r.Context(), extension.Message{
		To:      []string{h.deps.Config.Mail.DefaultSender},
		ReplyTo: form.Email,
		Subject: "Contact form: " + form.Name,
		Body:    form.Message,
	})
	if err != nil {
		return err
	}

	logger.FromRequest(r).Info().Str("from", form.Email).Msg("contact message sent")

	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

func (h *publicHandler) healthz(w http.ResponseWriter, r *http.Request) error {
	return utils.WriteJSON(w, map[string]string{
		"status":  "ok",
		"version": h.deps.Config.App.Version,
	}, http.StatusOK)
}
