package extension

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
	"github.com/MKhiriev/go-web-skeleton/internal/utils"
)

const (
	// CSRFHeader is the request header carrying the token.
	CSRFHeader = "X-CSRFToken"
	// CSRFFormField is the form field carrying the token.
	CSRFFormField = "csrf_token"

	csrfSessionCookie = "csrf_session"
	csrfIssuer        = "csrf"
)

// CSRFProtect issues and validates CSRF tokens. A token is an HS256 JWT whose
// subject is the random session id kept in the csrf_session cookie, so a
// token is only valid together with the cookie it was issued for.
type CSRFProtect struct {
	secret    []byte
	timeLimit time.Duration
	disabled  bool
	secure    bool
	log       *logger.Logger
}

func NewCSRFProtect() *CSRFProtect {
	return &CSRFProtect{}
}

func (c *CSRFProtect) Name() string { return "csrf" }

func (c *CSRFProtect) InitApp(cfg *config.StructuredConfig, log *logger.Logger) error {
	if cfg.App.SecretKey == "" {
		return fmt.Errorf("%w: csrf protection needs a secret key", ErrInvalidOption)
	}

	c.secret = []byte(cfg.App.SecretKey)
	c.timeLimit = cfg.Security.CSRFTimeLimit
	c.disabled = cfg.Security.DisableCSRF
	c.secure = cfg.App.Env == config.EnvProduction
	c.log = log

	log.Debug().Bool("disabled", c.disabled).Msg("csrf protection initialized")
	return nil
}

// GenerateToken returns a token for the session of r, starting a new session
// cookie on w when r has none.
func (c *CSRFProtect) GenerateToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if c.secret == nil {
		return "", ErrNotInitialized
	}

	sessionID := c.sessionID(r)
	if sessionID == "" {
		sessionID = utils.NewID()
		http.SetCookie(w, &http.Cookie{
			Name:     csrfSessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:   csrfIssuer,
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if c.timeLimit > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.timeLimit))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing CSRF token: %w", err)
	}
	return token, nil
}

// Validate checks the token carried by r against its session cookie.
func (c *CSRFProtect) Validate(r *http.Request) error {
	if c.secret == nil {
		return ErrNotInitialized
	}

	token := r.Header.Get(CSRFHeader)
	if token == "" {
		token = r.PostFormValue(CSRFFormField)
	}
	if token == "" {
		return ErrCSRFTokenMissing
	}

	sessionID := c.sessionID(r)
	if sessionID == "" {
		return fmt.Errorf("%w: no session cookie", ErrCSRFTokenInvalid)
	}

	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(csrfIssuer),
		jwt.WithSubject(sessionID),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCSRFTokenInvalid, err)
	}
	return nil
}

// Middleware rejects state-changing requests without a valid token with 400.
func (c *CSRFProtect) Middleware(respond httperr.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.disabled || !isStateChanging(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if err := c.Validate(r); err != nil {
				logger.FromRequest(r).Debug().Err(err).Msg("csrf validation failed")
				respond(w, r, httperr.New(http.StatusBadRequest, err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (c *CSRFProtect) sessionID(r *http.Request) string {
	cookie, err := r.Cookie(csrfSessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
