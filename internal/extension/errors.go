package extension

import "errors"

// ErrNotInitialized is returned by extension methods called before InitApp.
var ErrNotInitialized = errors.New("extension is not initialized")

// ErrInvalidOption is returned by InitApp when a setting is out of the range
// the extension supports.
var ErrInvalidOption = errors.New("invalid extension option")

var (
	// ErrCSRFTokenMissing is reported when a state-changing request carries no
	// CSRF token.
	ErrCSRFTokenMissing = errors.New("the CSRF token is missing")

	// ErrCSRFTokenInvalid is reported when the CSRF token is expired, forged
	// or bound to another session.
	ErrCSRFTokenInvalid = errors.New("the CSRF token is invalid")
)

// ErrNoRecipients is returned by Mail.Send for a message without recipients.
var ErrNoRecipients = errors.New("mail message has no recipients")
