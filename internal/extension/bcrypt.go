package extension

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// Bcrypt hashes and checks passwords with the configured cost.
type Bcrypt struct {
	cost int
}

func NewBcrypt() *Bcrypt {
	return &Bcrypt{}
}

func (b *Bcrypt) Name() string { return "bcrypt" }

// InitApp takes the cost from SECURITY_BCRYPT_LOG_ROUNDS.
func (b *Bcrypt) InitApp(cfg *config.StructuredConfig, log *logger.Logger) error {
	rounds := cfg.Security.BcryptLogRounds
	if rounds < bcrypt.MinCost || rounds > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt log rounds %d not in [%d, %d]",
			ErrInvalidOption, rounds, bcrypt.MinCost, bcrypt.MaxCost)
	}

	b.cost = rounds
	log.Debug().Int("cost", rounds).Msg("bcrypt initialized")
	return nil
}

// GeneratePasswordHash returns the bcrypt hash of password.
func (b *Bcrypt) GeneratePasswordHash(password string) (string, error) {
	if b.cost == 0 {
		return "", ErrNotInitialized
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. A malformed hash
// never matches.
func (b *Bcrypt) CheckPasswordHash(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
