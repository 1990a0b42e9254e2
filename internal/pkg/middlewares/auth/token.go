package auth

import (
	"fmt"
	"time"

	"dispatch/internal/apperr"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrMissingToken = apperr.New(apperr.ErrUnauthenticated, "missing bearer token")
	ErrInvalidToken = apperr.New(apperr.ErrUnauthenticated, "invalid bearer token")
)

// Verifier проверяет HS256 токены платформы. sub это uuid пользователя.
type Verifier struct {
	secret []byte
	clock  Clock
}

func NewVerifier(secret string, clock Clock) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		clock:  clock,
	}
}

func (v *Verifier) Verify(raw string) (uuid.UUID, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, v.secret),
		jwt.WithClock(jwt.ClockFunc(v.clock.Now)),
		jwt.WithValidate(true),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(token.Subject())
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	return userID, nil
}

// Issue выпускает токен, им пользуются симулятор райдера и тесты.
func (v *Verifier) Issue(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := v.clock.Now()

	token, err := jwt.NewBuilder().
		Subject(userID.String()).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, v.secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}
