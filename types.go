package fittrack

import (
	"context"
	"fmt"
)

// Logger is the minimal logging surface the package needs. Trailing
// args are key-value attribute pairs. cmd/server wires a go-logger
// instance; tests usually leave the default.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth and cookie options. It is passed explicitly into
// every component that needs the signing secret so tests can inject
// fixed values.
type Config interface {
	GetSigningKey() string
	// GetTokenExpiration is the access token validity window in minutes.
	GetTokenExpiration() int
	// GetRefreshExpiration is the refresh token validity window in minutes.
	GetRefreshExpiration() int
	GetCookieName() string
	GetRefreshCookieName() string
	GetIssuer() string
	GetDefaultAdminEmail() string
	GetDefaultAdminPassword() string
	// IsProduction controls the Secure attribute on session cookies.
	IsProduction() bool
}

// Authenticator holds methods to deal with admin authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	RefreshToken(ctx context.Context, email string) (string, error)
	SessionFromToken(token string) (*AdminClaims, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// TokenService mints and verifies session tokens
type TokenService interface {
	Generate(admin *Admin) (string, error)
	GenerateRefresh(admin *Admin) (string, error)
	Validate(token string) (*AdminClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println("[ERR] FITTRACK " + withAttrs(msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println("[WRN] FITTRACK " + withAttrs(msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println("[INF] FITTRACK " + withAttrs(msg, args))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println("[DBG] FITTRACK " + withAttrs(msg, args))
}

// withAttrs renders trailing key-value pairs the way slog would,
// so the fallback logger stays readable without a formatting contract.
func withAttrs(msg string, args []any) string {
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			msg += fmt.Sprintf(" %v=%v", args[i], args[i+1])
		} else {
			msg += fmt.Sprintf(" %v", args[i])
		}
	}
	return msg
}
