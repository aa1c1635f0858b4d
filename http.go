package fittrack

import (
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/fittrack/fittrack/middleware/jwtware"
)

// Default cookie names; overridable through Config.
const (
	DefaultCookieName        = "fittrack_token"
	DefaultRefreshCookieName = "fittrack_refresh"
)

// RouteAuthenticator glues the Authenticator to fiber: it owns the
// session cookies and the middleware that gates administrative routes.
type RouteAuthenticator struct {
	auth                  Authenticator
	cfg                   Config
	cookieDuration        time.Duration
	refreshCookieDuration time.Duration
	Logger                Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := 20 * time.Minute
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Minute
	}

	refreshCookieDuration := cookieDuration
	if cfg.GetRefreshExpiration() > 0 {
		refreshCookieDuration = time.Duration(cfg.GetRefreshExpiration()) * time.Minute
	}

	return &RouteAuthenticator{
		cfg:                   cfg,
		auth:                  auther,
		Logger:                defLogger{},
		cookieDuration:        cookieDuration,
		refreshCookieDuration: refreshCookieDuration,
	}, nil
}

func (a RouteAuthenticator) CookieName() string {
	if name := a.cfg.GetCookieName(); name != "" {
		return name
	}
	return DefaultCookieName
}

func (a RouteAuthenticator) RefreshCookieName() string {
	if name := a.cfg.GetRefreshCookieName(); name != "" {
		return name
	}
	return DefaultRefreshCookieName
}

// Login verifies credentials and, on success, sets the access and
// refresh cookies on the response.
func (a *RouteAuthenticator) Login(c *fiber.Ctx, email, password string) error {
	token, err := a.auth.Login(c.Context(), email, password)
	if err != nil {
		return err
	}

	a.setCookieToken(c, a.CookieName(), token, a.cookieDuration)

	refresh, err := a.auth.RefreshToken(c.Context(), email)
	if err != nil {
		a.Logger.Error("Login could not mint refresh token", "error", err)
		return err
	}

	a.setCookieToken(c, a.RefreshCookieName(), refresh, a.refreshCookieDuration)
	return nil
}

// Logout clears both session cookies; the server keeps no state.
func (a *RouteAuthenticator) Logout(c *fiber.Ctx) {
	a.cookieDel(c, a.CookieName())
	a.cookieDel(c, a.RefreshCookieName())
}

// RefreshSession exchanges the refresh cookie for a fresh access cookie.
func (a *RouteAuthenticator) RefreshSession(c *fiber.Ctx) error {
	raw := c.Cookies(a.RefreshCookieName())
	if raw == "" {
		return ErrUnableToFindSession
	}

	token, err := a.auth.Refresh(c.Context(), raw)
	if err != nil {
		return err
	}

	a.setCookieToken(c, a.CookieName(), token, a.cookieDuration)
	return nil
}

// ProtectedRoute returns the middleware gating administrative routes.
// The token is read from the session cookie, with an Authorization
// header fallback for non-browser clients.
func (a *RouteAuthenticator) ProtectedRoute(errorHandler func(*fiber.Ctx, error) error) fiber.Handler {
	return jwtware.New(jwtware.Config{
		ErrorHandler: errorHandler,
		ContextKey:   a.CookieName(),
		SuccessHandler: func(c *fiber.Ctx) error {
			// expose the claims below the HTTP layer too
			if claims, ok := c.Locals(a.CookieName()).(*AdminClaims); ok {
				c.SetUserContext(WithClaimsContext(c.UserContext(), claims))
			}
			return c.Next()
		},
		TokenLookup:    "cookie:" + a.CookieName() + ",header:Authorization",
		AuthScheme:     "Bearer",
		TokenValidator: sessionValidator{auth: a.auth},
	})
}

// GetSession returns the verified claims the middleware stored for this
// request.
func (a *RouteAuthenticator) GetSession(c *fiber.Ctx) (*AdminClaims, error) {
	local := c.Locals(a.CookieName())
	if local == nil {
		return nil, ErrUnableToFindSession
	}

	claims, ok := local.(*AdminClaims)
	if !ok || claims == nil {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (a *RouteAuthenticator) setCookieToken(c *fiber.Ctx, name, val string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		Expires:  time.Now().Add(duration),
		MaxAge:   int(duration / time.Second),
		HTTPOnly: true,
		Secure:   a.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (a *RouteAuthenticator) cookieDel(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   a.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// sessionValidator adapts the Authenticator to the middleware's
// validator interface.
type sessionValidator struct {
	auth Authenticator
}

func (v sessionValidator) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := v.auth.SessionFromToken(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// AuthErrorHandler maps token failures to the JSON error contract.
func AuthErrorHandler(logger Logger) func(*fiber.Ctx, error) error {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusUnauthorized
		message := "Unauthorized"

		switch {
		case IsTokenExpiredError(err):
			message = "Session expired"
		case goerrors.Is(err, jwtware.ErrJWTMissingOrMalformed):
			message = "Unauthorized"
		case IsMalformedError(err):
			message = "Invalid session"
		}

		logger.Debug("Rejected unauthenticated request", "path", c.Path(), "error", err)

		return c.Status(status).JSON(fiber.Map{"error": message})
	}
}
