package config

import (
	"fmt"
	"time"
)

// BaseConfig is the root configuration container. Sections map to the
// consumers that read them: Auth feeds the session layer, Persistence
// feeds the bun client, Server feeds fiber.
type BaseConfig struct {
	App         App         `json:"app" yaml:"app"`
	Auth        Auth        `json:"auth" yaml:"auth"`
	Persistence Persistence `json:"persistence" yaml:"persistence"`
	Server      Server      `json:"server" yaml:"server"`
}

type App struct {
	Name        string `json:"name" yaml:"name"`
	Environment string `json:"env" yaml:"env"`
}

type Auth struct {
	SigningKey           string `json:"signing_key" yaml:"signing_key"`
	TokenExpiration      int    `json:"token_expiration" yaml:"token_expiration"`
	RefreshExpiration    int    `json:"refresh_expiration" yaml:"refresh_expiration"`
	Issuer               string `json:"issuer" yaml:"issuer"`
	CookieName           string `json:"cookie_name" yaml:"cookie_name"`
	RefreshCookieName    string `json:"refresh_cookie_name" yaml:"refresh_cookie_name"`
	DefaultAdminEmail    string `json:"default_admin_email" yaml:"default_admin_email"`
	DefaultAdminPassword string `json:"default_admin_password" yaml:"default_admin_password"`
	Environment          string `json:"-" yaml:"-"`
}

type Persistence struct {
	Debug                 bool   `json:"debug" yaml:"debug"`
	Driver                string `json:"driver" yaml:"driver"`
	Dialect               string `json:"dialect" yaml:"dialect"`
	Server                string `json:"server" yaml:"server"`
	Database              string `json:"database" yaml:"database"`
	PingTimeoutExpression string `json:"ping_timeout" yaml:"ping_timeout"`
}

type Server struct {
	Addr string `json:"addr" yaml:"addr"`
}

func (a *BaseConfig) Validate() error {
	if a.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signing_key is required")
	}
	return nil
}

func (a *BaseConfig) GetAuth() *Auth {
	a.Auth.Environment = a.App.Environment
	return &a.Auth
}

func (a *BaseConfig) GetPersistence() *Persistence {
	return &a.Persistence
}

func (a *BaseConfig) GetServer() *Server {
	return &a.Server
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

// GetTokenExpiration is the access token and session cookie lifetime
// in minutes.
func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration == 0 {
		return 20
	}
	return a.TokenExpiration
}

// GetRefreshExpiration is the refresh token lifetime in minutes.
func (a Auth) GetRefreshExpiration() int {
	if a.RefreshExpiration == 0 {
		return 60 * 24
	}
	return a.RefreshExpiration
}

func (a Auth) GetIssuer() string {
	return a.Issuer
}

func (a Auth) GetCookieName() string {
	return a.CookieName
}

func (a Auth) GetRefreshCookieName() string {
	return a.RefreshCookieName
}

func (a Auth) GetDefaultAdminEmail() string {
	return a.DefaultAdminEmail
}

func (a Auth) GetDefaultAdminPassword() string {
	return a.DefaultAdminPassword
}

func (a Auth) IsProduction() bool {
	return a.Environment == "production"
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDialect() string {
	if p.Dialect == "" {
		return "sqlite"
	}
	return p.Dialect
}

func (p Persistence) GetServer() string {
	return p.Server
}

func (p Persistence) GetDatabase() string {
	if p.Database == "" {
		return "fittrack.db"
	}
	return p.Database
}

// GetOtelIdentifier satisfies persistence.Config; empty disables otel naming.
func (p Persistence) GetOtelIdentifier() string {
	return ""
}

// GetDSN builds the driver connection string.
func (p Persistence) GetDSN() string {
	if p.Server != "" {
		return p.Server
	}
	return "file:" + p.GetDatabase() + "?cache=shared&_pragma=foreign_keys(1)"
}

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}

func (s Server) GetAddr() string {
	if s.Addr == "" {
		return ":8572"
	}
	return s.Addr
}
