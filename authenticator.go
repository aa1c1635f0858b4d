package fittrack

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther decides, for each incoming administrative request, whether the
// caller holds a currently valid session, and mints new sessions on a
// successful credential check.
type Auther struct {
	admins       Admins
	tokenService TokenService
	logger       Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(admins Admins, cfg Config) *Auther {
	return &Auther{
		admins:       admins,
		tokenService: NewTokenService(cfg, defLogger{}),
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credential pair and mints an access token. A
// missing account and a wrong password produce the same error value so
// callers cannot enumerate accounts.
func (s *Auther) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.Is(err, ErrAdminNotFound) {
			s.logger.Info("Login attempt for unknown admin")
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Login admin lookup error", "error", err)
		return "", err
	}

	if err := ComparePasswordAndHash(password, admin.PasswordHash); err != nil {
		s.logger.Info("Login attempt with bad credentials", "admin_id", admin.ID)
		return "", ErrInvalidCredentials
	}

	return s.tokenService.Generate(admin)
}

// RefreshToken mints the refresh token that accompanies a fresh login.
func (s *Auther) RefreshToken(ctx context.Context, email string) (string, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return s.tokenService.GenerateRefresh(admin)
}

// SessionFromToken verifies signature and expiry of an access token.
func (s *Auther) SessionFromToken(raw string) (*AdminClaims, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	if claims.IsRefresh() {
		s.logger.Error("SessionFromToken received a refresh token")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// admin is looked up again so a deleted account cannot keep minting
// sessions for the remainder of the refresh window.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenService.Validate(refreshToken)
	if err != nil {
		return "", err
	}

	if !claims.IsRefresh() {
		return "", ErrTokenMalformed
	}

	admin, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		if goerrors.Is(err, ErrAdminNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return s.tokenService.Generate(admin)
}
