package fittrack

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Fallbacks for a fresh deployment with no configuration. The password
// is meant to be rotated immediately after first login.
const (
	DefaultAdminEmail    = "admin@fittrack.local"
	DefaultAdminPassword = "changeme"
)

// EnsureDefaultAdmin guarantees the system is never left with zero
// administrators after a fresh deployment. It creates exactly one
// master admin iff none exist; reruns are no-ops and an existing admin
// is never overwritten.
func EnsureDefaultAdmin(ctx context.Context, admins Admins, cfg Config, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	count, err := admins.Count(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "admin bootstrap count failed")
	}

	if count > 0 {
		return nil
	}

	email := cfg.GetDefaultAdminEmail()
	if email == "" {
		email = DefaultAdminEmail
	}

	password := cfg.GetDefaultAdminPassword()
	if password == "" {
		password = DefaultAdminPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "admin bootstrap hash failed")
	}

	record := &Admin{
		Email:        email,
		PasswordHash: hash,
		MasterID:     true,
	}

	if _, err := admins.Create(ctx, record); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "admin bootstrap create failed")
	}

	logger.Info("Created default master admin", "email", email)
	return nil
}
