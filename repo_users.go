package fittrack

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the persistence surface for tracked accounts. The mutating
// operations are single row writes; only Delete participates in the
// deletion cascade and therefore carries a Tx variant.
type Users interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetLocked(ctx context.Context, id int64, locked bool) error
	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (u *users) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := u.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user")
	}
	return record, nil
}

func (u *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := u.db.NewSelect().Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load user")
	}
	return record, nil
}

func (u *users) List(ctx context.Context) ([]*User, error) {
	var records []*User
	if err := u.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}
	return records, nil
}

func (u *users) Create(ctx context.Context, record *User) (*User, error) {
	if _, err := u.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}
	return record, nil
}

func (u *users) UpdateEmail(ctx context.Context, id int64, email string) error {
	return u.updateColumn(ctx, id, "email", email)
}

func (u *users) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return u.updateColumn(ctx, id, "password_hash", passwordHash)
}

func (u *users) SetLocked(ctx context.Context, id int64, locked bool) error {
	return u.updateColumn(ctx, id, "locked", locked)
}

func (u *users) updateColumn(ctx context.Context, id int64, column string, value any) error {
	res, err := u.db.NewUpdate().Model((*User)(nil)).
		Set("? = ?", bun.Ident(column), value).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (u *users) Delete(ctx context.Context, id int64) error {
	return u.DeleteTx(ctx, u.db, id)
}

func (u *users) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	res, err := tx.NewDelete().Model((*User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
