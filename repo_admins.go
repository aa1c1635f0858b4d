package fittrack

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Admins is the persistence surface for administrator accounts.
type Admins interface {
	GetByID(ctx context.Context, id int64) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, record *Admin) (*Admin, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Admin) (*Admin, error)
	Delete(ctx context.Context, id int64) error
}

type admins struct {
	db *bun.DB
}

var _ Admins = (*admins)(nil)

func NewAdminsRepository(db *bun.DB) Admins {
	return &admins{db: db}
}

func (a *admins) GetByID(ctx context.Context, id int64) (*Admin, error) {
	record := &Admin{}
	err := a.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load admin")
	}
	return record, nil
}

func (a *admins) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	record := &Admin{}
	err := a.db.NewSelect().Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load admin")
	}
	return record, nil
}

func (a *admins) List(ctx context.Context) ([]*Admin, error) {
	var records []*Admin
	if err := a.db.NewSelect().Model(&records).Order("id ASC").Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list admins")
	}
	return records, nil
}

func (a *admins) Count(ctx context.Context) (int, error) {
	count, err := a.db.NewSelect().Model((*Admin)(nil)).Count(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to count admins")
	}
	return count, nil
}

func (a *admins) Create(ctx context.Context, record *Admin) (*Admin, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *admins) CreateTx(ctx context.Context, tx bun.IDB, record *Admin) (*Admin, error) {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create admin")
	}
	return record, nil
}

func (a *admins) Delete(ctx context.Context, id int64) error {
	res, err := a.db.NewDelete().Model((*Admin)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete admin")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrAdminNotFound
	}

	return nil
}
