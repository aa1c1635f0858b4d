package fittrack

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Meals is the persistence surface for logged food entries.
type Meals interface {
	List(ctx context.Context) ([]*Meal, error)
	ListByUser(ctx context.Context, userID int64) ([]*Meal, error)
	Create(ctx context.Context, record *Meal) (*Meal, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error)
}

// BodyMetrics is the persistence surface for body measurement history.
type BodyMetrics interface {
	ListByUser(ctx context.Context, userID int64) ([]*BodyMetric, error)
	Create(ctx context.Context, record *BodyMetric) (*BodyMetric, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error)
}

type meals struct {
	db *bun.DB
}

var _ Meals = (*meals)(nil)

func NewMealsRepository(db *bun.DB) Meals {
	return &meals{db: db}
}

func (m *meals) List(ctx context.Context) ([]*Meal, error) {
	var records []*Meal
	err := m.db.NewSelect().Model(&records).
		Relation("User").
		Order("mls.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list meals")
	}
	return records, nil
}

func (m *meals) ListByUser(ctx context.Context, userID int64) ([]*Meal, error) {
	var records []*Meal
	err := m.db.NewSelect().Model(&records).
		Where("user_id = ?", userID).
		Order("mls.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list meals")
	}
	return records, nil
}

func (m *meals) Create(ctx context.Context, record *Meal) (*Meal, error) {
	if _, err := m.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create meal")
	}
	return record, nil
}

func (m *meals) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return m.DeleteByUserTx(ctx, m.db, userID)
}

func (m *meals) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	res, err := tx.NewDelete().Model((*Meal)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete meals")
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}

type bodyMetrics struct {
	db *bun.DB
}

var _ BodyMetrics = (*bodyMetrics)(nil)

func NewBodyMetricsRepository(db *bun.DB) BodyMetrics {
	return &bodyMetrics{db: db}
}

func (b *bodyMetrics) ListByUser(ctx context.Context, userID int64) ([]*BodyMetric, error) {
	var records []*BodyMetric
	err := b.db.NewSelect().Model(&records).
		Where("user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list body metrics")
	}
	return records, nil
}

func (b *bodyMetrics) Create(ctx context.Context, record *BodyMetric) (*BodyMetric, error) {
	if _, err := b.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create body metric")
	}
	return record, nil
}

func (b *bodyMetrics) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return b.DeleteByUserTx(ctx, b.db, userID)
}

func (b *bodyMetrics) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	res, err := tx.NewDelete().Model((*BodyMetric)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete body metrics")
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}
