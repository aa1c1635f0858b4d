package fittrack

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Exercises is the persistence surface for logged workout entries.
type Exercises interface {
	List(ctx context.Context) ([]*Exercise, error)
	ListByUser(ctx context.Context, userID int64) ([]*Exercise, error)
	Create(ctx context.Context, record *Exercise) (*Exercise, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error)
}

// WorkoutPlans is the persistence surface for workout plans.
type WorkoutPlans interface {
	IDsByUser(ctx context.Context, userID int64) ([]int64, error)
	IDsByUserTx(ctx context.Context, tx bun.IDB, userID int64) ([]int64, error)
	Create(ctx context.Context, record *WorkoutPlan) (*WorkoutPlan, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error)
}

// PlanTemplates is the persistence surface for plan exercise templates.
// Deletion is always batched over the owning plan id set.
type PlanTemplates interface {
	Create(ctx context.Context, record *PlanExerciseTemplate) (*PlanExerciseTemplate, error)
	ListByPlans(ctx context.Context, planIDs []int64) ([]*PlanExerciseTemplate, error)
	DeleteByPlans(ctx context.Context, planIDs []int64) (int64, error)
	DeleteByPlansTx(ctx context.Context, tx bun.IDB, planIDs []int64) (int64, error)
}

type exercises struct {
	db *bun.DB
}

var _ Exercises = (*exercises)(nil)

func NewExercisesRepository(db *bun.DB) Exercises {
	return &exercises{db: db}
}

func (e *exercises) List(ctx context.Context) ([]*Exercise, error) {
	var records []*Exercise
	err := e.db.NewSelect().Model(&records).
		Relation("User").
		Relation("WorkoutPlan").
		Order("exr.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list exercises")
	}
	return records, nil
}

func (e *exercises) ListByUser(ctx context.Context, userID int64) ([]*Exercise, error) {
	var records []*Exercise
	err := e.db.NewSelect().Model(&records).
		Where("user_id = ?", userID).
		Order("exr.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list exercises")
	}
	return records, nil
}

func (e *exercises) Create(ctx context.Context, record *Exercise) (*Exercise, error) {
	if _, err := e.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create exercise")
	}
	return record, nil
}

func (e *exercises) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return e.DeleteByUserTx(ctx, e.db, userID)
}

func (e *exercises) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	res, err := tx.NewDelete().Model((*Exercise)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete exercises")
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}

type workoutPlans struct {
	db *bun.DB
}

var _ WorkoutPlans = (*workoutPlans)(nil)

func NewWorkoutPlansRepository(db *bun.DB) WorkoutPlans {
	return &workoutPlans{db: db}
}

func (w *workoutPlans) IDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	return w.IDsByUserTx(ctx, w.db, userID)
}

func (w *workoutPlans) IDsByUserTx(ctx context.Context, tx bun.IDB, userID int64) ([]int64, error) {
	var ids []int64
	err := tx.NewSelect().Model((*WorkoutPlan)(nil)).
		Column("id").
		Where("user_id = ?", userID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load workout plan ids")
	}
	return ids, nil
}

func (w *workoutPlans) Create(ctx context.Context, record *WorkoutPlan) (*WorkoutPlan, error) {
	if _, err := w.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create workout plan")
	}
	return record, nil
}

func (w *workoutPlans) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return w.DeleteByUserTx(ctx, w.db, userID)
}

func (w *workoutPlans) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	res, err := tx.NewDelete().Model((*WorkoutPlan)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete workout plans")
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}

type planTemplates struct {
	db *bun.DB
}

var _ PlanTemplates = (*planTemplates)(nil)

func NewPlanTemplatesRepository(db *bun.DB) PlanTemplates {
	return &planTemplates{db: db}
}

func (p *planTemplates) Create(ctx context.Context, record *PlanExerciseTemplate) (*PlanExerciseTemplate, error) {
	if _, err := p.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create plan template")
	}
	return record, nil
}

func (p *planTemplates) ListByPlans(ctx context.Context, planIDs []int64) ([]*PlanExerciseTemplate, error) {
	if len(planIDs) == 0 {
		return nil, nil
	}
	var records []*PlanExerciseTemplate
	err := p.db.NewSelect().Model(&records).
		Where("workout_plan_id IN (?)", bun.In(planIDs)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list plan templates")
	}
	return records, nil
}

func (p *planTemplates) DeleteByPlans(ctx context.Context, planIDs []int64) (int64, error) {
	return p.DeleteByPlansTx(ctx, p.db, planIDs)
}

func (p *planTemplates) DeleteByPlansTx(ctx context.Context, tx bun.IDB, planIDs []int64) (int64, error) {
	if len(planIDs) == 0 {
		return 0, nil
	}

	res, err := tx.NewDelete().Model((*PlanExerciseTemplate)(nil)).
		Where("workout_plan_id IN (?)", bun.In(planIDs)).
		Exec(ctx)
	if err != nil {
		return 0, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete plan templates")
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}
