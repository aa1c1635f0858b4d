package fittrack

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Admins() Admins
	Users() Users
	Exercises() Exercises
	Meals() Meals
	WorkoutPlans() WorkoutPlans
	PlanTemplates() PlanTemplates
	BodyMetrics() BodyMetrics
}

type mngr struct {
	db            *bun.DB
	admins        Admins
	users         Users
	exercises     Exercises
	meals         Meals
	workoutPlans  WorkoutPlans
	planTemplates PlanTemplates
	bodyMetrics   BodyMetrics
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:            db,
		admins:        NewAdminsRepository(db),
		users:         NewUsersRepository(db),
		exercises:     NewExercisesRepository(db),
		meals:         NewMealsRepository(db),
		workoutPlans:  NewWorkoutPlansRepository(db),
		planTemplates: NewPlanTemplatesRepository(db),
		bodyMetrics:   NewBodyMetricsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.admins == nil {
		return errors.New("repository admins should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.exercises == nil || m.meals == nil || m.workoutPlans == nil ||
		m.planTemplates == nil || m.bodyMetrics == nil {
		return errors.New("fitness repositories should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Admins() Admins { return m.admins }

func (m mngr) Users() Users { return m.users }

func (m mngr) Exercises() Exercises { return m.exercises }

func (m mngr) Meals() Meals { return m.meals }

func (m mngr) WorkoutPlans() WorkoutPlans { return m.workoutPlans }

func (m mngr) PlanTemplates() PlanTemplates { return m.planTemplates }

func (m mngr) BodyMetrics() BodyMetrics { return m.bodyMetrics }
