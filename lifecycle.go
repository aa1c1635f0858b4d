package fittrack

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// CascadePolicy names how the deletion cascade treats per-step failures.
type CascadePolicy string

const (
	// CascadeBestEffort attempts every dependent-record step in order
	// even when a prior step fails; only the final account delete
	// decides the overall outcome. This maximizes partial cleanup at
	// the cost of atomicity and can leave orphaned rows behind.
	CascadeBestEffort CascadePolicy = "best-effort"
	// CascadeAtomic runs the whole cascade in one transaction; the
	// first failing step aborts and rolls back everything.
	CascadeAtomic CascadePolicy = "atomic"
)

// Step names, in cascade order.
const (
	StepExercises     = "exercises"
	StepPlanTemplates = "plan_templates"
	StepWorkoutPlans  = "workout_plans"
	StepBodyMetrics   = "body_metrics"
	StepMeals         = "meals"
	StepUserAccount   = "user_account"
)

// StepResult records a single cascade step.
type StepResult struct {
	Name string
	Err  error
}

// OK reports whether the step completed.
func (r StepResult) OK() bool {
	return r.Err == nil
}

// DeletionOutcome reports a full DeleteUser run.
type DeletionOutcome struct {
	UserID  int64
	Policy  CascadePolicy
	Steps   []StepResult
	Deleted bool
}

// FailedSteps returns the names of steps that reported an error.
func (o *DeletionOutcome) FailedSteps() []string {
	var failed []string
	for _, s := range o.Steps {
		if !s.OK() {
			failed = append(failed, s.Name)
		}
	}
	return failed
}

// LifecycleCoordinator removes a user account together with every
// record that transitively references it, in dependency order:
// exercises, then plan templates keyed by the user's plan id set, then
// the plans themselves, body metrics, meals, and finally the account.
type LifecycleCoordinator struct {
	repo   RepositoryManager
	policy CascadePolicy
	logger Logger
}

type LifecycleOption func(*LifecycleCoordinator)

func WithCascadePolicy(policy CascadePolicy) LifecycleOption {
	return func(c *LifecycleCoordinator) {
		c.policy = policy
	}
}

func WithLifecycleLogger(logger Logger) LifecycleOption {
	return func(c *LifecycleCoordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewLifecycleCoordinator(repo RepositoryManager, opts ...LifecycleOption) *LifecycleCoordinator {
	c := &LifecycleCoordinator{
		repo:   repo,
		policy: CascadeBestEffort,
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type cascadeStep struct {
	name string
	op   func(ctx context.Context, tx bun.IDB) error
}

// dependentSteps are the cascade steps before the account row itself.
// Each op accepts a nil tx, meaning "run against the repository's own
// connection" for the best-effort policy.
func (c *LifecycleCoordinator) dependentSteps(userID int64) []cascadeStep {
	return []cascadeStep{
		{StepExercises, func(ctx context.Context, tx bun.IDB) error {
			var err error
			if tx != nil {
				_, err = c.repo.Exercises().DeleteByUserTx(ctx, tx, userID)
			} else {
				_, err = c.repo.Exercises().DeleteByUser(ctx, userID)
			}
			return err
		}},
		{StepPlanTemplates, func(ctx context.Context, tx bun.IDB) error {
			var planIDs []int64
			var err error
			if tx != nil {
				planIDs, err = c.repo.WorkoutPlans().IDsByUserTx(ctx, tx, userID)
			} else {
				planIDs, err = c.repo.WorkoutPlans().IDsByUser(ctx, userID)
			}
			if err != nil {
				return err
			}
			if len(planIDs) == 0 {
				return nil
			}
			if tx != nil {
				_, err = c.repo.PlanTemplates().DeleteByPlansTx(ctx, tx, planIDs)
			} else {
				_, err = c.repo.PlanTemplates().DeleteByPlans(ctx, planIDs)
			}
			return err
		}},
		{StepWorkoutPlans, func(ctx context.Context, tx bun.IDB) error {
			var err error
			if tx != nil {
				_, err = c.repo.WorkoutPlans().DeleteByUserTx(ctx, tx, userID)
			} else {
				_, err = c.repo.WorkoutPlans().DeleteByUser(ctx, userID)
			}
			return err
		}},
		{StepBodyMetrics, func(ctx context.Context, tx bun.IDB) error {
			var err error
			if tx != nil {
				_, err = c.repo.BodyMetrics().DeleteByUserTx(ctx, tx, userID)
			} else {
				_, err = c.repo.BodyMetrics().DeleteByUser(ctx, userID)
			}
			return err
		}},
		{StepMeals, func(ctx context.Context, tx bun.IDB) error {
			var err error
			if tx != nil {
				_, err = c.repo.Meals().DeleteByUserTx(ctx, tx, userID)
			} else {
				_, err = c.repo.Meals().DeleteByUser(ctx, userID)
			}
			return err
		}},
	}
}

// DeleteUser destroys the account and its dependent records under the
// configured policy. The error is non-nil only when the account row
// itself could not be removed; ErrUserNotFound marks a repeat delete.
func (c *LifecycleCoordinator) DeleteUser(ctx context.Context, userID int64) (*DeletionOutcome, error) {
	switch c.policy {
	case CascadeAtomic:
		return c.deleteUserAtomic(ctx, userID)
	default:
		return c.deleteUserBestEffort(ctx, userID)
	}
}

func (c *LifecycleCoordinator) deleteUserBestEffort(ctx context.Context, userID int64) (*DeletionOutcome, error) {
	outcome := &DeletionOutcome{
		UserID: userID,
		Policy: CascadeBestEffort,
	}

	for _, step := range c.dependentSteps(userID) {
		err := step.op(ctx, nil)
		if err != nil {
			c.logger.Error("Deletion cascade step failed, continuing",
				"step", step.name, "user_id", userID, "error", err)
		}
		outcome.Steps = append(outcome.Steps, StepResult{Name: step.name, Err: err})
	}

	if err := c.repo.Users().Delete(ctx, userID); err != nil {
		outcome.Steps = append(outcome.Steps, StepResult{Name: StepUserAccount, Err: err})

		if goerrors.Is(err, ErrUserNotFound) {
			return outcome, ErrUserNotFound
		}

		c.logger.Error("Failed to delete user", "user_id", userID, "error", err)
		return outcome, goerrors.Wrap(err, goerrors.CategoryOperation, "Failed to delete user")
	}

	outcome.Steps = append(outcome.Steps, StepResult{Name: StepUserAccount})
	outcome.Deleted = true
	return outcome, nil
}

func (c *LifecycleCoordinator) deleteUserAtomic(ctx context.Context, userID int64) (*DeletionOutcome, error) {
	outcome := &DeletionOutcome{
		UserID: userID,
		Policy: CascadeAtomic,
	}

	err := c.repo.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, step := range c.dependentSteps(userID) {
			if err := step.op(ctx, tx); err != nil {
				outcome.Steps = append(outcome.Steps, StepResult{Name: step.name, Err: err})
				return goerrors.Wrap(err, goerrors.CategoryOperation, "deletion step failed: "+step.name)
			}
			outcome.Steps = append(outcome.Steps, StepResult{Name: step.name})
		}

		if err := c.repo.Users().DeleteTx(ctx, tx, userID); err != nil {
			outcome.Steps = append(outcome.Steps, StepResult{Name: StepUserAccount, Err: err})
			return err
		}

		outcome.Steps = append(outcome.Steps, StepResult{Name: StepUserAccount})
		return nil
	})

	if err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return outcome, ErrUserNotFound
		}
		c.logger.Error("Atomic deletion cascade rolled back",
			"user_id", userID, "failed_steps", outcome.FailedSteps(), "error", err)
		return outcome, err
	}

	outcome.Deleted = true
	return outcome, nil
}
