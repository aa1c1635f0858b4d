package fittrack_test

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	"github.com/fittrack/fittrack"
)

// testConfig implements fittrack.Config with fixed values.
type testConfig struct {
	signingKey           string
	tokenExpiration      int
	refreshExpiration    int
	cookieName           string
	refreshCookieName    string
	issuer               string
	defaultAdminEmail    string
	defaultAdminPassword string
	production           bool
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:        "test-signing-key",
		tokenExpiration:   20,
		refreshExpiration: 60,
		issuer:            "test-issuer",
	}
}

func (c *testConfig) GetSigningKey() string           { return c.signingKey }
func (c *testConfig) GetTokenExpiration() int         { return c.tokenExpiration }
func (c *testConfig) GetRefreshExpiration() int       { return c.refreshExpiration }
func (c *testConfig) GetCookieName() string           { return c.cookieName }
func (c *testConfig) GetRefreshCookieName() string    { return c.refreshCookieName }
func (c *testConfig) GetIssuer() string               { return c.issuer }
func (c *testConfig) GetDefaultAdminEmail() string    { return c.defaultAdminEmail }
func (c *testConfig) GetDefaultAdminPassword() string { return c.defaultAdminPassword }
func (c *testConfig) IsProduction() bool              { return c.production }

// MockAdmins implements fittrack.Admins
type MockAdmins struct {
	mock.Mock
}

func (m *MockAdmins) GetByID(ctx context.Context, id int64) (*fittrack.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.Admin), args.Error(1)
}

func (m *MockAdmins) GetByEmail(ctx context.Context, email string) (*fittrack.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.Admin), args.Error(1)
}

func (m *MockAdmins) List(ctx context.Context) ([]*fittrack.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.Admin), args.Error(1)
}

func (m *MockAdmins) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAdmins) Create(ctx context.Context, record *fittrack.Admin) (*fittrack.Admin, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.Admin), args.Error(1)
}

func (m *MockAdmins) CreateTx(ctx context.Context, tx bun.IDB, record *fittrack.Admin) (*fittrack.Admin, error) {
	args := m.Called(ctx, tx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.Admin), args.Error(1)
}

func (m *MockAdmins) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUsers implements fittrack.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*fittrack.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.User), args.Error(1)
}

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*fittrack.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.User), args.Error(1)
}

func (m *MockUsers) List(ctx context.Context) ([]*fittrack.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.User), args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *fittrack.User) (*fittrack.User, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.User), args.Error(1)
}

func (m *MockUsers) UpdateEmail(ctx context.Context, id int64, email string) error {
	args := m.Called(ctx, id, email)
	return args.Error(0)
}

func (m *MockUsers) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUsers) SetLocked(ctx context.Context, id int64, locked bool) error {
	args := m.Called(ctx, id, locked)
	return args.Error(0)
}

func (m *MockUsers) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUsers) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockExercises implements fittrack.Exercises
type MockExercises struct {
	mock.Mock
}

func (m *MockExercises) List(ctx context.Context) ([]*fittrack.Exercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.Exercise), args.Error(1)
}

func (m *MockExercises) ListByUser(ctx context.Context, userID int64) ([]*fittrack.Exercise, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.Exercise), args.Error(1)
}

func (m *MockExercises) Create(ctx context.Context, record *fittrack.Exercise) (*fittrack.Exercise, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.Exercise), args.Error(1)
}

func (m *MockExercises) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockExercises) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return int64(args.Int(0)), args.Error(1)
}

// MockMeals implements fittrack.Meals
type MockMeals struct {
	mock.Mock
}

func (m *MockMeals) List(ctx context.Context) ([]*fittrack.Meal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.Meal), args.Error(1)
}

func (m *MockMeals) ListByUser(ctx context.Context, userID int64) ([]*fittrack.Meal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.Meal), args.Error(1)
}

func (m *MockMeals) Create(ctx context.Context, record *fittrack.Meal) (*fittrack.Meal, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.Meal), args.Error(1)
}

func (m *MockMeals) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockMeals) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return int64(args.Int(0)), args.Error(1)
}

// MockWorkoutPlans implements fittrack.WorkoutPlans
type MockWorkoutPlans struct {
	mock.Mock
}

func (m *MockWorkoutPlans) IDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockWorkoutPlans) IDsByUserTx(ctx context.Context, tx bun.IDB, userID int64) ([]int64, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockWorkoutPlans) Create(ctx context.Context, record *fittrack.WorkoutPlan) (*fittrack.WorkoutPlan, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutPlans) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockWorkoutPlans) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return int64(args.Int(0)), args.Error(1)
}

// MockPlanTemplates implements fittrack.PlanTemplates
type MockPlanTemplates struct {
	mock.Mock
}

func (m *MockPlanTemplates) Create(ctx context.Context, record *fittrack.PlanExerciseTemplate) (*fittrack.PlanExerciseTemplate, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.PlanExerciseTemplate), args.Error(1)
}

func (m *MockPlanTemplates) ListByPlans(ctx context.Context, planIDs []int64) ([]*fittrack.PlanExerciseTemplate, error) {
	args := m.Called(ctx, planIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.PlanExerciseTemplate), args.Error(1)
}

func (m *MockPlanTemplates) DeleteByPlans(ctx context.Context, planIDs []int64) (int64, error) {
	args := m.Called(ctx, planIDs)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockPlanTemplates) DeleteByPlansTx(ctx context.Context, tx bun.IDB, planIDs []int64) (int64, error) {
	args := m.Called(ctx, tx, planIDs)
	return int64(args.Int(0)), args.Error(1)
}

// MockBodyMetrics implements fittrack.BodyMetrics
type MockBodyMetrics struct {
	mock.Mock
}

func (m *MockBodyMetrics) ListByUser(ctx context.Context, userID int64) ([]*fittrack.BodyMetric, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fittrack.BodyMetric), args.Error(1)
}

func (m *MockBodyMetrics) Create(ctx context.Context, record *fittrack.BodyMetric) (*fittrack.BodyMetric, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fittrack.BodyMetric), args.Error(1)
}

func (m *MockBodyMetrics) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockBodyMetrics) DeleteByUserTx(ctx context.Context, tx bun.IDB, userID int64) (int64, error) {
	args := m.Called(ctx, tx, userID)
	return int64(args.Int(0)), args.Error(1)
}

// MockRepositoryManager implements fittrack.RepositoryManager over the
// individual repository mocks. RunInTx invokes the callback with a zero
// bun.Tx so transactional code paths hit the *Tx mock expectations.
type MockRepositoryManager struct {
	admins        *MockAdmins
	users         *MockUsers
	exercises     *MockExercises
	meals         *MockMeals
	workoutPlans  *MockWorkoutPlans
	planTemplates *MockPlanTemplates
	bodyMetrics   *MockBodyMetrics
}

func newMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		admins:        new(MockAdmins),
		users:         new(MockUsers),
		exercises:     new(MockExercises),
		meals:         new(MockMeals),
		workoutPlans:  new(MockWorkoutPlans),
		planTemplates: new(MockPlanTemplates),
		bodyMetrics:   new(MockBodyMetrics),
	}
}

func (m *MockRepositoryManager) Validate() error { return nil }
func (m *MockRepositoryManager) MustValidate()   {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Admins() fittrack.Admins                 { return m.admins }
func (m *MockRepositoryManager) Users() fittrack.Users                   { return m.users }
func (m *MockRepositoryManager) Exercises() fittrack.Exercises           { return m.exercises }
func (m *MockRepositoryManager) Meals() fittrack.Meals                   { return m.meals }
func (m *MockRepositoryManager) WorkoutPlans() fittrack.WorkoutPlans     { return m.workoutPlans }
func (m *MockRepositoryManager) PlanTemplates() fittrack.PlanTemplates   { return m.planTemplates }
func (m *MockRepositoryManager) BodyMetrics() fittrack.BodyMetrics       { return m.bodyMetrics }
