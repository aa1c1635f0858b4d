package fittrack

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin is an administrative account authorized to manage users.
// The master admin is created by the bootstrap check and cannot be
// deleted through the API.
type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:adm"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	MasterID      bool       `bun:"masterid,notnull,default:false" json:"masterid"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// User is a tracked fitness account. Exercises, meals, body metrics and
// workout plans all reference it by user_id.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Locked        bool       `bun:"locked,notnull,default:false" json:"locked"`
	Weight        float64    `bun:"weight" json:"weight"`
	Height        float64    `bun:"height" json:"height"`
	Age           int        `bun:"age" json:"age"`
	Gender        string     `bun:"gender" json:"gender"`
	ActivityLevel string     `bun:"activity_level" json:"activity_level"`
	Goal          string     `bun:"goal" json:"goal"`
	BFP           float64    `bun:"bfp" json:"bfp"`
	Waist         float64    `bun:"waist" json:"waist"`
	Hip           float64    `bun:"hip" json:"hip"`
	BMI           float64    `bun:"bmi" json:"bmi"`
	Calories      int        `bun:"calories" json:"calories"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Exercise is a logged workout entry. WorkoutPlanID is nil for ad hoc
// exercises that are not part of a plan.
type Exercise struct {
	bun.BaseModel `bun:"table:exercises,alias:exr"`
	ID            int64        `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64        `bun:"user_id,notnull" json:"user_id"`
	WorkoutPlanID *int64       `bun:"workout_plan_id" json:"workout_plan_id"`
	Date          time.Time    `bun:"date,notnull" json:"date"`
	Name          string       `bun:"name,notnull" json:"name"`
	Sets          int          `bun:"sets" json:"sets"`
	Reps          []int        `bun:"reps" json:"reps"`
	Weights       []float64    `bun:"weights" json:"weights"`
	User          *User        `bun:"rel:belongs-to,join:user_id=id" json:"users,omitempty"`
	WorkoutPlan   *WorkoutPlan `bun:"rel:belongs-to,join:workout_plan_id=id" json:"workout_plans,omitempty"`
}

// Meal is a logged food entry with its macro breakdown.
type Meal struct {
	bun.BaseModel `bun:"table:meals,alias:mls"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	Date          time.Time `bun:"date,notnull" json:"date"`
	Name          string    `bun:"name,notnull" json:"name"`
	Calories      int       `bun:"calories" json:"calories"`
	Protein       float64   `bun:"protein" json:"protein"`
	Carbs         float64   `bun:"carbs" json:"carbs"`
	Fats          float64   `bun:"fats" json:"fats"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"users,omitempty"`
}

// WorkoutPlan groups exercise templates for a user. Its templates must
// be removed before the plan row itself.
type WorkoutPlan struct {
	bun.BaseModel `bun:"table:workout_plans,alias:wpl"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id"`
	Name          string     `bun:"name" json:"name"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// PlanExerciseTemplate is a scheduled exercise slot inside a workout plan.
type PlanExerciseTemplate struct {
	bun.BaseModel `bun:"table:plan_exercise_templates,alias:pet"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	WorkoutPlanID int64  `bun:"workout_plan_id,notnull" json:"workout_plan_id"`
	Name          string `bun:"name,notnull" json:"name"`
	Sets          int    `bun:"sets" json:"sets"`
	Reps          int    `bun:"reps" json:"reps"`
	Day           string `bun:"day" json:"day"`
}

// BodyMetric is a point-in-time measurement snapshot for a user.
type BodyMetric struct {
	bun.BaseModel `bun:"table:body_metrics,alias:bmx"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id"`
	Date          time.Time `bun:"date,notnull" json:"date"`
	Weight        float64   `bun:"weight" json:"weight"`
	BFP           float64   `bun:"bfp" json:"bfp"`
	Waist         float64   `bun:"waist" json:"waist"`
	Hip           float64   `bun:"hip" json:"hip"`
	BMI           float64   `bun:"bmi" json:"bmi"`
}
