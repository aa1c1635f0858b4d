package fittrack

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Controller exposes the admin panel API: the session endpoints, the
// admin registry, and user administration including the deletion
// cascade.
type Controller struct {
	Debug     bool
	Logger    Logger
	Repo      RepositoryManager
	Auther    *RouteAuthenticator
	Lifecycle *LifecycleCoordinator
}

type ControllerOption func(*Controller) *Controller

func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in controller...")
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in controller...")
	}

	if c.Lifecycle == nil {
		c.Lifecycle = NewLifecycleCoordinator(c.Repo, WithLifecycleLogger(c.Logger))
	}

	return c
}

func WithControllerLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		c.Logger = logger
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) ControllerOption {
	return func(c *Controller) *Controller {
		c.Repo = repo
		return c
	}
}

func WithControllerAuther(auther *RouteAuthenticator) ControllerOption {
	return func(c *Controller) *Controller {
		c.Auther = auther
		return c
	}
}

func WithControllerLifecycle(lc *LifecycleCoordinator) ControllerOption {
	return func(c *Controller) *Controller {
		c.Lifecycle = lc
		return c
	}
}

// RegisterRoutes wires every endpoint of the admin panel API. The
// protected middleware comes from RouteAuthenticator.ProtectedRoute.
func RegisterRoutes(app *fiber.App, ctrl *Controller, protected fiber.Handler) {
	admin := app.Group("/admin")
	admin.Post("/login", ctrl.LoginPost)
	admin.Post("/logout", ctrl.LogoutPost)

	admins := app.Group("/admins")
	admins.Get("/check_auth", protected, ctrl.CheckAuth)
	admins.Post("/refresh_token", ctrl.RefreshTokenPost)
	admins.Get("/get", protected, ctrl.AdminsIndex)
	admins.Post("/register", protected, ctrl.AdminRegister)
	admins.Delete("/delete/:id", protected, ctrl.AdminDelete)

	api := app.Group("/api", protected)
	api.Get("/users", ctrl.UsersIndex)
	api.Post("/users", ctrl.UserCreate)
	api.Get("/profile/:id", ctrl.ProfileShow)
	api.Get("/meals", ctrl.MealsIndex)
	api.Get("/exercises", ctrl.ExercisesIndex)
	api.Put("/email/:id", ctrl.EmailUpdate)
	api.Put("/password/:id", ctrl.PasswordUpdate)
	api.Put("/user_lock/:id", ctrl.LockUpdate)
	api.Delete("/user/:id", ctrl.UserDelete)
	api.Get("/createPassword", ctrl.CreatePassword)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *Controller) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Login parse payload", "error", err)
		return badRequest(c, "Malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(payload))
	}

	if err := a.Auther.Login(c, payload.Email, payload.Password); err != nil {
		// Every credential failure gets the same response.
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	}

	return c.JSON(fiber.Map{"message": "Login successful"})
}

func (a *Controller) LogoutPost(c *fiber.Ctx) error {
	a.Auther.Logout(c)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (a *Controller) CheckAuth(c *fiber.Ctx) error {
	if _, err := a.Auther.GetSession(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(fiber.Map{"message": "Authenticated"})
}

func (a *Controller) RefreshTokenPost(c *fiber.Ctx) error {
	if err := a.Auther.RefreshSession(c); err != nil {
		a.Logger.Debug("Refresh token rejected", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}
	return c.JSON(fiber.Map{"message": "Token refreshed"})
}

func (a *Controller) AdminsIndex(c *fiber.Ctx) error {
	records, err := a.Repo.Admins().List(c.Context())
	if err != nil {
		a.Logger.Error("Admins list", "error", err)
		return internalError(c, "Failed to fetch admins")
	}
	return c.JSON(fiber.Map{"admins": records})
}

// AdminRegisterRequest payload
type AdminRegisterRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r AdminRegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *Controller) AdminRegister(c *fiber.Ctx) error {
	payload := new(AdminRegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		a.Logger.Error("Admin register hash", "error", err)
		return internalError(c, "Failed to create admin")
	}

	record, err := a.Repo.Admins().Create(c.Context(), &Admin{
		Email:        payload.Email,
		PasswordHash: hash,
	})
	if err != nil {
		a.Logger.Error("Admin register create", "error", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Admin with this email already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin created successfully",
		"adminId": record.ID,
	})
}

func (a *Controller) AdminDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid admin id")
	}

	record, err := a.Repo.Admins().GetByID(c.Context(), id)
	if err != nil {
		if goerrors.Is(err, ErrAdminNotFound) {
			return notFound(c, "Admin not found")
		}
		a.Logger.Error("Admin delete lookup", "error", err)
		return internalError(c, "Failed to delete admin")
	}

	if record.MasterID {
		a.Logger.Warn("Blocked master admin delete", "admin_id", id)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": ErrMasterAdminImmutable.Message,
		})
	}

	if err := a.Repo.Admins().Delete(c.Context(), id); err != nil {
		a.Logger.Error("Admin delete", "error", err)
		return internalError(c, "Failed to delete admin")
	}

	return c.JSON(fiber.Map{"message": "Admin deleted successfully"})
}

func (a *Controller) UsersIndex(c *fiber.Ctx) error {
	records, err := a.Repo.Users().List(c.Context())
	if err != nil {
		a.Logger.Error("Users list", "error", err)
		return internalError(c, "Failed to fetch users")
	}
	return c.JSON(fiber.Map{"users": records})
}

// UserCreateRequest payload. Profile fields are optional; the password
// is hashed exactly like admin credentials.
type UserCreateRequest struct {
	Email         string  `form:"email" json:"email"`
	Password      string  `form:"password" json:"password"`
	Weight        float64 `form:"weight" json:"weight"`
	Height        float64 `form:"height" json:"height"`
	Age           int     `form:"age" json:"age"`
	Gender        string  `form:"gender" json:"gender"`
	ActivityLevel string  `form:"activity_level" json:"activity_level"`
	Goal          string  `form:"goal" json:"goal"`
}

// Validate will run validation rules
func (r UserCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Gender, validation.In("male", "female", "")),
	)
}

func (a *Controller) UserCreate(c *fiber.Ctx) error {
	payload := new(UserCreateRequest)

	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		a.Logger.Error("User create hash", "error", err)
		return internalError(c, "Failed to create user")
	}

	record, err := a.Repo.Users().Create(c.Context(), &User{
		Email:         payload.Email,
		PasswordHash:  hash,
		Weight:        payload.Weight,
		Height:        payload.Height,
		Age:           payload.Age,
		Gender:        payload.Gender,
		ActivityLevel: payload.ActivityLevel,
		Goal:          payload.Goal,
	})
	if err != nil {
		a.Logger.Error("User create", "error", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "User with this email already exists",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"userId":  record.ID,
	})
}

func (a *Controller) ProfileShow(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	record, err := a.Repo.Users().GetByID(c.Context(), id)
	if err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		a.Logger.Error("Profile show", "error", err)
		return internalError(c, "Failed to fetch profile")
	}

	return c.JSON(record)
}

func (a *Controller) MealsIndex(c *fiber.Ctx) error {
	records, err := a.Repo.Meals().List(c.Context())
	if err != nil {
		a.Logger.Error("Meals list", "error", err)
		return internalError(c, "Failed to fetch meals")
	}
	return c.JSON(fiber.Map{"meals": records})
}

func (a *Controller) ExercisesIndex(c *fiber.Ctx) error {
	records, err := a.Repo.Exercises().List(c.Context())
	if err != nil {
		a.Logger.Error("Exercises list", "error", err)
		return internalError(c, "Failed to fetch exercises")
	}
	return c.JSON(fiber.Map{"exercises": records})
}

// EmailUpdateRequest payload
type EmailUpdateRequest struct {
	Email string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r EmailUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (a *Controller) EmailUpdate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	payload := new(EmailUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := a.Repo.Users().UpdateEmail(c.Context(), id, payload.Email); err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		a.Logger.Error("Email update", "error", err)
		return internalError(c, "Failed to update email")
	}

	return c.JSON(fiber.Map{"message": "Email updated successfully"})
}

// PasswordUpdateRequest payload
type PasswordUpdateRequest struct {
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r PasswordUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *Controller) PasswordUpdate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	payload := new(PasswordUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		a.Logger.Error("Password update hash", "error", err)
		return internalError(c, "Failed to update password")
	}

	if err := a.Repo.Users().UpdatePassword(c.Context(), id, hash); err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		a.Logger.Error("Password update", "error", err)
		return internalError(c, "Failed to update password")
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// LockUpdateRequest payload. The pointer distinguishes a missing flag
// from an explicit false.
type LockUpdateRequest struct {
	Locked *bool `form:"locked" json:"locked"`
}

// Validate will run validation rules
func (r LockUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Locked, validation.NotNil),
	)
}

func (a *Controller) LockUpdate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	payload := new(LockUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := a.Repo.Users().SetLocked(c.Context(), id, *payload.Locked); err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		a.Logger.Error("Lock update", "error", err)
		return internalError(c, "Failed to update lock state")
	}

	return c.JSON(fiber.Map{"message": "Lock state updated successfully"})
}

func (a *Controller) UserDelete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	outcome, err := a.Lifecycle.DeleteUser(c.Context(), id)
	if err != nil {
		if goerrors.Is(err, ErrUserNotFound) {
			return notFound(c, "User not found")
		}
		a.Logger.Error("User delete", "user_id", id, "failed_steps", outcome.FailedSteps(), "error", err)
		return internalError(c, "Failed to delete user")
	}

	if a.Debug {
		fmt.Println(print.MaybePrettyJSON(outcome))
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (a *Controller) CreatePassword(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"password": RandomPassword()})
}

func paramID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}
