package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/fittrack/fittrack"
	"github.com/fittrack/fittrack/cmd/server/config"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	repo   fittrack.RepositoryManager
	auth   fittrack.Authenticator
	auther *fittrack.RouteAuthenticator
	srv    *fiber.App
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("fittrack"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if app.Config().App.Environment != "production" {
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPAuth(ctx, app); err != nil {
		panic(err)
	}

	WithHTTPServer(app)

	go func() {
		if err := app.srv.Listen(app.Config().GetServer().GetAddr()); err != nil {
			lgr.Error("Server stopped", "error", err)
		}
	}()

	WaitExitSignal()

	if err := app.srv.Shutdown(); err != nil {
		lgr.Error("Shutdown", "error", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	pcfg := app.Config().GetPersistence()

	db, err := sql.Open(sqliteshim.ShimName, pcfg.GetDSN())
	if err != nil {
		log.Fatal(err)
		return err
	}

	persistence.RegisterModel((*fittrack.Admin)(nil))
	persistence.RegisterModel((*fittrack.User)(nil))
	persistence.RegisterModel((*fittrack.Exercise)(nil))
	persistence.RegisterModel((*fittrack.Meal)(nil))
	persistence.RegisterModel((*fittrack.WorkoutPlan)(nil))
	persistence.RegisterModel((*fittrack.PlanExerciseTemplate)(nil))
	persistence.RegisterModel((*fittrack.BodyMetric)(nil))

	client, err := persistence.New(pcfg, db, sqlitedialect.New())
	if err != nil {
		log.Fatal(err)
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(fittrack.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)
	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = fittrack.NewRepositoryManager(client.DB())

	return nil
}

func WithHTTPAuth(ctx context.Context, app *App) error {
	acfg := app.Config().GetAuth()

	if err := app.repo.Validate(); err != nil {
		return err
	}

	if err := fittrack.EnsureDefaultAdmin(ctx, app.repo.Admins(), acfg, app.GetLogger("auth:seed")); err != nil {
		return err
	}

	authenticator := fittrack.NewAuthenticator(app.repo.Admins(), acfg)
	authenticator.WithLogger(app.GetLogger("auth:authz"))
	app.auth = authenticator

	auther, err := fittrack.NewHTTPAuthenticator(authenticator, acfg)
	if err != nil {
		return err
	}
	auther.Logger = app.GetLogger("auth:http")
	app.auther = auther

	return nil
}

func WithHTTPServer(app *App) {
	srv := fiber.New(fiber.Config{
		AppName:           app.Config().App.Name,
		EnablePrintRoutes: app.Config().App.Environment != "production",
	})

	lifecycle := fittrack.NewLifecycleCoordinator(
		app.repo,
		fittrack.WithLifecycleLogger(app.GetLogger("lifecycle")),
	)

	ctrl := fittrack.NewController(
		fittrack.WithControllerLogger(app.GetLogger("http:ctrl")),
		fittrack.WithControllerRepo(app.repo),
		fittrack.WithControllerAuther(app.auther),
		fittrack.WithControllerLifecycle(lifecycle),
	)

	protected := app.auther.ProtectedRoute(
		fittrack.AuthErrorHandler(app.GetLogger("auth:mdw")),
	)

	fittrack.RegisterRoutes(srv, ctrl, protected)

	app.srv = srv
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
