// Package server wires the backend together: it picks the storage, token
// revocation, photo and mail backends from the configuration, builds the
// user service and runs the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/familyaccount/internal/logging"
	"github.com/dmitrijs2005/familyaccount/internal/server/config"
	"github.com/dmitrijs2005/familyaccount/internal/server/httpapi"
	"github.com/dmitrijs2005/familyaccount/internal/server/mailer"
	"github.com/dmitrijs2005/familyaccount/internal/server/photos"
	"github.com/dmitrijs2005/familyaccount/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/familyaccount/internal/server/revocation"
	"github.com/dmitrijs2005/familyaccount/internal/server/services"
)

var (
	openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
		m, err := repomanager.OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	openRedis = func(ctx context.Context, addr, password string) (revocation.Store, error) {
		s, err := revocation.NewRedisStore(ctx, addr, password)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	openS3 = func(ctx context.Context, o photos.S3Options) (photos.Store, error) {
		s, err := photos.NewS3Store(ctx, o)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	revoked revocation.Store
	server  *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (_ *App, err error) {
	app := &App{config: c, logger: logger}
	defer func() {
		if err != nil {
			app.close(ctx)
		}
	}()

	if c.DatabaseDSN != "" {
		app.repos, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		logger.Info(ctx, "Using PostgreSQL storage")
	} else {
		app.repos = repomanager.NewInMemoryRepositoryManager()
		logger.Warn(ctx, "No database DSN configured, data is kept in memory")
	}

	if c.RedisAddr != "" {
		app.revoked, err = openRedis(ctx, c.RedisAddr, c.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		logger.Info(ctx, "Using Redis token revocation", "address", c.RedisAddr)
	} else {
		app.revoked = revocation.NewMemoryStore()
	}

	var (
		store photos.Store
		opts  = []httpapi.Option{httpapi.WithAuthRateLimit(c.AuthRateLimit, c.AuthRateBurst)}
	)
	if c.S3Bucket != "" {
		store, err = openS3(ctx, photos.S3Options{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		logger.Info(ctx, "Storing photos in S3", "bucket", c.S3Bucket)
	} else {
		local, err := photos.NewLocalStore(c.PhotoDir, c.PublicURL)
		if err != nil {
			return nil, fmt.Errorf("photo dir error: %w", err)
		}
		store = local
		opts = append(opts, httpapi.WithPhotoHandler(local.Handler()))
		logger.Info(ctx, "Storing photos locally", "dir", c.PhotoDir)
	}

	var ml mailer.Mailer
	if c.SendgridAPIKey != "" {
		ml = mailer.NewSendgridMailer(c.SendgridAPIKey, c.MailFrom)
	} else {
		ml = mailer.NewLogMailer(logger)
		logger.Warn(ctx, "No SendGrid key configured, reset codes are only logged")
	}

	us := services.NewUserService(app.repos, app.revoked, store, ml, c, logger)
	app.server = httpapi.NewServer(c.Addr, logger, us, opts...)

	return app, nil
}

// initSignalHandler cancels the app context on SIGINT, SIGTERM or SIGQUIT.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a shutdown signal arrives, then
// releases the storage connections.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err)
	}

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) close(ctx context.Context) {
	var errs []error
	if app.revoked != nil {
		errs = append(errs, app.revoked.Close())
	}
	if app.repos != nil {
		errs = append(errs, app.repos.Close())
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "close error", "error", err)
	}
}
