package main

import (
	"context"
	"fmt"
	"os"

	"lexdesk/config"
	"lexdesk/db"
	"lexdesk/logger"
	"lexdesk/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// app is one process's view of the configured database and services
type app struct {
	cfg *config.Config
	gw  *db.Gateway
	svc *services.Services
}

// openApp loads configuration, opens and migrates the database and wires the services
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	gw, err := db.Open(db.Options{
		Path:        cfg.DBPath,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gw); err != nil {
		gw.Close()
		return nil, err
	}

	storage, err := services.NewStorageFromConfig(ctx, cfg)
	if err != nil {
		gw.Close()
		return nil, err
	}
	mailer, err := services.NewMailerFromConfig(cfg)
	if err != nil {
		gw.Close()
		return nil, err
	}

	svc := services.New(gw, services.Options{
		Storage:       storage,
		MaxUploadSize: cfg.MaxUploadSize(),
		Throttle:      services.NewLoginThrottle(services.MaxFailedLogins, services.FailedLoginWindow),
		PDF:           services.PDFOptions{ChromePath: cfg.ChromePath},
		Mailer:        mailer,
	})
	return &app{cfg: cfg, gw: gw, svc: svc}, nil
}

func (a *app) Close() {
	logger.Sync()
	if err := a.gw.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to close database:", err)
	}
}

// login opens a session with the --username/--password flags. The caller
// ends it with a.svc.Auth.Logout.
func (a *app) login(ctx context.Context, cmd *cobra.Command) (*services.Session, error) {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("LEXDESK_PASSWORD")
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("this command needs a user\nHint: pass --username and --password (or set LEXDESK_PASSWORD)")
	}
	sess, err := a.svc.Auth.LoginFrom(ctx, username, password, "cli")
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// withSession runs fn as the logged-in user and always ends the session
func withSession(cmd *cobra.Command, fn func(ctx context.Context, a *app, sess *services.Session) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.login(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.svc.Auth.Logout(sess)
	return fn(ctx, a, sess)
}

// writeOutput writes data to path, refusing to overwrite unless force is set
func writeOutput(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists\nHint: use --force to overwrite", path)
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
