package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joestump/biogas/internal/app"
	"github.com/joestump/biogas/internal/config"
	"github.com/joestump/biogas/internal/db"
	"github.com/joestump/biogas/internal/logging"
	"github.com/joestump/biogas/internal/prompt"
)

var errPasswordRequired = errors.New("password required: set BIOGAS_PASSWORD or drop --no-prompt")

// session is the per-command wiring: config, logger, terminal and the App
// owning the database handle.
type session struct {
	cfg   *config.Config
	log   *slog.Logger
	term  *prompt.Terminal
	app   *app.App
	flags *rootFlags
}

func openSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format).
		With("run", uuid.NewString(), "command", cmd.CommandPath())
	term := prompt.New(os.Stdin, cmd.ErrOrStderr())

	var prompter db.Prompter = term
	if flags.noPrompt {
		prompter = db.Decline{}
	}

	a, err := app.Open(cmd.Context(), cfg, app.Options{
		Prompter: prompter,
		Notifier: term,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: logger, term: term, app: a, flags: flags}, nil
}

func (s *session) Close() {
	if err := s.app.Close(); err != nil {
		s.log.Warn("closing database", "error", err)
	}
}

// userID returns the --user flag, falling back to BIOGAS_USER.
func (s *session) userID() (int64, error) {
	id := s.flags.user
	if id == 0 {
		id = s.cfg.User
	}
	if id == 0 {
		return 0, fmt.Errorf("user required: pass --user or set BIOGAS_USER")
	}
	return id, nil
}

func (s *session) password() (string, error) {
	if s.cfg.Password != "" {
		return s.cfg.Password, nil
	}
	if s.flags.noPrompt {
		return "", errPasswordRequired
	}
	return s.term.Password("Password")
}

// login authenticates the configured user and returns its ID.
func (s *session) login(ctx context.Context) (int64, error) {
	id, err := s.userID()
	if err != nil {
		return 0, err
	}
	password, err := s.password()
	if err != nil {
		return 0, err
	}
	if err := s.app.Login(ctx, id, password); err != nil {
		return 0, err
	}
	return id, nil
}

// withUser opens a session, logs in and runs fn.
func withUser(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, s *session, userID int64) error) error {
	s, err := openSession(cmd, flags)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	userID, err := s.login(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, s, userID)
}
