// Package cmd implements the crm CLI commands. The CLI is a thin
// caller of the policy engine: it parses flags, resolves the current
// principal from the stored session token and renders results; every
// decision stays in internal/policy.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/apperr"
	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/config"
	"github.com/diewo77/go-crm/internal/db"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/secrets"
	"github.com/diewo77/go-crm/internal/store"
)

var (
	cfg      *config.Config
	conn     *gorm.DB
	engine   *policy.Engine
	resolver *auth.Resolver
	tokens   *auth.FileStore
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "crm",
	Short:        "Role-based CRM for collaborators, clients, contracts and events",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initApp()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	_ = godotenv.Load()
	cfg = config.Load()

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if cfg.App.Dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	conn, err = db.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	codec, err := secrets.NewCodecFromEnv(cfg.Auth.EncryptionKey)
	if err != nil {
		return fmt.Errorf("init PII codec: %w", err)
	}

	st := store.New(conn, codec)
	engine = policy.NewEngine(st, logger)
	resolver = auth.NewResolver(conn, auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL), logger)
	tokens = &auth.FileStore{Path: cfg.Auth.TokenFile}
	return nil
}

// currentPrincipal resolves the stored session token, or returns the
// typed authentication failure for the caller to render.
func currentPrincipal(ctx context.Context) (*auth.Principal, error) {
	return resolver.Resolve(ctx, tokens.Load())
}

// renderError prints a user-facing message for a typed failure and
// returns err unchanged so the command exits non-zero.
func renderError(err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		color.Red("error: %v", err)
		return err
	}
	switch e.Kind {
	case apperr.KindNotAuthenticated:
		color.Red("You must be logged in. Run: crm login")
	case apperr.KindSessionExpired:
		color.Red("Your session has expired. Please log in again.")
	case apperr.KindTokenInvalid:
		color.Red("Stored session token is invalid. Please log in again.")
	case apperr.KindPrincipalGone:
		color.Red("Your account no longer exists.")
	case apperr.KindInvalidCredentials:
		color.Red("Invalid email or password.")
	case apperr.KindPermissionDenied:
		color.Red("Permission denied: your role lacks %s.", e.Permission)
	case apperr.KindOwnershipDenied:
		color.Red("You are not the assigned contact for %s %s.", e.Entity, e.Key)
	case apperr.KindBusinessRule:
		color.Red("%s", e.Reason)
	case apperr.KindNotFound:
		color.Red("%s %s not found.", e.Entity, e.Key)
	case apperr.KindDataIntegrity:
		color.Red("Data corruption detected (wrong encryption key?): %v", e.Err)
	default:
		color.Red("error: %v", err)
	}
	return err
}
