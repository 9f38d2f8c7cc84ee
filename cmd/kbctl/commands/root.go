// Package commands implements the kbctl command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kbportal/internal/config"
	docsysRepo "kbportal/internal/domain/repositories/docsystem"
	"kbportal/internal/repository/slot"
	"kbportal/internal/seed"
	serviceDocsys "kbportal/internal/service/docsystem"
)

// Version is injected at build time
var Version = "dev"

// app carries the state shared by every subcommand of one invocation
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	out    io.Writer
	logger *slog.Logger
	format Format
}

// flagKeys maps persistent flags to their viper keys
var flagKeys = map[string]string{
	"slot-backend": "slot_backend",
	"slot-key":     "slot_key",
	"data-dir":     "data_dir",
	"database-url": "database_url",
	"s3-bucket":    "s3_bucket",
	"output":       "output",
	"verbose":      "verbose",
}

// NewRootCmd builds a fresh command tree. Each tree owns its own viper
// instance so commands can be executed repeatedly in tests.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "kbctl",
		Short: "Manage a knowledge base document store",
		Long: `kbctl works directly on the slot the portal server persists to.

Settings come from flags, KB_* environment variables, a .env file, or a
YAML config file passed with --config, in that order of precedence.

Use "kbctl [command] --help" for more information about a command.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("slot-backend", "", "Slot backend (memory|file|badger|sqlite|postgres|s3)")
	pf.String("slot-key", "", "Slot key holding the document tree")
	pf.String("data-dir", "", "Data directory for file, badger and sqlite backends")
	pf.String("database-url", "", "Postgres connection string")
	pf.String("s3-bucket", "", "S3 bucket for the s3 backend")
	pf.StringP("output", "o", "table", "Output format (table|json|yaml)")
	pf.BoolP("verbose", "v", false, "Log store activity to stderr")
	for flag, key := range flagKeys {
		a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newLsCmd(a),
		newTreeCmd(a),
		newSearchCmd(a),
		newMkdirCmd(a),
		newRenameCmd(a),
		newRmCmd(a),
		newUploadCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg := config.Load()
	a.v.SetDefault("slot_backend", cfg.SlotBackend)
	a.v.SetDefault("slot_key", cfg.SlotKey)
	a.v.SetDefault("data_dir", cfg.DataDir)
	a.v.SetDefault("database_url", cfg.DatabaseURL)
	a.v.SetDefault("s3_bucket", cfg.S3Bucket)
	a.v.BindEnv("database_url", "KB_DATABASE_URL", "DATABASE_URL")

	a.v.SetEnvPrefix("KB")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.SlotBackend = strings.ToLower(a.v.GetString("slot_backend"))
	cfg.SlotKey = a.v.GetString("slot_key")
	cfg.DataDir = a.v.GetString("data_dir")
	cfg.DatabaseURL = a.v.GetString("database_url")
	cfg.S3Bucket = a.v.GetString("s3_bucket")
	a.cfg = cfg

	format, err := ParseFormat(a.v.GetString("output"))
	if err != nil {
		return err
	}
	a.format = format

	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.out = cmd.OutOrStdout()
	return nil
}

// openSlot opens the configured backend
func (a *app) openSlot(ctx context.Context) (docsysRepo.KeyValueStore, error) {
	return slot.Open(ctx, slot.FromConfig(a.cfg), a.logger)
}

// withLibrary opens the slot, hydrates the library and runs fn
func (a *app) withLibrary(ctx context.Context, fn func(lib *serviceDocsys.Library) error) error {
	kv, err := a.openSlot(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	lib, err := serviceDocsys.SetupLibrary(ctx, kv, serviceDocsys.LibraryOptions{
		SlotKey: a.cfg.SlotKey,
		Seed:    seed.DefaultTree,
	}, a.logger)
	if err != nil {
		return err
	}
	return fn(lib)
}
