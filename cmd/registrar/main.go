// Command registrar manages the local registry from the terminal.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mmynk/registrar/internal/config"
	"github.com/mmynk/registrar/internal/controller"
	"github.com/mmynk/registrar/internal/dialog"
	"github.com/mmynk/registrar/internal/records"
	"github.com/mmynk/registrar/internal/storage"
	"github.com/mmynk/registrar/internal/storage/sqlite"
	"github.com/mmynk/registrar/internal/view"
	"github.com/mmynk/registrar/pkg/logging"
)

var (
	configPath string
	dbPath     string
	storageKey string
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "Local name and e-mail registry",
	Long: `Register people by name and e-mail, list, search and delete them.

Records are kept as one JSON array under a single storage key in a local
SQLite database. Settings come from an optional TOML file, a .env file and
the environment; the flags below override them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&storageKey, "key", "", "storage key holding the records (overrides STORAGE_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is one controller wired to the terminal and the configured store.
type session struct {
	kv       storage.Store
	form     *controller.Fields
	terminal *dialog.Terminal
	ctl      *controller.Controller
	out      io.Writer
}

func openSession() (*session, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if storageKey != "" {
		cfg.Storage.Key = storageKey
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	kv, err := sqlite.New(cfg.Storage.Path, sqlite.WithQuota(cfg.Storage.Quota))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	var opts []controller.Option
	if cfg.Registry.StrictValidation {
		opts = append(opts, controller.WithValidation())
	}
	return newSession(kv, cfg.Storage.Key, os.Stdin, os.Stdout, opts...), nil
}

func newSession(kv storage.Store, key string, in io.Reader, out io.Writer, opts ...controller.Option) *session {
	s := &session{
		kv:       kv,
		form:     &controller.Fields{},
		terminal: dialog.NewTerminal(in, out),
		out:      out,
	}
	s.terminal.AssumeYes = assumeYes
	s.ctl = controller.New(records.NewStore(kv, key), s.form, view.NewTextView(out), s.terminal, opts...)
	return s
}

func (s *session) Close() {
	if err := s.kv.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}
