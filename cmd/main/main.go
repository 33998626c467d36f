package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matt-steen/term-tracker/pkg/config"
	"github.com/matt-steen/term-tracker/pkg/controller"
	"github.com/matt-steen/term-tracker/pkg/db"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	filePerms = 0o666
	dirPerms  = 0o755
)

type options struct {
	configFile string
	debug      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "term-tracker",
		Short: "Edit academic terms and courses in the terminal.",
		Example: `
term-tracker
term-tracker --db ~/school/terms.sqlite --debug
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default ./config.yaml or ~/.config/term-tracker/config.yaml)")
	cmd.Flags().String("db", "", "sqlite database holding the terms")
	cmd.Flags().String("log", "", "file to write the debug log to")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	loader, err := config.NewLoader(opts.configFile)
	if err != nil {
		return nil, err
	}

	v := loader.Viper()

	for key, flag := range map[string]string{"database.path": "db", "log.path": "log"} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("error binding --%s: %w", flag, err)
			}
		}
	}

	if opts.debug {
		v.Set("log.level", "debug")
	}

	return loader.Load()
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	for _, path := range []string{cfg.Log.Path, cfg.Database.Path} {
		if err := os.MkdirAll(filepath.Dir(path), fs.FileMode(dirPerms)); err != nil {
			return fmt.Errorf("error creating directory for %s: %w", path, err)
		}
	}

	logFile, err := os.OpenFile(cfg.Log.Path, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}

	defer logFile.Close()

	zerolog.SetGlobalLevel(cfg.Log.ZerologLevel())

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("db", cfg.Database.Path).Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}

	defer database.Close()

	doc, err := database.Load(ctx)
	if err != nil {
		return err
	}

	ctrl, err := controller.NewController(ctx, database, doc)
	if err != nil {
		return err
	}

	return ctrl.Go()
}
