package main

import (
	"database/sql"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pathschema"
	"pathschema/internal/config"
	"pathschema/internal/errors"
	"pathschema/internal/logger"
	"pathschema/internal/schema"
)

// app carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configFile string
	noColor    bool

	cfg    *config.Config
	log    *zap.Logger
	db     *sql.DB
	engine *pathschema.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "pathschema",
		Short: "Resolve studio path templates",
		Long: `pathschema resolves path templates against production entities.

Schemas are flat YAML, TOML or JSON tables of templates. $key pulls in another
key of the same schema; <entity.attr> is filled from the context. Entities in a
context file bring their parents along, so a shot is enough for shot paths.

Examples:
  pathschema keys film
  pathschema fields film shot_scene
  pathschema resolve film shot_root --context shot.yaml
  pathschema resolve film shot_pub --context shot.yaml --set version=3
  pathschema tree film --context shot.yaml
  pathschema lint film`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./pathschema.toml or ~/.config/pathschema/)")
	flags.String("schema-dir", "", "directory holding schema files")
	flags.String("db", "", "database DSN holding schemas (checked before --schema-dir)")
	flags.String("table", "", "table holding schemas in the database")
	flags.Bool("json-log", false, "log as JSON")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Int("max-depth", 0, "longest entity parent chain accepted")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newKeysCmd(a),
		newFieldsCmd(a),
		newFlattenCmd(a),
		newResolveCmd(a),
		newTreeCmd(a),
		newLintCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFlags(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		return err
	}

	a.cfg, a.log = cfg, log

	setupOutput(a.noColor)

	var sources schema.ChainSource

	if cfg.Database.Enabled() {
		db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return errors.Wrapf(err, "opening %s database", cfg.Database.Driver)
		}

		a.db = db

		src, err := schema.NewSQLSource(db, cfg.Schema.Table)
		if err != nil {
			return err
		}

		sources = append(sources, src.WithContext(cmd.Context()))
	}

	if cfg.Schema.Dir != "" {
		sources = append(sources, schema.NewDirSource(cfg.Schema.Dir))
	}

	a.engine = pathschema.New(
		pathschema.WithSource(sources),
		pathschema.WithLogger(log),
		pathschema.WithMaxDepth(cfg.Resolve.MaxDepth),
		pathschema.WithCollisionWarnings(cfg.Resolve.WarnCollisions),
	)

	log.Debug("configured",
		zap.String("schema_dir", cfg.Schema.Dir),
		zap.Bool("database", cfg.Database.Enabled()),
		zap.Int("max_depth", cfg.Resolve.MaxDepth))

	return nil
}

func (a *app) close() error {
	if a.log != nil {
		// Syncing stderr fails on some platforms; nothing useful to do then.
		_ = a.log.Sync()
	}

	if a.db != nil {
		return a.db.Close()
	}

	return nil
}
