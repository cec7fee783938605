package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/availability"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/catalog"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/config"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/db"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/logging"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/recommender"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/schemas"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/server"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/storage"
	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
	rootschemas "github.com/abdul-rehman-0609/FYP-Navigator/schemas"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app is the wired navigator: configuration, logger, engine and the storage
// backend selected by the configuration.
type app struct {
	cfg      config.Config
	logger   zerolog.Logger
	engine   *recommender.Engine
	students server.StudentRepository
	history  server.HistoryRepository
	files    *storage.Manager // nil when PostgreSQL is the backend
	database *db.DB
}

// Close releases the database pool, if any.
func (a *app) Close() {
	if a.database != nil {
		a.database.Close()
	}
}

// resolveConfig merges, in increasing priority: built-in defaults, the config
// file, the environment and explicitly set root flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = rootDataDir
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rootDatabaseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// loadCatalog loads the configured catalog file, or generates the built-in
// knowledge base when none is configured.
func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	var opts []catalog.Option
	if cfg.CourseSkills != "" {
		table, err := catalog.LoadCourseSkills(cfg.CourseSkills)
		if err != nil {
			return nil, err
		}
		opts = append(opts, catalog.WithCourseSkills(table))
	}

	if cfg.Catalog != "" {
		return catalog.LoadCatalog(cfg.Catalog, opts...)
	}
	return catalog.New(catalog.DefaultKnowledgeBase().Generate(), opts...)
}

// newApp wires the navigator for one command invocation.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Logging())

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	var claims availability.Store
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		if err := database.EnsureClaimPolicy(ctx, cfg.ClaimPerStudent()); err != nil {
			database.Close()
			return nil, err
		}
		a.database = database
		a.students, a.history, claims = database, database, database
		logger.Debug().Msg("using PostgreSQL storage")
	} else {
		files := storage.NewManager(cfg.DataDir)
		a.files = files
		a.students, a.history, claims = files.Students, files.History, files.Selections
		logger.Debug().Str("data_dir", cfg.DataDir).Msg("using file storage")
	}

	tracker := availability.NewTracker(claims, availability.Options{OneClaimPerStudent: cfg.ClaimPerStudent()}, logger)
	if err := tracker.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}

	engine, err := recommender.New(cat, tracker, cfg.Engine(), logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	a.engine = engine
	return a, nil
}

// readProfileFile loads a student profile document, validating it against the
// student profile schema and the profile rules.
func readProfileFile(path string) (*types.StudentProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(rootschemas.StudentProfile, content); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}

	var raw types.StudentProfile
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}
	return raw.Normalized(), nil
}

// writeJSON writes v as indented JSON to path, or to the command output when
// path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
