package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/school-records/internal/config"
	"github.com/aanand-mishra/school-records/internal/database"
	"github.com/aanand-mishra/school-records/internal/service"
	"github.com/aanand-mishra/school-records/internal/storage/sqlstore"
)

// app carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE, once the --config flag has been parsed.
type app struct {
	configPath string

	cfg      *config.Config
	log      *slog.Logger
	db       *database.Provider
	students *service.StudentService
	courses  *service.CourseService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "school-records",
		Short: "Manage student and course records",
		Long: `school-records keeps student and course records in a SQLite or
PostgreSQL database, and exposes them over an HTTP API or directly from
the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"path to the configuration YAML file (default: CONFIG_PATH, else environment only)")

	root.AddCommand(
		newServeCmd(a),
		newPingCmd(a),
		newStudentCmd(a),
		newCourseCmd(a),
	)
	return root
}

// init loads the configuration and wires provider → repositories → services.
// No database connection is made here; the provider opens it on first use.
func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = setupLogger(cfg.Env, logOut)
	// Handlers log through the package-level slog functions.
	slog.SetDefault(a.log)

	a.db = database.New(cfg.Database, a.log)
	a.students = service.NewStudentService(sqlstore.NewStudentStore(a.db, a.log), a.log)
	a.courses = service.NewCourseService(sqlstore.NewCourseStore(a.db, a.log), a.log)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
//
// Logs go to stderr so command output on stdout stays clean.
func setupLogger(env string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
