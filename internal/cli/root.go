package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdxmph/todos/internal/config"
	"github.com/pdxmph/todos/internal/db"
	"github.com/pdxmph/todos/internal/listing"
	"github.com/pdxmph/todos/internal/logging"
	"github.com/pdxmph/todos/internal/render"
)

// app is the state shared by one invocation's commands
type app struct {
	configPath string
	dbPath     string
	verbose    bool

	now func() time.Time

	cfg *config.Config
	log *logrus.Logger
	db  *db.DB
}

// Execute runs the todos command line and reports any error on stderr
func Execute(version string) error {
	rootCmd := newRootCmd(&app{now: time.Now})
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "todos",
		Short: "Personal task tracker",
		Long: `todos keeps a list of tasks with a category, priority, due date and
completion state in a local SQLite file.

Commands that take a POSITION use the row number (#) from the default
listing, i.e. tasks in the order they were added.`,
		PersistentPreRunE:  a.open,
		PersistentPostRunE: a.close,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	// bad flags, including a negative POSITION read as a shorthand, are user input errors
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", listing.ErrInvalidArgument, err)
	})

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/todos/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Database file (overrides config and TODOS_DB)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newCompleteCmd(a))
	rootCmd.AddCommand(newClearCompletedCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newResetCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))
	rootCmd.AddCommand(newBrowseCmd(a))
	rootCmd.AddCommand(newSeedCmd(a))

	return rootCmd
}

// open loads config, sets up logging and opens the database
func (a *app) open(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.dbPath != "" {
		a.cfg.Database.Path = a.dbPath
	}

	a.log = logging.New(cmd.ErrOrStderr(), a.cfg.Log.Level, a.verbose)

	a.db, err = db.Open(a.cfg.Database.Path, db.WithClock(a.now), db.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.log.WithField("command", cmd.Name()).Debug("running command")
	return nil
}

func (a *app) close(cmd *cobra.Command, args []string) error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *app) renderer(cmd *cobra.Command) *render.Renderer {
	return render.New(cmd.OutOrStdout(), a.cfg.Display.CategoryColors)
}
