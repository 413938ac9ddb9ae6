// Package cli implements the diary command-line tool. Each command opens the
// same SQLite database the server uses, loads a Store and works through it,
// so the CLI and the HTTP API apply the same validation.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sakif/diary/internal/config"
	sqliteRepo "github.com/sakif/diary/internal/repository/sqlite"
	"github.com/sakif/diary/internal/service"
)

// app holds what a command needs once PersistentPreRunE has run.
type app struct {
	dbPath  string
	verbose bool

	db    *sqliteRepo.DB
	store *service.Store
}

// newRootCmd builds the diary command tree. The database defaults to
// DB_PATH (see internal/config) and can be overridden with --db. The caller
// must call app.close once the command has run.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "diary",
		Short:         "Work with your diary from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return a.open(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "path to the SQLite database (default $DB_PATH or "+config.DefaultDBPath+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every write")

	root.AddCommand(
		newEntriesCmd(a),
		newSearchCmd(a),
		newTagsCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root, a
}

// Execute runs the command line in os.Args.
func Execute(ctx context.Context) error {
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer func() {
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return root.ExecuteContext(ctx)
}

// needsStore is false for cobra's own help and completion commands.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func (a *app) open(ctx context.Context, logOut io.Writer) error {
	if a.dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.dbPath = cfg.DBPath
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	db, err := sqliteRepo.New(a.dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", a.dbPath, err)
	}
	store := service.NewStore(db, logger)
	if err := store.Load(ctx); err != nil {
		db.Close()
		return err
	}
	a.db, a.store = db, store
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db, a.store = nil, nil
	return err
}

// newTable returns a go-pretty writer that renders to w.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	return t
}
