// Package cli implements the memlab command tree: the interactive menu as the
// root command plus one-shot list, run and history commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bartek5186/memlab/internal/app"
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/bartek5186/memlab/internal/menu"
	"github.com/spf13/cobra"
)

// Version can be overridden with -ldflags "-X 'github.com/bartek5186/memlab/internal/cli.Version=1.0.1'".
var Version = "1.0.0"

const (
	codeFailure  = 1
	codeUsage    = 2
	codeNotFound = 3
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Execute runs the command tree and returns the exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(errOut, exitErr.Message)
		return exitErr.Code
	}
	// pozostałe błędy pochodzą z cobra: zła flaga lub liczba argumentów
	fmt.Fprintln(errOut, "Error:", err)
	return codeUsage
}

func NewRootCommand() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           app.Name,
		Short:         "Menu-driven runner for small memory demos",
		Long:          `memlab lists the compiled-in demos and runs the one you pick. Without a subcommand it starts the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(a *app.App) error {
				return runMenu(cmd, a)
			})
		},
	}
	root.PersistentFlags().StringVar(&opts.AppDir, "app-dir", "", "directory for config, logs and history (default: user config dir)")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config.json (default: <app-dir>/config.json)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override log level: debug, info, warn, error")

	root.AddCommand(newListCommand(&opts))
	root.AddCommand(newRunCommand(&opts))
	root.AddCommand(newHistoryCommand(&opts))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Name, Version)
		},
	})
	return root
}

func withApp(opts app.Options, fn func(a *app.App) error) error {
	a, err := app.New(opts)
	if err != nil {
		return &ExitError{Code: codeFailure, Message: err.Error()}
	}
	defer a.Close()
	return fn(a)
}

func runMenu(cmd *cobra.Command, a *app.App) error {
	var hist menu.History
	if a.DB != nil {
		hist = a.DB
	}
	m, err := menu.New(a.Log, a.Registry, a.Runner, cmd.InOrStdin(), cmd.OutOrStdout(), menu.Options{
		Title:        a.Config.Title,
		PauseAfter:   a.Config.PauseAfterRun,
		InputCharset: a.Config.InputCharset,
		History:      hist,
	})
	if err != nil {
		return &ExitError{Code: codeUsage, Message: err.Error()}
	}
	a.Log.Info().Msg("CLI menu started")
	err = m.Loop(cmd.Context())
	a.Log.Info().Uint64("runs", a.Runner.Runs()).Msg("CLI menu closed")
	if err != nil {
		return &ExitError{Code: codeFailure, Message: err.Error()}
	}
	return nil
}

type listItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Description string `json:"description,omitempty"`
}

func sortedEntries(r *demos.Registry) []demos.Entry {
	entries := r.List()
	slices.SortFunc(entries, func(a, b demos.Entry) int { return strings.Compare(a.ID, b.ID) })
	return entries
}

func newListCommand(opts *app.Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*opts, func(a *app.App) error {
				entries := sortedEntries(a.Registry)
				out := cmd.OutOrStdout()
				if asJSON {
					items := make([]listItem, 0, len(entries))
					for _, e := range entries {
						items = append(items, listItem{ID: e.ID, DisplayName: e.DisplayName, Description: e.Description})
					}
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					if err := enc.Encode(items); err != nil {
						return &ExitError{Code: codeFailure, Message: fmt.Sprintf("encode list: %v", err)}
					}
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "%-22s %-24s %s\n", e.ID, e.DisplayName, e.Description)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newRunCommand(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <id> [id...]",
		Short: "Run demos by id without the menu",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*opts, func(a *app.App) error {
				out := cmd.OutOrStdout()
				for _, id := range args {
					e, ok := a.Registry.Get(id)
					if !ok {
						return &ExitError{Code: codeNotFound, Message: fmt.Sprintf("unknown demo %q (see '%s list')", id, app.Name)}
					}
					fmt.Fprintf(out, ">>> Running demo: %s <<<\n\n", e.DisplayName)
					if _, err := a.Runner.Run(cmd.Context(), id, out); err != nil {
						if errors.Is(err, demos.ErrNotFound) {
							return &ExitError{Code: codeNotFound, Message: fmt.Sprintf("failed to create demo %q", id)}
						}
						return &ExitError{Code: codeFailure, Message: fmt.Sprintf("demo %q failed: %v", id, err)}
					}
					fmt.Fprint(out, "\n>>> Demo finished <<<\n\n")
				}
				return nil
			})
		},
	}
}

func newHistoryCommand(opts *app.Options) *cobra.Command {
	var limit int
	var stats bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent demo runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*opts, func(a *app.App) error {
				if a.DB == nil {
					return &ExitError{Code: codeFailure, Message: "history is disabled in config"}
				}
				out := cmd.OutOrStdout()
				if stats {
					counts, err := a.DB.CountByDemo(cmd.Context())
					if err != nil {
						return &ExitError{Code: codeFailure, Message: err.Error()}
					}
					for _, c := range counts {
						fmt.Fprintf(out, "%-22s %d\n", c.DemoID, c.Runs)
					}
					return nil
				}
				runs, err := a.DB.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return &ExitError{Code: codeFailure, Message: err.Error()}
				}
				for _, r := range runs {
					fmt.Fprintf(out, "%s  %s  %-6s  %-22s %dms %s\n",
						r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.RunID, r.Status, r.DemoID, r.DurationMs, r.Error)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to show")
	cmd.Flags().BoolVar(&stats, "stats", false, "show run counts per demo instead")
	return cmd
}
