// Package menu is the interactive console front-end: it prints the demo catalog
// as a numbered list and runs whatever the user picks.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/bartek5186/memlab/internal/db"
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/bartek5186/memlab/internal/runner"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

// History lists past runs. *db.Handle satisfies it.
type History interface {
	RecentRuns(ctx context.Context, limit int) ([]db.RunRecord, error)
}

type Options struct {
	Title        string
	PauseAfter   bool    // wait for Enter after each demo
	InputCharset string  // console encoding label, empty means UTF-8
	History      History // nil disables the history command
}

type Menu struct {
	log  zerolog.Logger
	reg  *demos.Registry
	run  *runner.Runner
	in   *bufio.Reader
	out  io.Writer
	opts Options
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed)
)

func New(log zerolog.Logger, reg *demos.Registry, run *runner.Runner, in io.Reader, out io.Writer, opts Options) (*Menu, error) {
	if opts.InputCharset != "" {
		decoded, err := charset.NewReaderLabel(opts.InputCharset, in)
		if err != nil {
			return nil, fmt.Errorf("input charset %q: %w", opts.InputCharset, err)
		}
		in = decoded
	}
	return &Menu{
		log:  log.With().Str("component", "menu").Logger(),
		reg:  reg,
		run:  run,
		in:   bufio.NewReader(in),
		out:  out,
		opts: opts,
	}, nil
}

// Loop shows the menu until the user quits, input ends or ctx is canceled.
func (m *Menu) Loop(ctx context.Context) error {
	m.log.Info().Int("demos", m.reg.Len()).Msg("menu started")
	for {
		if ctx.Err() != nil {
			return nil
		}

		entries := m.entries()
		m.printMenu(entries)

		line, err := m.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out, "\nBye ~")
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		cmd := strings.ToLower(strings.TrimSpace(line))

		switch cmd {
		case "":
			continue
		case "0", "q", "quit", "exit":
			fmt.Fprintln(m.out, "Bye ~")
			return nil
		case "h", "history":
			m.printHistory(ctx)
			continue
		}

		n, err := strconv.Atoi(cmd)
		if err != nil {
			warnColor.Fprint(m.out, "Invalid input, please enter a number.\n\n")
			continue
		}
		if n == 0 {
			fmt.Fprintln(m.out, "Bye ~")
			return nil
		}
		if n < 1 || n > len(entries) {
			warnColor.Fprint(m.out, "Number out of range, please choose again.\n\n")
			continue
		}
		m.runEntry(ctx, entries[n-1])
	}
}

// entries returns the catalog sorted by id so the numbers printed match the
// numbers read back.
func (m *Menu) entries() []demos.Entry {
	entries := m.reg.List()
	slices.SortFunc(entries, func(a, b demos.Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return entries
}

func (m *Menu) printMenu(entries []demos.Entry) {
	headerColor.Fprintf(m.out, "================ %s ================\n", m.opts.Title)
	fmt.Fprint(m.out, "Choose a demo to run (enter its number, 0 to quit):\n\n")

	for i, e := range entries {
		fmt.Fprintf(m.out, "  %d) [%s] %s", i+1, e.ID, e.DisplayName)
		if e.Description != "" {
			fmt.Fprintf(m.out, " - %s", e.Description)
		}
		fmt.Fprintln(m.out)
	}
	if len(entries) == 0 {
		fmt.Fprintln(m.out, "  (no demos registered)")
	}
	if m.opts.History != nil {
		fmt.Fprintln(m.out, "\n  h) history of recent runs")
	}
	fmt.Fprint(m.out, "\n> ")
}

func (m *Menu) runEntry(ctx context.Context, e demos.Entry) {
	fmt.Fprintf(m.out, "\n>>> Running demo: %s <<<\n\n", e.DisplayName)

	_, err := m.run.Run(ctx, e.ID, m.out)
	switch {
	case errors.Is(err, demos.ErrNotFound):
		errColor.Fprintf(m.out, "Failed to create demo, id=%s\n\n", e.ID)
		return
	case errors.Is(err, runner.ErrBusy):
		warnColor.Fprintf(m.out, "Another demo is still running.\n\n")
		return
	case err != nil:
		errColor.Fprintf(m.out, "\nDemo failed: %v\n", err)
	}

	if !m.opts.PauseAfter {
		fmt.Fprint(m.out, "\n>>> Demo finished <<<\n\n")
		return
	}
	fmt.Fprint(m.out, "\n>>> Demo finished, press Enter to continue...\n")
	_, _ = m.in.ReadString('\n')
}

func (m *Menu) printHistory(ctx context.Context) {
	if m.opts.History == nil {
		warnColor.Fprint(m.out, "History is disabled.\n\n")
		return
	}
	runs, err := m.opts.History.RecentRuns(ctx, 10)
	if err != nil {
		m.log.Error().Err(err).Msg("history read failed")
		errColor.Fprintf(m.out, "Cannot read history: %v\n\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Fprint(m.out, "No runs yet.\n\n")
		return
	}
	fmt.Fprintln(m.out, "Recent runs:")
	for _, r := range runs {
		fmt.Fprintf(m.out, "  %s  %-6s  %-20s %5dms", r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.DemoID, r.DurationMs)
		if r.Error != "" {
			fmt.Fprintf(m.out, "  %s", r.Error)
		}
		fmt.Fprintln(m.out)
	}
	fmt.Fprintln(m.out)
}
