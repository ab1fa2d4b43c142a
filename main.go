//go:build tray

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/getlantern/systray"

	"github.com/bartek5186/memlab/internal/app"
	"github.com/bartek5186/memlab/internal/cli"
	"github.com/bartek5186/memlab/internal/demos"
	"github.com/bartek5186/memlab/internal/runner"
)

func main() {
	a, err := app.New(app.Options{})
	if err != nil {
		panic(err)
	}
	defer a.Close()
	log := a.Log
	outPath := filepath.Join(a.Dir, "last-run.txt")

	// kontekst sterujący życiem procesu (CTRL+C / zamknięcie sesji)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// jeśli proces dostanie sygnał, zamknij tray
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()

	systray.Run(func() {
		// onReady
		systray.SetTitle(app.Name)
		systray.SetTooltip(fmt.Sprintf("%s %s", a.Config.Title, cli.Version))

		entries := a.Registry.List()
		slices.SortFunc(entries, func(x, y demos.Entry) int { return strings.Compare(x.ID, y.ID) })

		// jedna pozycja menu na demo; kliknięcie uruchamia je w tle
		for _, e := range entries {
			item := systray.AddMenuItem(e.DisplayName, e.Description)
			go func(e demos.Entry, item *systray.MenuItem) {
				for range item.ClickedCh {
					go runToFile(ctx, a, e, outPath)
				}
			}(e, item)
		}
		if len(entries) == 0 {
			systray.AddMenuItem("(no demos registered)", "").Disable()
		}

		systray.AddSeparator()
		mOpenOut := systray.AddMenuItem("Open last output", "Show the output of the last run")
		mOpenLogs := systray.AddMenuItem("Open logs", "Show the log file")
		mOpenCfg := systray.AddMenuItem("Settings (config.json)", "Open the config file")
		systray.AddSeparator()
		mQuit := systray.AddMenuItem("Quit", "Close the application")

		go func() {
			for {
				select {
				case <-mOpenOut.ClickedCh:
					openInExplorer(outPath)
				case <-mOpenLogs.ClickedCh:
					openInExplorer(a.LogPath)
				case <-mOpenCfg.ClickedCh:
					openInExplorer(a.ConfigPath)
				case <-mQuit.ClickedCh:
					cancel()
					systray.Quit()
					return
				}
			}
		}()
		log.Info().Int("demos", len(entries)).Msg("tray ready")
	}, func() {
		// onExit: daj chwilę loggerowi na flush
		time.Sleep(50 * time.Millisecond)
	})
}

// runToFile pisze wynik do pliku tymczasowego i podmienia path dopiero gdy
// runner faktycznie wystartował demo; odrzucone kliknięcie nie rusza ostatniego wyniku.
func runToFile(ctx context.Context, a *app.App, e demos.Entry, path string) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "last-run-*.tmp")
	if err != nil {
		a.Log.Error().Err(err).Msg("tray: cannot create output file")
		return
	}
	defer os.Remove(tmp.Name())

	fmt.Fprintf(tmp, ">>> Running demo: %s <<<\n\n", e.DisplayName)
	_, err = a.Runner.Run(ctx, e.ID, tmp)
	if errors.Is(err, runner.ErrBusy) {
		_ = tmp.Close()
		id, _ := a.Runner.IsRunning()
		a.Log.Warn().Str("running", id).Str("demo", e.ID).Msg("tray: demo already running, click ignored")
		return
	}
	if err != nil {
		fmt.Fprintf(tmp, "\nDemo failed: %v\n", err)
	}
	if err := tmp.Close(); err != nil {
		a.Log.Error().Err(err).Msg("tray: cannot write output file")
		return
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		a.Log.Error().Err(err).Msg("tray: cannot replace output file")
		return
	}
	a.Log.Info().Uint64("runs", a.Runner.Runs()).Msg("tray: output saved")
	openInExplorer(path)
}

// przenośne otwieranie plików/katalogów w domyślnej aplikacji
func openInExplorer(path string) {
	switch runtime.GOOS {
	case "windows":
		// "start" musi być uruchomiony przez cmd /C, z pustym tytułem okna ""
		_ = exec.Command("cmd", "/C", "start", "", path).Start()
	case "darwin":
		_ = exec.Command("open", path).Start()
	default:
		_ = exec.Command("xdg-open", path).Start()
	}
}
