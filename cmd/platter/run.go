package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"karolbroda.com/platter/internal/artwork"
	"karolbroda.com/platter/internal/audio"
	"karolbroda.com/platter/internal/catalog"
	"karolbroda.com/platter/internal/config"
	"karolbroda.com/platter/internal/logging"
	"karolbroda.com/platter/internal/station"
	"karolbroda.com/platter/internal/terminal"
	"karolbroda.com/platter/internal/ui"
)

const probeTimeout = 2 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "start the interactive turntable",
	Long:  `starts the terminal turntable with the record crate and catalog search.`,
	RunE:  runTurntable,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTurntable(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigChan
		cancel()
		terminal.Reset()
		os.Exit(0)
	}()

	defer terminal.Reset()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the tui owns stdout, so logs only go somewhere when a file is set
	logger, logCloser, err := logging.New(cfg.Log, io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.SetPrefix("platter")

	driver, closeBus := openDriver(ctx, cfg, logger)
	defer closeBus()

	deck := station.NewDeck(driver, logger.WithPrefix("station"), nil)
	defer deck.Close()

	model := ui.NewModel(ui.ModelConfig{
		Catalog: catalog.NewClient(catalog.Options{
			BaseURL: cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout(),
			Logger:  logger.WithPrefix("catalog"),
		}),
		Artwork: artwork.NewFetcher(artwork.Options{
			Logger: logger.WithPrefix("artwork"),
		}),
		Deck:          deck,
		Logger:        logger.WithPrefix("ui"),
		TermCaps:      terminal.DetectCapabilities(),
		FrameInterval: cfg.UI.Frame(),
		HideHelp:      cfg.UI.HideHelp,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	logger.Info("turntable started", "driver", cfg.Audio.Driver)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running bubble tea: %w", err)
	}

	return nil
}

// openDriver connects to the configured mpris player. When the session bus
// or the player is missing the turntable still runs on the silent driver.
func openDriver(ctx context.Context, cfg *config.Config, logger *log.Logger) (audio.Driver, func()) {
	silent := func() (audio.Driver, func()) {
		return audio.NewSilent(config.PreviewLength), func() {}
	}

	if cfg.Audio.Driver == config.DriverSilent {
		return silent()
	}

	bus, err := dbus.ConnectSessionBus()
	if err != nil {
		logger.Warn("no session bus, playing silently", "err", err)
		return silent()
	}

	mpris, err := audio.NewMPRIS(bus, cfg.Audio.MprisService, logger.WithPrefix("audio"))
	if err != nil {
		bus.Close()
		logger.Warn("failed to create mpris driver, playing silently", "err", err)
		return silent()
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := mpris.Probe(probeCtx); err != nil {
		bus.Close()
		if errors.Is(err, audio.ErrNoPlayer) {
			logger.Warn("player not running, playing silently", "service", cfg.Audio.MprisService)
		} else {
			logger.Warn("failed to probe player, playing silently", "err", err)
		}
		return silent()
	}

	if err := mpris.Start(); err != nil {
		logger.Warn("could not set up dbus signals, end of preview will not be noticed", "err", err)
	}

	return mpris, func() { bus.Close() }
}
