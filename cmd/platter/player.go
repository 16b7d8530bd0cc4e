package main

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"karolbroda.com/platter/internal/audio"
	"karolbroda.com/platter/internal/logging"
)

var (
	// flags for player test
	testService string
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "mpris player utilities",
	Long:  `discover and test the mpris-compatible players platter can play previews through.`,
}

var playerListCmd = &cobra.Command{
	Use:   "list",
	Short: "list available mpris players",
	Long:  `list all mpris-compatible players currently running on the session bus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bus, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		defer bus.Close()

		players, err := audio.ListPlayers(bus)
		if err != nil {
			return err
		}

		if len(players) == 0 {
			fmt.Println("no mpris players found")
			fmt.Println("\nstart a player that supports mpris and OpenUri, e.g. mpv --idle with mpv-mpris")
			return nil
		}

		fmt.Printf("found %d mpris player(s):\n\n", len(players))
		for _, service := range players {
			identity := audio.Identity(bus, service)
			if identity != "" {
				fmt.Printf("  %s (%s)\n", service, identity)
			} else {
				fmt.Printf("  %s\n", service)
			}
		}

		fmt.Println("\nuse --mpris-service flag to specify which player to use")

		return nil
	},
}

var playerTestCmd = &cobra.Command{
	Use:   "test",
	Short: "test connection to an mpris player",
	Long:  `check that an mpris player is running and can open preview urls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		// use flag if provided, otherwise use config
		serviceName := cfg.Audio.MprisService
		if testService != "" {
			serviceName = testService
		}

		bus, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		defer bus.Close()

		fmt.Printf("testing connection to: %s\n\n", serviceName)

		mpris, err := audio.NewMPRIS(bus, serviceName, nil)
		if err != nil {
			return fmt.Errorf("failed to connect to player: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		if err := mpris.Probe(ctx); err != nil {
			return err
		}

		if identity := audio.Identity(bus, serviceName); identity != "" {
			fmt.Printf("player identity: %s\n", identity)
		}
		fmt.Printf("status: connected ✓\n")

		if status := audio.PlaybackStatus(bus, serviceName); status != "" {
			fmt.Printf("playback: %s\n", status)
		}
		if audio.CanOpenURI(bus, serviceName) {
			fmt.Println("open uri: http ✓")
		} else {
			fmt.Println("open uri: http not advertised, previews may not load")
		}

		return nil
	},
}

var playerPlayCmd = &cobra.Command{
	Use:   "play <preview-url>",
	Short: "load a url into the mpris player",
	Long:  `load a preview url into the configured player and start it, to check it accepts OpenUri.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		bus, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		defer bus.Close()

		logger, logCloser, err := logging.New(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer logCloser.Close()

		mpris, err := audio.NewMPRIS(bus, cfg.Audio.MprisService, logger.WithPrefix("audio"))
		if err != nil {
			return fmt.Errorf("failed to connect to player: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := mpris.Load(ctx, args[0]); err != nil {
			return err
		}
		if err := mpris.Play(ctx); err != nil {
			return err
		}

		fmt.Printf("sent %s to %s\n", args[0], cfg.Audio.MprisService)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playerCmd)

	playerCmd.AddCommand(playerListCmd)
	playerCmd.AddCommand(playerTestCmd)
	playerCmd.AddCommand(playerPlayCmd)

	// flags for player test
	playerTestCmd.Flags().StringVar(&testService, "service", "", "mpris service to test")
}
