package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"seat-booking-cli/config"
	"seat-booking-cli/store"
	"seat-booking-cli/tui"
)

const appName = "seatbook"

type rootOptions struct {
	envFile     string
	logFile     string
	logLevel    string
	noAltScreen bool
	hidePrices  bool
}

// NewRootCmd builds the seatbook command tree. Without a subcommand it
// starts the interactive seat picker.
func NewRootCmd(version string, commit string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Pick seats and book them from the terminal",
		Long:          `Browse a 6x10 seat grid priced by row tier, select up to 8 seats and confirm the booking.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file with SEATBOOK_* settings")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON log records to this file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "render inline instead of the alternate screen")
	rootCmd.Flags().BoolVar(&opts.hidePrices, "hide-prices", false, "start with tier prices hidden")

	rootCmd.AddCommand(
		newGridCmd(),
		newTiersCmd(),
		newBookCmd(opts),
		newPickCmd(opts),
		newVersionCmd(version, commit),
	)
	return rootCmd
}

// loadConfig merges the environment with flags given on the command line.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("log-level") {
		level, err := config.ParseLevel(o.logLevel)
		if err != nil {
			return config.Config{}, err
		}
		cfg.LogLevel = level
	}
	if flags.Lookup("no-alt-screen") != nil && flags.Changed("no-alt-screen") {
		cfg.NoAltScreen = o.noAltScreen
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	base, closeLog, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	handler := tui.NewLogHandler(slog.LevelWarn, base.Handler())
	logger := slog.New(handler)

	prefs, err := store.LoadPreferences()
	if err != nil {
		logger.Warn("load preferences failed", "error", err)
	}
	if opts.hidePrices {
		prefs.ShowPrices = false
	}

	programOpts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !cfg.NoAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(tui.Options{
		Logger:          logger,
		ShowPrices:      prefs.ShowPrices,
		SavePreferences: store.SavePreferences,
	}), programOpts...)
	handler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run seat picker: %w", err)
	}
	return nil
}

func newVersionCmd(version string, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of seatbook",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", appName, version)
			if commit != "none" && commit != "" {
				fmt.Fprintf(out, " (%s)", commit)
			}
			fmt.Fprintln(out)
		},
	}
}
