package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/bright/pkg/brightness"
	"github.com/charlie0129/bright/pkg/config"
)

var (
	// warn keeps the default output identical to a silent helper binary.
	logLevel   = "warn"
	configPath = defaultConfigPath()
)

var (
	conf          *config.File
	newController = brightness.New
)

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bright.json"
	}
	return filepath.Join(home, ".config", "bright.json")
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

// handleCmdError prints err to w and returns the exit status for it.
func handleCmdError(w io.Writer, err error) int {
	var callErr *brightness.CallError

	switch {
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(w, "Usage: bright <value>")
		fmt.Fprintln(w, "Run 'bright --help' for more information.")
	case errors.Is(err, brightness.ErrUnavailable):
		fmt.Fprintln(w, "Failed to load brightness API")
	case errors.As(err, &callErr):
		fmt.Fprintf(w, "Error: %v\n", err)
		return callErr.ExitCode()
	case errors.Is(err, brightness.ErrInvalidLevel), errors.Is(err, brightness.ErrLevelOutOfRange):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "  - Levels are between 0 and 1, or 0 and 100 with '--percent'")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	return 1
}

func main() {
	// Keep every framework call on the main thread.
	runtime.LockOSThread()

	cmd := NewCommand()
	cmd.SetArgs(withLevelTerminator(cmd, os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		os.Exit(handleCmdError(os.Stderr, err))
	}
}

func NewCommand() *cobra.Command {
	var (
		percent bool
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "bright <value>",
		Short: "bright sets the brightness of the main display on macOS",
		Long: `bright sets the brightness of the main display on macOS.

The value is a level between 0 and 1. It is handed to the private
DisplayServices framework, or to CoreDisplay if DisplayServices is not
available. The exit status is the framework's return code.`,
		Example: `  bright 0.5
  bright --percent 80
  bright get
  bright up`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          exactlyOneArg,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			conf, err = config.NewFile(configPath)
			if err != nil {
				return err
			}
			logrus.WithFields(conf.LogrusFields()).Debug("Config loaded")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				strict = conf.Strict()
			}

			level, err := parseLevelArg(args[0], percent, strict)
			if err != nil {
				return err
			}

			res, err := newController().Set(level)
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"display":   res.Display,
				"framework": res.Framework,
			}).Infof("successfully set brightness to %g", res.Level)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&percent, "percent", "p", false, "interpret the value as a percentage from 0 to 100 (clamped)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject malformed or out-of-range values instead of passing them through")

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "warn", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")

	cmd.AddCommand(
		NewGetCommand(),
		NewUpCommand(),
		NewDownCommand(),
		NewVersionCommand(),
	)

	return cmd
}
