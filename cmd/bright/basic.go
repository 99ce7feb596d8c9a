package main

import (
	"encoding/json"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/bright/pkg/brightness"
	"github.com/charlie0129/bright/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewGetCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the brightness of the main display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newController().Get()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			cmd.Printf("Brightness: %s\n", bold("%.0f%%", res.Level*100))
			cmd.Printf("  Display: %s\n", res.Display)
			cmd.Printf("  Framework: %s\n", res.Framework)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func NewUpCommand() *cobra.Command {
	return newStepCommand("up", "Increase", 1)
}

func NewDownCommand() *cobra.Command {
	return newStepCommand("down", "Decrease", -1)
}

func newStepCommand(use, verb string, sign float64) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   use,
		Short: verb + " the brightness of the main display by one step",
		Long: verb + ` the brightness of the main display by one step.

The step defaults to 0.1 and can be changed with --step or the "step" key of
the config file. The result is clamped between 0 and 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("step") {
				step = conf.Step()
			} else if !(step > 0 && step <= 1) {
				return pkgerrors.Wrapf(brightness.ErrLevelOutOfRange, "step %v is not between 0 and 1", step)
			}

			res, err := newController().Step(float32(sign * step))
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

	cmd.Flags().Float64Var(&step, "step", 0.1, "amount to change the level by, between 0 and 1")

	return cmd
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
