package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veneerkit/veneer/internal/engine"
	"github.com/veneerkit/veneer/internal/logger"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "veneer",
		Short:         "Veneer compiles design themes and translates component definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newCompileCmd(flags))
	cmd.AddCommand(newTransformCmd(flags))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newEngine builds an engine whose log level follows the verbose flag.
func newEngine(flags *rootFlags) (*engine.Engine, error) {
	level := "info"
	if flags != nil && flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return engine.New(engine.WithLogger(log)), nil
}
