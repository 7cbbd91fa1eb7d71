package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/veneerkit/veneer/internal/config"
	veneererrors "github.com/veneerkit/veneer/pkg/errors"
)

type transformOptions struct {
	ComponentPath string
	InputsPath    string
	Library       string
	OutPath       string
}

var transformCmdRunner = runTransform

func newTransformCmd(root *rootFlags) *cobra.Command {
	opts := transformOptions{}

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Translate a component definition's inputs for a target library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return transformCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ComponentPath, "component", "c", "", "Path to component definition")
	cmd.Flags().StringVarP(&opts.InputsPath, "inputs", "i", "", "Path to a YAML document of input values")
	cmd.Flags().StringVarP(&opts.Library, "library", "l", "", "Target library (overrides the definition's)")
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "", "Write output to file instead of stdout")
	cmd.MarkFlagRequired("component") //nolint:errcheck

	return cmd
}

func runTransform(cmd *cobra.Command, root *rootFlags, opts transformOptions) error {
	cfg, err := config.ParseComponent(opts.ComponentPath)
	if err != nil {
		return err
	}

	var inputs map[string]any
	if opts.InputsPath != "" {
		data, err := os.ReadFile(opts.InputsPath)
		if err != nil {
			return fmt.Errorf("failed to read inputs: %w", err)
		}
		if err := yaml.Unmarshal(data, &inputs); err != nil {
			return veneererrors.NewParseError(opts.InputsPath, 0, err)
		}
	}

	eng, err := newEngine(root)
	if err != nil {
		return err
	}

	out, err := eng.TransformComponent(cmd.Context(), cfg, inputs, opts.Library, nil)
	if err != nil {
		return err
	}

	rendered, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, rendered, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), string(rendered))
	return nil
}
