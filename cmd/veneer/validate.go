package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veneerkit/veneer/internal/config"
	veneererrors "github.com/veneerkit/veneer/pkg/errors"
)

type validateOptions struct {
	ThemePaths     []string
	ComponentPaths []string
}

var validateCmdRunner = runValidate

func newValidateCmd() *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate theme and component definitions, reporting every violation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateCmdRunner(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.ThemePaths, "theme", "t", nil, "Theme definition to validate (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.ComponentPaths, "component", "c", nil, "Component definition to validate (repeatable)")

	return cmd
}

func runValidate(cmd *cobra.Command, opts validateOptions) error {
	if len(opts.ThemePaths) == 0 && len(opts.ComponentPaths) == 0 {
		return errors.New("nothing to validate: pass --theme or --component")
	}

	failed := 0
	for _, path := range opts.ThemePaths {
		if _, err := config.ParseTheme(path); err != nil {
			reportViolations(cmd, path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	for _, path := range opts.ComponentPaths {
		if _, err := config.ParseComponent(path); err != nil {
			reportViolations(cmd, path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed validation", failed)
	}
	return nil
}

// reportViolations prints every violation an aggregate carries, or the
// single error otherwise.
func reportViolations(cmd *cobra.Command, path string, err error) {
	var failure *veneererrors.ValidationFailure
	if errors.As(err, &failure) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d violation(s)\n", path, len(failure.Violations))
		for _, v := range failure.Violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", v.Error())
		}
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", path, err)
}
