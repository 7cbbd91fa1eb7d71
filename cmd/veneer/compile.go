package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veneerkit/veneer/internal/compile"
	"github.com/veneerkit/veneer/internal/config"
	"github.com/veneerkit/veneer/pkg/diff"
)

type compileOptions struct {
	ThemePath     string
	OutPath       string
	CheckPath     string
	Prefix        string
	Minify        bool
	SkipUtilities bool
}

var compileCmdRunner = runCompile

func newCompileCmd(root *rootFlags) *cobra.Command {
	opts := compileOptions{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a theme definition to CSS custom properties and utilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ThemePath, "theme", "t", "", "Path to theme definition")
	cmd.Flags().StringVarP(&opts.OutPath, "out", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringVar(&opts.CheckPath, "check", "", "Compare output against an existing file and report drift")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Custom property prefix (overrides the theme's)")
	cmd.Flags().BoolVar(&opts.Minify, "minify", false, "Minify the emitted rule text")
	cmd.Flags().BoolVar(&opts.SkipUtilities, "skip-utilities", false, "Emit custom properties only")
	cmd.MarkFlagRequired("theme") //nolint:errcheck

	return cmd
}

func runCompile(cmd *cobra.Command, root *rootFlags, opts compileOptions) error {
	cfg, err := config.ParseTheme(opts.ThemePath)
	if err != nil {
		return err
	}

	eng, err := newEngine(root)
	if err != nil {
		return err
	}

	result, err := eng.CompileTheme(cmd.Context(), cfg, compile.Options{
		Prefix:        opts.Prefix,
		Minify:        opts.Minify,
		SkipUtilities: opts.SkipUtilities,
	})
	if err != nil {
		return err
	}

	if opts.CheckPath != "" {
		expected, err := os.ReadFile(opts.CheckPath)
		if err != nil {
			return fmt.Errorf("failed to read check target: %w", err)
		}
		if d := diff.Unified(expected, []byte(result.RuleText), opts.CheckPath, "compiled"); d != "" {
			fmt.Fprint(cmd.OutOrStdout(), d)
			return fmt.Errorf("compiled output differs from %s", opts.CheckPath)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", opts.CheckPath)
		return nil
	}

	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, []byte(result.RuleText), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), result.RuleText)
	return nil
}
