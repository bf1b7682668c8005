package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulse/internal/diag"
	"pulse/internal/diagfmt"
	"pulse/internal/rpc"
)

var errorsCmd = &cobra.Command{
	Use:          "errors [files...]",
	Short:        "Query the host's current diagnostics",
	Long:         `Ask the running host for diagnostics: all of them, or scoped to the given files. A file no project claims yields a single synthesized diagnostic saying so`,
	SilenceUsage: true,
	RunE:         runErrors,
}

func init() {
	errorsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	errorsCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// runErrors executes the "errors" command. Exit codes: 0 when the query
// succeeded and no error-severity diagnostics came back, 1 when some did,
// 2 when no host is reachable on the channel.
func runErrors(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	socket, err := resolveSocket(cmd)
	if err != nil {
		return err
	}

	var diags []diag.Simple
	err = rpc.WithClient(socket, func(c *rpc.Client) error {
		var callErr error
		if len(args) == 0 {
			diags, callErr = c.AllErrors()
		} else {
			diags, callErr = c.ErrorsForFiles(args)
		}
		return callErr
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pulse: cannot query host on %s: %v\n", socket, err)
		os.Exit(2)
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	cwd, _ := os.Getwd()

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, diags, diagfmt.PrettyOpts{
			Color:    color,
			PathMode: pathMode,
			BaseDir:  cwd,
			Max:      maxDiagnostics,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, diags, diagfmt.JSONOpts{
			PathMode: pathMode,
			BaseDir:  cwd,
			Max:      maxDiagnostics,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	for _, d := range diags {
		if d.Severity == diag.SevError {
			os.Exit(1)
		}
	}
	return nil
}
