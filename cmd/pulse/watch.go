package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pulse/internal/diag"
	"pulse/internal/rpc"
	"pulse/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:          "watch",
	Short:        "Follow the host's diagnostics in a live terminal view",
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	watchCmd.Flags().Duration("interval", time.Second, "poll interval")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	interval, err := cmd.Flags().GetDuration("interval")
	if err != nil {
		return fmt.Errorf("failed to get interval flag: %w", err)
	}
	socket, err := resolveSocket(cmd)
	if err != nil {
		return err
	}

	// Каждый опрос - отдельное соединение: модель переживает рестарт хоста.
	fetch := func() ([]diag.Simple, error) {
		var diags []diag.Simple
		err := rpc.WithClient(socket, func(c *rpc.Client) error {
			var callErr error
			diags, callErr = c.AllErrors()
			return callErr
		})
		return diags, err
	}

	program := tea.NewProgram(ui.NewWatchModel(fetch, interval))
	_, err = program.Run()
	return err
}
