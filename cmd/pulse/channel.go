package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pulse/internal/project"
	"pulse/internal/rpc"
)

// resolveSocket picks the status socket the command talks to: the --channel
// flag wins, then the channel named in a discovered pulse.toml, then the
// default. Client commands must end up on the same path the host bound.
func resolveSocket(cmd *cobra.Command) (string, error) {
	name, err := cmd.Root().PersistentFlags().GetString("channel")
	if err != nil {
		return "", fmt.Errorf("failed to get channel flag: %w", err)
	}
	if name == "" {
		if m, ok := discoverManifest(); ok {
			name = m.Host.Channel
		}
	}
	return rpc.SocketPath(name), nil
}

// discoverManifest loads the pulse.toml reachable from the working
// directory. Discovery failures are treated as "no manifest"; commands that
// require one report that themselves.
func discoverManifest() (*project.Manifest, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, false
	}
	path, ok, err := project.FindPulseToml(cwd)
	if err != nil || !ok {
		return nil, false
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		return nil, false
	}
	return m, true
}

// useColor resolves the --color tri-state against the output terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}
