// Package main is the entry point for the whiteboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/whiteboard/internal/app"
	"github.com/runoshun/whiteboard/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		// A broken config file must not block help, version or the template
		return runWithoutContainer(os.Args[1:], fmt.Errorf("failed to initialize: %w", err))
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer runs the commands that need no project, and
// returns initErr for everything else.
func runWithoutContainer(args []string, initErr error) error {
	if !canRunWithoutProject(args) {
		return initErr
	}
	rootCmd := cli.NewRootCommand(nil, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func canRunWithoutProject(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help":
		return true
	case "config":
		if len(args) > 1 && args[1] == "template" {
			return true
		}
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
