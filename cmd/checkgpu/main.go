package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "checkgpu",
	Short:         "Diagnose GPU, framebuffer and display setup on macOS",
	Long:          "Check Lilu, AppleALC and WhateverGreen, the OS version, boot-args and every display-class PCI device in the I/O Registry, then write the report to GPU.log.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	RunE: runCheck,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log command execution to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errWrongOS) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
