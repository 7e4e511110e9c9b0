package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/benaskins/checkgpu/internal/config"
	"github.com/benaskins/checkgpu/internal/console"
	"github.com/benaskins/checkgpu/internal/report"
	"github.com/benaskins/checkgpu/internal/runner"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var errWrongOS = errors.New("checkgpu only runs on macOS")

var (
	configPath string
	logFile    string
	plane      string
	jsonOut    bool
	noPrompt   bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")
	f.StringVar(&logFile, "log-file", "", "Write the report here instead of GPU.log next to the binary")
	f.StringVar(&plane, "plane", "", "I/O Registry plane to read (default IOService)")
	f.BoolVar(&jsonOut, "json", false, "Print the gathered data as JSON instead of the text report")
	f.BoolVar(&noPrompt, "no-prompt", false, "Never wait for enter before exiting")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if runtime.GOOS != "darwin" {
		console.Heading(os.Stdout, "Wrong OS!")
		fmt.Println("This script can only be run on macOS!")
		fmt.Println()
		if !noPrompt {
			console.Prompt(os.Stdin, os.Stdout, "Press [enter] to exit...")
		}
		return errWrongOS
	}

	fileCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg := fileCfg.Merge(config.Config{LogFile: logFile, Plane: plane})

	path := cfg.LogFile
	if path == "" {
		path, err = defaultLogPath()
		if err != nil {
			return err
		}
	}

	// The JSON document owns stdout; progress goes to stderr.
	var screen io.Writer = os.Stdout
	status := os.Stdout
	if jsonOut {
		screen = io.Discard
		status = os.Stderr
	} else {
		console.Heading(os.Stdout, console.Title)
	}

	b := &report.Builder{
		Runner: runner.NewExec(slog.Default()),
		Plane:  cfg.Plane,
	}
	res := b.Gather(cmd.Context())

	log := report.NewLog(screen)
	report.Render(res, log)
	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	}

	fmt.Fprintln(status, "Saving log...")
	fmt.Fprintln(status)
	if err := log.Save(afero.NewOsFs(), path); err != nil {
		return err
	}
	slog.Debug("report saved", "path", path)
	fmt.Fprintln(status, "Done.")
	fmt.Fprintln(status)
	return nil
}
