package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/csak/csak/logging"
	"github.com/csak/csak/scan"
	"github.com/csak/csak/version"
	"github.com/spf13/cobra"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var debug bool
var logFile string
var logFormat = "text"
var versionRequested bool

var logCloser io.Closer

func init() {
	rootCmd.PersistentFlags().BoolVarP(&versionRequested, "version", "", versionRequested, "Output version information and exit")
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", debug, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "", logFile, "Also write logs to this file, rotated at 10MB")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "", logFormat, "Log format. Must be one of text, json")

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newRunCmd())
}

var rootCmd = &cobra.Command{
	Use:           "csak",
	Short:         "csak is a toolkit for cybersecurity tasks",
	Long:          `A toolkit for cybersecurity tasks: TCP/UDP port scanning and running external security tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := logging.Setup(logging.Options{
			Verbose: debug,
			Format:  logFormat,
			File:    logFile,
		})
		if err != nil {
			return &UsageError{Err: err}
		}
		logCloser = closer
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionRequested {
			v := version.Version
			if v == "" {
				v = "development version"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "csak %s\n", v)
			return nil
		}
		return cmd.Help()
	},
}

// UsageError marks errors caused by the caller's input rather than by
// anything going wrong at runtime.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitError carries the exit status of an external program.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	var rangeErr *scan.InvalidRangeError
	var resolutionErr *scan.ResolutionError
	var exitErr *ExitError

	switch {
	case errors.As(err, &exitErr):
		if exitErr.Code > 0 {
			return exitErr.Code
		}
		return ExitFailure
	case errors.As(err, &usageErr), errors.As(err, &rangeErr), errors.As(err, &resolutionErr):
		return ExitUsage
	}
	return ExitFailure
}

// runRoot runs the root command with args. The log file opened by
// PersistentPreRunE is closed however the command ends.
func runRoot(args []string) error {
	defer closeLog()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

func Execute() {
	err := runRoot(os.Args[1:])
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	os.Exit(ExitCode(err))
}
