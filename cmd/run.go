package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/csak/csak/runner"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run an external tool and stream its output",
		Long:  `Runs an external program (nmap, nikto, gobuster...) and streams its stdout and stderr line by line. The program's exit status becomes csak's exit status.`,
		Args: func(c *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Err: fmt.Errorf("Please specify a command to run")}
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stdout := c.OutOrStdout()
			stderr := c.ErrOrStderr()

			code, err := runner.Run(ctx, args[0], args[1:], runner.LineSinkFunc(func(stream runner.Stream, line string) {
				if stream == runner.Stderr {
					fmt.Fprintln(stderr, line)
					return
				}
				fmt.Fprintln(stdout, line)
			}))
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	// everything after the program name belongs to the program
	runCmd.Flags().SetInterspersed(false)
	return runCmd
}
