package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/csak/csak/config"
	"github.com/csak/csak/output"
	"github.com/csak/csak/scan"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a host for open TCP or UDP ports",
	}
	scanCmd.AddCommand(newProtocolScanCmd(scan.TCP))
	scanCmd.AddCommand(newProtocolScanCmd(scan.UDP))
	return scanCmd
}

func newProtocolScanCmd(proto scan.Protocol) *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   fmt.Sprintf("%s --host HOST [--start PORT] [--end PORT]", proto),
		Short: fmt.Sprintf("Scan a host for open %s ports", proto),
		Args: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UsageError{Err: fmt.Errorf("unexpected arguments: %v", args)}
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load(c.Flags(), configPath)
			if err != nil {
				return &UsageError{Err: err}
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runScan(ctx, c, proto, cfg)
		},
	}

	flags := c.Flags()
	flags.StringP(config.KeyHost, "H", "", "Host to scan (hostname or IP address)")
	flags.Int(config.KeyStart, scan.MinPort, "First port of the range (inclusive)")
	flags.Int(config.KeyEnd, scan.MaxPort, "Last port of the range (inclusive)")
	flags.IntP(config.KeyConcurrency, "c", scan.DefaultParallelism, "Maximum number of probes in flight")
	flags.IntP(config.KeyTimeoutMS, "t", 1000, "Per-probe timeout in MS")
	flags.StringP(config.KeyOut, "o", "", "Write open ports to this file instead of stdout")
	flags.Bool(config.KeyNoProgress, false, "Do not draw a progress bar")
	flags.StringVar(&configPath, "config", "", "YAML file with default values for the flags above")

	return c
}

func runScan(ctx context.Context, c *cobra.Command, proto scan.Protocol, cfg *config.ScanConfig) error {

	ports, err := scan.NewPortRange(cfg.Start, cfg.End)
	if err != nil {
		return err
	}

	target := scan.NewTarget(cfg.Host, proto)

	sinks := []scan.Sink{}
	if cfg.Out != "" {
		sinks = append(sinks, output.NewFile(cfg.Out, proto))
	} else {
		sinks = append(sinks, output.NewConsole(c.OutOrStdout(), proto))
	}
	if !cfg.NoProgress {
		sinks = append(sinks, output.NewProgress(c.ErrOrStderr(), fmt.Sprintf("Scanning %s ports", proto)))
	}

	scanner := scan.NewScanner(cfg.Timeout, cfg.Concurrency)

	startTime := time.Now()
	log.Infof("Starting %s scan of %s ports %s at %s", proto, target.Host, ports, startTime.Format(time.RFC3339))

	result, err := scanner.Scan(ctx, target, ports, output.Multi(sinks...))
	if err != nil {
		return err
	}

	log.Debug(result.String())

	if cfg.Out != "" {
		log.Infof("Wrote %d open ports to %s", len(result.Open), cfg.Out)
		log.Info(result.Summary())
	} else {
		fmt.Fprintln(c.OutOrStdout(), result.Summary())
	}

	log.Infof("Scan %s in %s.", result.State, time.Since(startTime).String())

	return nil
}
