package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Options struct {
	Verbose bool
	Format  string
	File    string
}

// Setup configures the standard logrus logger. Logs always go to stderr;
// stdout carries scan results only. When opts.File is set, logs are also
// written to a rotating file. The returned closer releases that file and
// sends logs to stderr only again.
func Setup(opts Options) (io.Closer, error) {

	log.SetLevel(log.InfoLevel)
	if opts.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch strings.ToLower(opts.Format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	default:
		return nil, fmt.Errorf("Unsupported log format '%s'", opts.Format)
	}

	if opts.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotating))

	return fileCloser{rotating}, nil
}

// fileCloser points the logger back at stderr before closing the file, so a
// late log line cannot reopen it.
type fileCloser struct {
	rotating *lumberjack.Logger
}

func (c fileCloser) Close() error {
	log.SetOutput(os.Stderr)
	return c.rotating.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
