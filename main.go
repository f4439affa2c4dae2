package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/fsutils"
	"github.com/filetug/millertug/pkg/logging"
	"github.com/filetug/millertug/pkg/metrics"
	"github.com/filetug/millertug/pkg/millertug"
	"github.com/filetug/millertug/pkg/millertug/ftsettings"
	"github.com/filetug/millertug/pkg/profiling"
	"go.uber.org/zap"
)

var osExit = os.Exit
var pprofStopCPUProfile = pprof.StopCPUProfile

var browse = millertug.Run

type options struct {
	configPath  string
	logFile     string
	logLevel    string
	quiet       bool
	cpuProfile  string
	memProfile  string
	pprofAddr   string
	metricsAddr string
	start       string
}

func parseFlags(args []string, output io.Writer) (o options, err error) {
	fs := flag.NewFlagSet("millertug", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: millertug [flags] [directory]\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&o.configPath, "config", "", "read settings from `file` (default: user config dir)")
	fs.StringVar(&o.logFile, "log-file", "", "write logs to `file` (default: user cache dir)")
	fs.StringVar(&o.logLevel, "log-level", "", "log `level`: debug, info, warn or error")
	fs.BoolVar(&o.quiet, "q", false, "disable logging")
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	fs.StringVar(&o.memProfile, "memprofile", "", "write memory profile to `file`")
	fs.StringVar(&o.pprofAddr, "pprof", "", "start pprof http server on `address` (e.g. localhost:6060)")
	fs.StringVar(&o.metricsAddr, "metrics", "", "serve prometheus metrics on `address` (e.g. localhost:9090)")
	if err = fs.Parse(args); err != nil {
		return o, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		o.start = fs.Arg(0)
	default:
		return o, errors.New("at most one directory may be given")
	}
	return o, nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			pprofStopCPUProfile()
			osExit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		stop()
		osExit(1)
	}
}

var run = func(ctx context.Context, args []string) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	start, err := startDir(o.start)
	if err != nil {
		return err
	}

	configPath := o.configPath
	if configPath == "" {
		configPath, _ = ftsettings.GetConfigFilePath()
	}
	settings, err := ftsettings.Load(configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		settings.LogLevel = o.logLevel
	}

	logFile := o.logFile
	if logFile == "" && !o.quiet {
		if logFile, err = ftsettings.GetLogFilePath(); err != nil {
			return fmt.Errorf("failed to locate log file: %w", err)
		}
	}
	if err = logging.Init(logging.Config{Level: settings.LogLevel, OutputPath: fsutils.ExpandHome(logFile), Quiet: o.quiet}); err != nil {
		return err
	}
	defer func() {
		_ = logging.Sync()
	}()
	logger := logging.L()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if o.pprofAddr != "" {
		if err = profiling.Serve(ctx, o.pprofAddr, logger); err != nil {
			return fmt.Errorf("pprof server: %w", err)
		}
	}
	if o.metricsAddr != "" {
		if err = metrics.Serve(ctx, o.metricsAddr, logger); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
	}
	if o.cpuProfile != "" {
		stopCPUProfiling := profiling.DoCPUProfiling(o.cpuProfile, logger)
		defer stopCPUProfiling()
	}
	if o.memProfile != "" {
		writeMemProfile := profiling.DoMemProfiling(ctx, o.memProfile, logger)
		defer writeMemProfile()
	}

	if err = browse(ctx, start, settings, logger.Named("app")); err != nil {
		logger.Error("exited with error", zap.Error(err))
		return err
	}
	return nil
}

// startDir resolves the directory to open, defaulting to the working directory.
func startDir(arg string) (string, error) {
	if arg == "" {
		arg = "."
	}
	start, err := files.Canonicalize(fsutils.ExpandHome(arg))
	if err != nil {
		return "", fmt.Errorf("invalid start directory: %w", err)
	}
	isDir, err := fsutils.DirExists(start)
	if err != nil {
		return "", fmt.Errorf("invalid start directory: %w", err)
	}
	if !isDir {
		return "", fmt.Errorf("invalid start directory: %s is not a directory", start)
	}
	return start, nil
}
