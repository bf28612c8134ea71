package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/Philanthropists/strqueue/internal/harness"
	"github.com/Philanthropists/strqueue/internal/logging"
)

var GitCommit string

type Options struct {
	Script     string
	ConfigFile string
	Verbose    int
	Timeout    uint
	Sync       bool
}

func getOptions() Options {
	defer flag.Parse()

	var options Options

	flag.StringVar(&options.Script, "f", "", "read commands from file instead of stdin")
	flag.StringVar(&options.ConfigFile, "config", "", "JSON file with harness options")
	flag.IntVar(&options.Verbose, "v", -1, "verbosity level 0..3, overrides the config")
	flag.UintVar(&options.Timeout, "timeout", 0, "seconds before the session is cancelled")
	flag.BoolVar(&options.Sync, "sync", false, "serialize queue access behind a mutex")

	return options
}

func getInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func main() {
	options := getOptions()

	log := logging.New()
	defer func() { _ = log.Sync() }()

	version := "dev"
	if len(GitCommit) >= 3 {
		version = GitCommit[:3]
	}
	log = log.With(logging.String("version", version))

	config, err := harness.LoadConfig(options.ConfigFile)
	if err != nil {
		log.Error("failed to load config", logging.Error(err))
		os.Exit(1)
	}
	if options.Verbose >= 0 {
		config.Verbose = options.Verbose
	}
	if options.Sync {
		config.Synchronized = true
	}

	input, err := getInput(options.Script)
	if err != nil {
		log.Error("failed to open script", logging.Error(err), logging.String("file", options.Script))
		os.Exit(1)
	}
	defer input.Close()

	ctx := log.GetContext(context.Background())
	if options.Timeout != 0 {
		t := time.Duration(options.Timeout) * time.Second
		nctx, cancel := context.WithTimeout(ctx, t)
		ctx = nctx
		defer cancel()
	}

	console := harness.New(config, os.Stdout, logging.FromContext(ctx))
	if err := console.Run(ctx, input); err != nil {
		log.Error("session failed", logging.Error(err))
		_ = input.Close()
		os.Exit(1)
	}
}
