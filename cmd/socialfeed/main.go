// Command socialfeed serves the social feed API.
//
//	socialfeed [-config path] [-env path] [serve|seed]
//
// "serve" (the default) runs the HTTP service until SIGINT/SIGTERM. "seed"
// migrates the database, installs the demo dataset when it is empty, and
// exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/socialfeed/config"
	"github.com/kbukum/socialfeed/internal/app"
)

func main() {
	var configFile, envFile string
	flag.StringVar(&configFile, "config", "", "config file (default: search ./cmd/socialfeed, .)")
	flag.StringVar(&envFile, "env", "", ".env file (default: search ./cmd/socialfeed, .)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [serve|seed]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(context.Background(), flag.Arg(0), configFile, envFile); err != nil {
		fmt.Fprintf(os.Stderr, "socialfeed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command, configFile, envFile string) error {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	cfg, err := app.Load(opts...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch command {
	case "", "serve":
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		return a.Run(ctx)
	case "seed":
		return app.Seed(ctx, cfg)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
