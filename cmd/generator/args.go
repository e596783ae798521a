package main

import (
	"flag"
	"io"

	"weather-testdata/internal/cli"
	"weather-testdata/internal/config"
)

// parseInvocation applies command-line flags onto cfg and returns the row
// count. On any invalid invocation, including an unknown flag such as "-5"
// or "-h", it prints the usage text to stdout and returns false before
// anything on disk is touched.
func parseInvocation(args []string, cfg *config.Config, stdout io.Writer) (int64, bool) {
	fs := flag.NewFlagSet("create_measurements", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.StringVar(&cfg.Generator.Root, "root", cfg.Generator.Root, "Project root containing the data directory")
	fs.Uint64Var(&cfg.Generator.Seed, "seed", cfg.Generator.Seed, "Random seed (0 picks one at random)")
	fs.StringVar(&cfg.Generator.Compression, "compress", cfg.Generator.Compression, "Output compression: none, gzip or zstd")
	fs.StringVar(&cfg.Generator.StationSource, "source", cfg.Generator.StationSource, "Station name source: csv or catalog")
	fs.StringVar(&cfg.Generator.StatusAddr, "status-addr", cfg.Generator.StatusAddr, "Serve progress, health and metrics on this address during the run")

	if err := fs.Parse(args); err != nil {
		cli.PrintUsage(stdout)
		return 0, false
	}

	rows, err := cli.ParseRowCount(fs.Args())
	if err != nil {
		cli.PrintUsage(stdout)
		return 0, false
	}

	return rows, true
}
