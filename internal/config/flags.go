package config

import (
	"flag"
	"os"

	"uservault/internal/flagx"
	"uservault/internal/storage"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-b string   backend type: inmemory | embedded | relational
//	-d string   sqlite database path (or ":memory:")
//	-f string   bolt database path
//	-v          verbose (debug) logging
//
// os.Args is filtered to just these flags first, so subcommand arguments
// and the -c/-config flag handled elsewhere do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-f", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	backend := fs.String("b", string(config.Backend), "storage backend (inmemory|embedded|relational)")
	fs.StringVar(&config.SQLitePath, "d", config.SQLitePath, "sqlite database path")
	fs.StringVar(&config.BoltPath, "f", config.BoltPath, "bolt database path")
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	t, err := storage.ParseBackendType(*backend)
	if err != nil {
		panic(err)
	}
	config.Backend = t
}
