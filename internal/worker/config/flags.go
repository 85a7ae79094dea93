package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/distory/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-l string   listen address
//	-d string   SQLite database path
//	-a string   story API base URL
//	-g string   cache generation name
//	-w int      network wait before cache fallback (in seconds)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-l", "-d", "-a", "-g", "-w"})

	fs := flag.NewFlagSet("worker", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "l", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "story API base URL")
	fs.StringVar(&cfg.Generation, "g", cfg.Generation, "cache generation name")
	wait := fs.Int("w", int(cfg.NetworkWait.Seconds()), "network wait (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.NetworkWait = time.Duration(*wait) * time.Second
}
