package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/portalcli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     base URL of the Portal API (default from Config)
//	-d string     local credentials database path
//	-r duration   redirect notice delay, e.g. 1500ms
//	-t duration   per-request HTTP timeout, e.g. 10s
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the Portal API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local credentials database path")
	fs.DurationVar(&cfg.RedirectDelay, "r", cfg.RedirectDelay, "redirect notice delay")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request HTTP timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
