package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jessevdk/go-flags"

	"github.com/riskibarqy/team-draw/internal/cli"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

var options struct {
	Split  cli.Split  `command:"split"  description:"draw two balanced teams from a roster export"`
	Import cli.Import `command:"import" description:"load a roster export into postgres or sqlite"`
	Debug  bool       `long:"debug" env:"DEBUG" description:"turn on debug logging"`
}

var version = "unknown"

func getVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

func main() {
	p := flags.NewParser(&options, flags.Default)
	p.CommandHandler = func(c flags.Commander, args []string) error {
		level := logging.LevelInfo
		if options.Debug {
			level = logging.LevelDebug
		}
		logger := logging.NewConsole(os.Stderr, level)
		logging.SetDefault(logger)
		defer func() { _ = logger.Sync() }()

		logger.Debug("team draw", "version", getVersion())
		if cs, ok := c.(interface{ Set(cli.CommonOpts) }); ok {
			cs.Set(cli.CommonOpts{Version: getVersion(), Logger: logger, Out: os.Stdout})
		}

		return c.Execute(args)
	}

	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
