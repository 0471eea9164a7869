// Package cli holds the commands of the draw binary.
package cli

import (
	"io"
	"os"

	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

// CommonOpts is shared by every command and filled in by main before Execute.
type CommonOpts struct {
	Version string          `no-flag:"true"`
	Logger  *logging.Logger `no-flag:"true"`
	Out     io.Writer       `no-flag:"true"`
}

// Set sets the common options.
func (c *CommonOpts) Set(cc CommonOpts) {
	*c = cc
}

func (c *CommonOpts) logger() *logging.Logger {
	if c.Logger == nil {
		return logging.Default()
	}
	return c.Logger
}

func (c *CommonOpts) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
