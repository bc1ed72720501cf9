package base

import (
	"context"

	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jrsteele09/research-platform-client/apiclient"
)

// Command carries what every rpctl subcommand shares. One Client is built at
// the entry point and handed to all commands.
type Command struct {
	Ctx    context.Context
	Log    zerolog.Logger
	UI     cli.Ui
	Client *apiclient.Client

	// FS is where upload commands read local files from.
	FS afero.Fs
}

func (c *Command) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Command) Files() afero.Fs {
	if c.FS == nil {
		return afero.NewOsFs()
	}
	return c.FS
}
