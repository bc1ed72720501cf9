package commands

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"

	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
	"github.com/jrsteele09/research-platform-client/internal/version"
)

type VersionCommand struct {
	*base.Command
}

func (c *VersionCommand) Synopsis() string {
	return "Print the rpctl version"
}

func (c *VersionCommand) Help() string {
	return `Usage: rpctl version`
}

func (c *VersionCommand) Run(args []string) int {
	banner := figure.NewFigure(version.AppName, "cybermedium", true)
	c.UI.Output(banner.String())
	c.UI.Output(fmt.Sprintf("%s v%s", version.AppName, version.Version))
	return 0
}
