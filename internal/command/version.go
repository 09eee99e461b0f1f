package command

import (
	quickemailverification "github.com/quickemailverification/quickemailverification-go"
)

// VersionCommand prints the library version.
type VersionCommand struct {
	Meta
}

func (c *VersionCommand) Synopsis() string {
	return "Print the client version"
}

func (c *VersionCommand) Help() string {
	return `Usage: qev version

  Print the version of the client library and its default user agent.`
}

func (c *VersionCommand) Run(args []string) int {
	c.UI.Output("qev v" + quickemailverification.Version)
	c.UI.Output("User-Agent: " + quickemailverification.DefaultUserAgent)
	return 0
}
