// Package command implements the qev command line tool, a thin shell over
// the quickemailverification client for issuing ad hoc API calls.
package command

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/cli"

	quickemailverification "github.com/quickemailverification/quickemailverification-go"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	return Run(args, ui, os.Stderr)
}

// Run is Main with the UI and log destination supplied by the caller.
func Run(args []string, ui cli.Ui, logOutput io.Writer) int {
	cliName := filepath.Base(args[0])

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	meta := Meta{UI: ui, LogOutput: logOutput}

	c := &cli.CLI{
		Name:       cliName,
		Args:       args[1:],
		Version:    quickemailverification.Version,
		Commands:   Commands(meta),
		HelpWriter: logOutput,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	return exitCode
}

// Commands returns the command table.
func Commands(meta Meta) map[string]cli.CommandFactory {
	verb := func(method quickemailverification.Method) cli.CommandFactory {
		return func() (cli.Command, error) {
			return &RequestCommand{Meta: meta, Method: method}, nil
		}
	}

	return map[string]cli.CommandFactory{
		"get":    verb(quickemailverification.MethodGet),
		"post":   verb(quickemailverification.MethodPost),
		"put":    verb(quickemailverification.MethodPut),
		"patch":  verb(quickemailverification.MethodPatch),
		"delete": verb(quickemailverification.MethodDelete),
		"version": func() (cli.Command, error) {
			return &VersionCommand{Meta: meta}, nil
		},
	}
}
