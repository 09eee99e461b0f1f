package command

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/cli"

	quickemailverification "github.com/quickemailverification/quickemailverification-go"
)

// Exit codes returned by RequestCommand.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitAPIError = 2
)

// RequestCommand sends a single API call with the verb in Method.
type RequestCommand struct {
	Meta
	Method quickemailverification.Method

	flags    clientFlags
	asJSON   bool
	data     string
	noFormat bool
}

func (c *RequestCommand) name() string {
	return strings.ToLower(string(c.Method))
}

func (c *RequestCommand) Synopsis() string {
	return fmt.Sprintf("Send a %s request to the API", c.Method)
}

func (c *RequestCommand) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, `Usage: qev %s [options] <path> [key=value ...]

  Send a %s request to path, relative to the API version prefix.
  key=value pairs become the query string for get and the request body
  for every other verb.

  Settings are read from the configuration file first, then from the
  environment (a .env file is loaded when present), then from flags.

Options:

`, c.name(), c.Method)

	f := c.flagSet()
	f.SetOutput(&b)
	f.PrintDefaults()
	return strings.TrimRight(b.String(), "\n")
}

func (c *RequestCommand) flagSet() *flag.FlagSet {
	f := flag.NewFlagSet(c.name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.flags.register(f)
	f.BoolVar(&c.asJSON, "json", false, "Encode the request body as JSON")
	f.StringVar(&c.data, "data", "", "Send this string as the body instead of key=value pairs")
	f.BoolVar(&c.noFormat, "no-format", false, "Print JSON responses without indentation")
	return f
}

func (c *RequestCommand) Run(args []string) int {
	f := c.flagSet()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return cli.RunResultHelp
	}

	rest := f.Args()
	if len(rest) == 0 {
		c.UI.Error("a request path is required")
		return cli.RunResultHelp
	}
	path := rest[0]

	params, err := parseParams(rest[1:])
	if err != nil {
		c.UI.Error(err.Error())
		return cli.RunResultHelp
	}

	s, err := c.flags.resolve()
	if err != nil {
		c.UI.Error(err.Error())
		return ExitError
	}

	client, err := c.newClient(&c.flags, s)
	if err != nil {
		c.UI.Error(err.Error())
		return ExitError
	}

	var opts []quickemailverification.RequestOption
	if c.asJSON {
		opts = append(opts, quickemailverification.WithRequestType(quickemailverification.RequestTypeJSON))
	}

	var body any
	switch {
	case c.data != "":
		body = c.data
	case len(params) > 0:
		body = params
	}

	ctx := context.Background()
	var resp *quickemailverification.Response
	if c.Method == quickemailverification.MethodGet {
		resp, err = client.Get(ctx, path, params, opts...)
	} else {
		resp, err = client.Request(ctx, c.Method, path, body, opts...)
	}
	if err != nil {
		var apiErr *quickemailverification.APIError
		if errors.As(err, &apiErr) {
			c.UI.Error(apiErr.Error())
			if out, ferr := c.format(apiErr.Body); ferr == nil && out != "" {
				c.UI.Error(out)
			}
			return ExitAPIError
		}
		c.UI.Error(err.Error())
		return ExitError
	}

	out, err := c.format(resp.Body)
	if err != nil {
		c.UI.Error(err.Error())
		return ExitError
	}
	if out != "" {
		c.UI.Output(out)
	}
	return ExitOK
}

// format renders a decoded body. Strings print unchanged, everything else
// as JSON.
func (c *RequestCommand) format(body any) (string, error) {
	switch b := body.(type) {
	case nil:
		return "", nil
	case string:
		return b, nil
	}

	var (
		data []byte
		err  error
	)
	if c.noFormat {
		data, err = json.Marshal(body)
	} else {
		data, err = json.MarshalIndent(body, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}
	return string(data), nil
}

// parseParams turns key=value arguments into a map. A repeated key keeps
// the last value.
func parseParams(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q must be key=value", arg)
		}
		params[k] = v
	}
	return params, nil
}
