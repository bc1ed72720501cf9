package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
)

var apiPath = validation.Match(regexp.MustCompile(`^/[^\s]*$`)).Error("must be a path starting with /")

var jsonDocument = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && !json.Valid([]byte(s)) {
		return errors.New("must be valid JSON")
	}
	return nil
})

type RequestCommand struct {
	*base.Command

	flagMethod string
	flagPath   string
	flagData   string
}

func (c *RequestCommand) Synopsis() string {
	return "Send a raw API request with the stored session"
}

func (c *RequestCommand) Help() string {
	return `Usage: rpctl request -path <path> [-method <verb>] [-data <json>]

  Sends one request through the API client, including the automatic token
  refresh, and prints the JSON response.` +
		c.Flags().Help()
}

func (c *RequestCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("request", flag.ContinueOnError))
	f.StringVar(&c.flagMethod, "method", http.MethodGet, "HTTP method.")
	f.StringVar(&c.flagPath, "path", "", "(Required) API path relative to the base URL, e.g. /auth/users/me/.")
	f.StringVar(&c.flagData, "data", "", "JSON request body.")
	return f
}

func (c *RequestCommand) validate() error {
	return validation.Errors{
		"method": validation.Validate(strings.ToUpper(c.flagMethod), validation.Required, validation.In(
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		)),
		"path": validation.Validate(c.flagPath, validation.Required, apiPath),
		"data": validation.Validate(c.flagData, jsonDocument),
	}.Filter()
}

func (c *RequestCommand) Run(args []string) int {
	if code, ok := c.Parse(c.Flags(), args); !ok {
		return code
	}
	if err := c.validate(); err != nil {
		return c.Invalid(err)
	}

	opts := &apiclient.RequestOptions{Method: strings.ToUpper(c.flagMethod)}
	if c.flagData != "" {
		opts.Body = []byte(c.flagData)
	}
	raw, err := c.Client.Request(c.Context(), c.flagPath, opts)
	if err != nil {
		return c.Fail(err)
	}
	c.OutputRaw(raw)
	return 0
}
