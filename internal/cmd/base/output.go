package base

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/internal/utils"
)

// Fail reports err on the error stream and returns the failing exit code.
// API errors print their status, message and any field errors.
func (c *Command) Fail(err error) int {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		c.UI.Error(fmt.Sprintf("error: %v", err))
		return 1
	}

	c.Log.Debug().Err(err).Int("status", apiErr.Status).Msg("Command failed")
	if apiErr.Status == 0 {
		c.UI.Error(fmt.Sprintf("error: %s", apiErr.Error()))
		return 1
	}

	c.UI.Error(fmt.Sprintf("error (status %d): %s", apiErr.Status, apiErr.Message))
	fields := apiErr.FieldErrors()
	for _, name := range utils.SortedKeys(fields) {
		c.UI.Error(fmt.Sprintf("  %s: %s", name, strings.Join(fields[name], " ")))
	}
	return 1
}

// Invalid reports a usage problem found before any request was made.
func (c *Command) Invalid(err error) int {
	c.UI.Error(fmt.Sprintf("invalid arguments: %v", err))
	return 1
}

func (c *Command) OutputJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	c.UI.Output(string(out))
	return nil
}

// OutputRaw pretty prints a response body, or a placeholder for empty ones.
func (c *Command) OutputRaw(raw json.RawMessage) {
	if len(raw) == 0 {
		c.UI.Output("(no content)")
		return
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		c.UI.Output(string(raw))
		return
	}
	c.UI.Output(buf.String())
}
