package base

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mitchellh/cli"
)

// FlagSet wraps a standard flag set so commands can render their options
// inside Help().
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet silences the wrapped set's own usage output; parse errors are
// reported through the command's UI instead.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" && fl.DefValue != "0" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return b.String()
}

// KeyValueFlag collects repeated -flag key=value pairs.
type KeyValueFlag map[string]string

var _ flag.Value = KeyValueFlag{}

func (kv KeyValueFlag) String() string {
	pairs := make([]string, 0, len(kv))
	for k, v := range kv {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (kv KeyValueFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	kv[strings.TrimSpace(key)] = val
	return nil
}

// Parse parses args into f. When ok is false the command must return exitCode
// straight away.
func (c *Command) Parse(f *FlagSet, args []string) (exitCode int, ok bool) {
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.RunResultHelp, false
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1, false
	}
	if f.NArg() > 0 {
		c.UI.Error(fmt.Sprintf("unexpected arguments: %s", strings.Join(f.Args(), " ")))
		return 1, false
	}
	return 0, true
}
