package commands

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/apimodel"
	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
	"github.com/jrsteele09/research-platform-client/internal/utils"
)

type PublicationsCommand struct {
	*base.Command

	flagPage   int
	flagSearch string
	flagStatus string
}

func (c *PublicationsCommand) Synopsis() string {
	return "List research publications"
}

func (c *PublicationsCommand) Help() string {
	return `Usage: rpctl publications [options]

  Lists one page of publications visible to the signed in user.` +
		c.Flags().Help()
}

func (c *PublicationsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("publications", flag.ContinueOnError))
	f.IntVar(&c.flagPage, "page", 0, "Page number, starting at 1.")
	f.StringVar(&c.flagSearch, "search", "", "Only show publications whose title or abstract matches.")
	f.StringVar(&c.flagStatus, "status", "", "Only show publications with this status.")
	return f
}

func (c *PublicationsCommand) validate() error {
	return validation.Errors{
		"page": validation.Validate(c.flagPage, validation.Min(0)),
		"status": validation.Validate(c.flagStatus, validation.In(
			string(apimodel.PublicationDraft),
			string(apimodel.PublicationPending),
			string(apimodel.PublicationApproved),
			string(apimodel.PublicationPublished),
			string(apimodel.PublicationRejected),
		)),
	}.Filter()
}

func (c *PublicationsCommand) Run(args []string) int {
	if code, ok := c.Parse(c.Flags(), args); !ok {
		return code
	}
	if err := c.validate(); err != nil {
		return c.Invalid(err)
	}

	params := apiclient.Params{"page": optional(c.flagPage), "search": optional(strings.TrimSpace(c.flagSearch)), "status": optional(c.flagStatus)}
	page, err := c.Client.Research.Publications(c.Context(), params)
	if err != nil {
		return c.Fail(err)
	}

	if len(page.Results) == 0 {
		c.UI.Output("No publications found.")
		return 0
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tAUTHOR")
	for _, p := range page.Results {
		author := utils.Value(p.CorrespondingAuthor).FullName()
		if author == "" {
			author = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Status, p.Title, author)
	}
	w.Flush()
	c.UI.Output(strings.TrimRight(b.String(), "\n"))

	footer := fmt.Sprintf("Showing %d of %d.", len(page.Results), page.Count)
	if page.HasNext() {
		footer += " More results on the next page."
	}
	c.UI.Output(footer)
	return 0
}

// optional turns a zero flag value into an omitted query parameter.
func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return utils.Ptr(v)
}
