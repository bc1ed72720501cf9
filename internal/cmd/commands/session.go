package commands

import (
	"flag"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
	"github.com/jrsteele09/research-platform-client/tokens"
)

// NowTimeFunc is used by status to decide whether the access token expired.
var NowTimeFunc = time.Now

type LoginCommand struct {
	*base.Command

	flagEmail    string
	flagPassword string
}

type loginArgs struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a loginArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Email, validation.Required, is.EmailFormat),
		validation.Field(&a.Password, validation.Required),
	)
}

func (c *LoginCommand) Synopsis() string {
	return "Sign in and store the session tokens"
}

func (c *LoginCommand) Help() string {
	return `Usage: rpctl login -email <address> [-password <password>]

  Signs in to the research platform. The access and refresh tokens are
  written to the token file so later commands reuse the session.
  The password is prompted for when the flag is omitted.` +
		c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	f.StringVar(&c.flagEmail, "email", "", "(Required) Account email address.")
	f.StringVar(&c.flagPassword, "password", "", "Account password.")
	return f
}

func (c *LoginCommand) Run(args []string) int {
	if code, ok := c.Parse(c.Flags(), args); !ok {
		return code
	}

	if c.flagPassword == "" && c.flagEmail != "" {
		password, err := c.UI.AskSecret("Password:")
		if err != nil {
			c.UI.Error(fmt.Sprintf("error reading password: %v", err))
			return 1
		}
		c.flagPassword = password
	}

	in := loginArgs{Email: strings.TrimSpace(c.flagEmail), Password: c.flagPassword}
	if err := in.Validate(); err != nil {
		return c.Invalid(err)
	}

	resp, err := c.Client.Auth.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		return c.Fail(err)
	}

	name := in.Email
	if resp.User != nil {
		name = resp.User.FullName()
	}
	c.UI.Output(fmt.Sprintf("Logged in as %s.", name))
	return 0
}

type LogoutCommand struct {
	*base.Command
}

func (c *LogoutCommand) Synopsis() string {
	return "Sign out and forget the stored tokens"
}

func (c *LogoutCommand) Help() string {
	return `Usage: rpctl logout

  Notifies the platform and removes the stored tokens. The local session is
  cleared even when the server call fails.`
}

func (c *LogoutCommand) Run(args []string) int {
	if code, ok := c.Parse(base.NewFlagSet(flag.NewFlagSet("logout", flag.ContinueOnError)), args); !ok {
		return code
	}
	if !c.Client.IsAuthenticated() {
		c.UI.Output("Not logged in.")
		return 0
	}
	if err := c.Client.Auth.Logout(c.Context()); err != nil {
		c.UI.Warn("Local session cleared, but the server rejected the logout.")
		return c.Fail(err)
	}
	c.UI.Output("Logged out.")
	return 0
}

type StatusCommand struct {
	*base.Command
}

func (c *StatusCommand) Synopsis() string {
	return "Show the stored session"
}

func (c *StatusCommand) Help() string {
	return `Usage: rpctl status

  Prints whether a session is stored and what its access token claims.
  The token is decoded locally; nothing is sent to the server.`
}

func (c *StatusCommand) Run(args []string) int {
	if code, ok := c.Parse(base.NewFlagSet(flag.NewFlagSet("status", flag.ContinueOnError)), args); !ok {
		return code
	}

	c.UI.Output(fmt.Sprintf("Server:        %s", c.Client.BaseURL()))
	if !c.Client.IsAuthenticated() {
		c.UI.Output("Not logged in.")
		return 0
	}

	session := c.Client.Session()
	c.UI.Output("Authenticated: yes")
	c.UI.Output(fmt.Sprintf("Refreshable:   %s", yesNo(session.HasRefreshToken())))

	claims, err := tokens.ParseClaims(session.AccessToken)
	if err != nil {
		c.UI.Warn(fmt.Sprintf("Access token is not a readable JWT: %v", err))
		return 0
	}
	if claims.UserID != "" {
		c.UI.Output(fmt.Sprintf("User ID:       %s", claims.UserID))
	}
	if claims.TokenType != "" {
		c.UI.Output(fmt.Sprintf("Token type:    %s", claims.TokenType))
	}
	if !claims.ExpiresAt.IsZero() {
		expiry := claims.ExpiresAt.Local().Format(time.RFC3339)
		if claims.Expired(NowTimeFunc()) {
			expiry += " (expired, will refresh on next request)"
		}
		c.UI.Output(fmt.Sprintf("Expires:       %s", expiry))
	}
	return 0
}

type WhoAmICommand struct {
	*base.Command
}

func (c *WhoAmICommand) Synopsis() string {
	return "Show the signed in user"
}

func (c *WhoAmICommand) Help() string {
	return `Usage: rpctl whoami

  Fetches the current user's profile from the platform.`
}

func (c *WhoAmICommand) Run(args []string) int {
	if code, ok := c.Parse(base.NewFlagSet(flag.NewFlagSet("whoami", flag.ContinueOnError)), args); !ok {
		return code
	}

	user, err := c.Client.Auth.CurrentUser(c.Context())
	if err != nil {
		return c.Fail(err)
	}

	approval := "approved"
	if !user.IsApproved {
		approval = "pending approval"
	}
	c.UI.Output(fmt.Sprintf("%s <%s>", user.FullName(), user.Email))
	c.UI.Output(fmt.Sprintf("Role: %s (%s)", user.Role, approval))
	if user.Institution != "" {
		c.UI.Output(fmt.Sprintf("Institution: %s", user.Institution))
	}
	return 0
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
