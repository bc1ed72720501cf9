package cmd_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/apitest"
	"github.com/jrsteele09/research-platform-client/internal/cmd"
	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
	"github.com/jrsteele09/research-platform-client/internal/cmd/commands"
	"github.com/jrsteele09/research-platform-client/internal/config"
	"github.com/jrsteele09/research-platform-client/tokens"
	"github.com/jrsteele09/research-platform-client/tokens/filestore"
)

type testFixture struct {
	server *apitest.Server
	client *apiclient.Client
	fs     afero.Fs
	base   *base.Command
}

type result struct {
	code   int
	stdout string
	stderr string
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	server := apitest.New()
	baseURL := server.Start()
	t.Cleanup(server.Close)

	client, err := apiclient.New(baseURL, apiclient.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	return &testFixture{
		server: server,
		client: client,
		fs:     fs,
		base:   &base.Command{Ctx: context.Background(), Log: zerolog.Nop(), Client: client, FS: fs},
	}
}

func (f *testFixture) run(args ...string) result {
	return f.runWithInput("", args...)
}

func (f *testFixture) runWithInput(input string, args ...string) result {
	ui := cli.NewMockUi()
	ui.InputReader = strings.NewReader(input)
	f.base.UI = ui
	code := cmd.Run(append([]string{"rpctl"}, args...), f.base)
	return result{code: code, stdout: ui.OutputWriter.String(), stderr: ui.ErrorWriter.String()}
}

func (f *testFixture) login(t *testing.T, email, password string) {
	t.Helper()
	res := f.run("login", "-email", email, "-password", password)
	require.Equal(t, 0, res.code, res.stderr)
}

func TestSessionCommands(t *testing.T) {
	f := setupTestFixture(t)

	res := f.run("status")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "Not logged in.")

	res = f.run("login", "-email", apitest.ResearcherEmail, "-password", apitest.ResearcherPass)
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Logged in as Ada Lovelace.")
	require.True(t, f.client.IsAuthenticated())

	res = f.run("whoami")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Ada Lovelace <"+apitest.ResearcherEmail+">")
	require.Contains(t, res.stdout, "Role: researcher (approved)")

	res = f.run("status")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "Authenticated: yes")
	require.Contains(t, res.stdout, "Refreshable:   yes")
	require.Contains(t, res.stdout, "Token type:    access")
	require.NotContains(t, res.stdout, "expired")

	res = f.run("logout")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Logged out.")
	require.False(t, f.client.IsAuthenticated())

	res = f.run("logout")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "Not logged in.")
}

func TestStatus_ExpiredToken(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, apitest.ResearcherEmail, apitest.ResearcherPass)

	commands.NowTimeFunc = func() time.Time { return time.Now().Add(24 * time.Hour) }
	t.Cleanup(func() { commands.NowTimeFunc = time.Now })

	res := f.run("status")
	require.Equal(t, 0, res.code)
	require.Contains(t, res.stdout, "(expired, will refresh on next request)")
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr []string
	}{
		{
			name:   "invalid email",
			args:   []string{"login", "-email", "not-an-email", "-password", "x"},
			stderr: []string{"invalid arguments", "email: must be a valid email address"},
		},
		{
			name:   "missing email",
			args:   []string{"login"},
			stderr: []string{"email: cannot be blank"},
		},
		{
			name:   "wrong password",
			args:   []string{"login", "-email", apitest.ResearcherEmail, "-password", "wrong"},
			stderr: []string{"error (status 400): Request failed", "non_field_errors: Invalid credentials"},
		},
		{
			name:   "unknown flag",
			args:   []string{"login", "-username", "ada"},
			stderr: []string{"error parsing flags"},
		},
		{
			name:   "stray argument",
			args:   []string{"login", "-email", apitest.ResearcherEmail, "-password", "x", "extra"},
			stderr: []string{"unexpected arguments: extra"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t)
			res := f.run(tt.args...)
			require.Equal(t, 1, res.code)
			for _, want := range tt.stderr {
				require.Contains(t, res.stderr, want)
			}
			require.False(t, f.client.IsAuthenticated())
		})
	}
}

func TestLogin_PromptsForPassword(t *testing.T) {
	f := setupTestFixture(t)

	res := f.runWithInput(apitest.ResearcherPass+"\n", "login", "-email", apitest.ResearcherEmail)
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Logged in as Ada Lovelace.")
}

func TestWhoAmI_NotLoggedIn(t *testing.T) {
	f := setupTestFixture(t)

	res := f.run("whoami")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "error (status 401): Authentication credentials were not provided.")
}

func TestWhoAmI_RefreshesExpiredToken(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, apitest.ResearcherEmail, apitest.ResearcherPass)
	f.server.ExpireAccessTokens()

	res := f.run("whoami")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Ada Lovelace")
	require.Len(t, f.server.CallsTo("/auth/token/refresh/"), 1)
}

func TestPublications(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, apitest.ResearcherEmail, apitest.ResearcherPass)

	t.Run("page", func(t *testing.T) {
		res := f.run("publications", "-page", "3")
		require.Equal(t, 0, res.code, res.stderr)
		require.Contains(t, res.stdout, "ID")
		require.Contains(t, res.stdout, "Study 25 on thin-film materials")
		require.Contains(t, res.stdout, "Ada Lovelace")
		require.Contains(t, res.stdout, "Showing 5 of 25.")
		require.NotContains(t, res.stdout, "next page")
	})

	t.Run("first page has more", func(t *testing.T) {
		res := f.run("publications")
		require.Equal(t, 0, res.code, res.stderr)
		require.Contains(t, res.stdout, "Showing 10 of 25. More results on the next page.")
		calls := f.server.CallsTo("/research/publications/")
		require.Equal(t, "", calls[len(calls)-1].Query)
	})

	t.Run("filtered", func(t *testing.T) {
		res := f.run("publications", "-status", "pending", "-search", "study")
		require.Equal(t, 0, res.code, res.stderr)
		require.Contains(t, res.stdout, "Showing 5 of 5.")
	})

	t.Run("no results", func(t *testing.T) {
		res := f.run("publications", "-search", "graphene")
		require.Equal(t, 0, res.code, res.stderr)
		require.Contains(t, res.stdout, "No publications found.")
	})

	t.Run("bad status", func(t *testing.T) {
		res := f.run("publications", "-status", "lost")
		require.Equal(t, 1, res.code)
		require.Contains(t, res.stderr, "status: must be a valid value")
	})
}

func TestRequest(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t, apitest.ResearcherEmail, apitest.ResearcherPass)

	res := f.run("request", "-path", "/organization/stats/")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, `"publications"`)

	res = f.run("request", "-method", "delete", "-path", "/research/publications/1/")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "(no content)")

	res = f.run("request", "-method", "POST", "-path", "/research/publications/", "-data", `{"title": ""}`)
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "error (status 400)")
	require.Contains(t, res.stderr, "title:")

	res = f.run("request", "-path", "research/publications/", "-data", "{")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "data: must be valid JSON")
	require.Contains(t, res.stderr, "path: must be a path starting with /")
}

func TestSettingsAndUpload(t *testing.T) {
	f := setupTestFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, "/img/vision.png", []byte("png"), 0o644))
	require.NoError(t, afero.WriteFile(f.fs, "/img/mission.jpg", []byte("jpg"), 0o644))
	require.NoError(t, afero.WriteFile(f.fs, "/img/logo.gif", []byte("gif"), 0o644))

	res := f.run("settings")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Scientific Research Center")

	res = f.run("settings", "-field", "vision=Open science")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "status 401")

	f.login(t, apitest.AdminEmail, apitest.AdminPassword)

	res = f.run("settings", "-vision-image", "/img/vision.png", "-field", "vision=Open science")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "Organization settings updated.")
	require.Contains(t, res.stdout, "/media/organization/vision.png")
	require.Contains(t, res.stdout, "Open science")

	res = f.run("settings", "-logo", "/img/logo.gif")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "logo: must be a JPEG or PNG image")

	res = f.run("upload", "-method", "PUT", "-endpoint", "/organization/settings/", "-name", "mission_image", "-file", "/img/mission.jpg")
	require.Equal(t, 0, res.code, res.stderr)
	require.Contains(t, res.stdout, "/media/organization/mission.jpg")

	res = f.run("upload", "-endpoint", "/organization/settings/", "-file", "/img/missing.png")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "error opening file")

	res = f.run("upload", "-method", "GET", "-file", "/img/mission.jpg")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "endpoint: cannot be blank")
	require.Contains(t, res.stderr, "method: must be a valid value")
}

func TestVersion(t *testing.T) {
	f := setupTestFixture(t)

	for _, args := range [][]string{{"version"}, {"-v"}, {"-version"}} {
		res := f.run(args...)
		require.Equal(t, 0, res.code)
		require.Contains(t, res.stdout, "rpctl v")
	}
}

func TestNewClient_TokenFile(t *testing.T) {
	const tokenFile = "/home/researcher/.rpctl/tokens.json"

	t.Run("hydrates the session", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		store := filestore.New(fs, tokenFile)
		require.NoError(t, store.Set(tokens.AccessTokenKey, "A1"))
		require.NoError(t, store.Set(tokens.RefreshTokenKey, "R1"))
		ui := cli.NewMockUi()

		client, err := cmd.NewClient(config.New(), store, zerolog.Nop(), ui)
		require.NoError(t, err)
		require.Equal(t, tokens.Session{AccessToken: "A1", RefreshToken: "R1"}, client.Session())
		require.Empty(t, ui.ErrorWriter.String())
	})

	t.Run("corrupt file is discarded", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, tokenFile, []byte("{not json"), 0o600))
		ui := cli.NewMockUi()

		client, err := cmd.NewClient(config.New(), filestore.New(fs, tokenFile), zerolog.Nop(), ui)
		require.NoError(t, err)
		require.False(t, client.IsAuthenticated())
		require.Contains(t, ui.ErrorWriter.String(), tokenFile+" could not be read and was removed")

		exists, err := afero.Exists(fs, tokenFile)
		require.NoError(t, err)
		require.False(t, exists)
	})
}
