package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
	"github.com/jrsteele09/research-platform-client/internal/cmd/commands"
	"github.com/jrsteele09/research-platform-client/internal/config"
	"github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/internal/logging"
	"github.com/jrsteele09/research-platform-client/internal/version"
	"github.com/jrsteele09/research-platform-client/tokens/filestore"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	cfg, err := config.Load("")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	logger := logging.New(logging.Config{Level: cfg.GetLogLevel(), Format: cfg.GetLogFormat()})
	client, err := NewClient(cfg, filestore.NewOS(cfg.GetTokenFile()), logger, ui)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating API client: %v", err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(args, &base.Command{
		Ctx:    ctx,
		Log:    logger,
		UI:     ui,
		Client: client,
		FS:     afero.NewOsFs(),
	})
}

// NewClient builds the API client over the token file store. A corrupt token
// file is removed with a warning so that login still works.
func NewClient(cfg config.Config, store *filestore.FileStore, logger zerolog.Logger, ui cli.Ui) (*apiclient.Client, error) {
	options := []apiclient.Option{
		apiclient.WithHTTPClient(config.NewHTTPClient(cfg)),
		apiclient.WithStore(store),
		apiclient.WithLogger(logger),
		apiclient.WithRefreshCoalescing(cfg.GetCoalesceRefresh()),
	}

	client, err := apiclient.New(cfg.GetBaseURL(), options...)
	if !errors.Is(err, errors.ErrCorruptStore) {
		return client, err
	}

	logger.Warn().Err(err).Str("path", store.Path()).Msg("Discarding corrupt token file")
	ui.Warn(fmt.Sprintf("Token file %s could not be read and was removed. Log in again.", store.Path()))
	if err := store.Reset(); err != nil {
		return nil, errors.Wrapf(err, "remove token file %s", store.Path())
	}
	return apiclient.New(cfg.GetBaseURL(), options...)
}

// Run dispatches args to a subcommand sharing the dependencies in b.
func Run(args []string, b *base.Command) int {
	cliName := version.AppName
	if len(args) > 0 {
		cliName = args[0]
	} else {
		args = []string{cliName}
	}

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  version.Version,
		Commands: Commands(b),
	}

	exitCode, err := c.Run()
	if err != nil {
		panic(err)
	}

	return exitCode
}

// Commands returns the subcommand factories, all bound to the same client.
func Commands(b *base.Command) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"login": func() (cli.Command, error) {
			return &commands.LoginCommand{Command: b}, nil
		},
		"logout": func() (cli.Command, error) {
			return &commands.LogoutCommand{Command: b}, nil
		},
		"status": func() (cli.Command, error) {
			return &commands.StatusCommand{Command: b}, nil
		},
		"whoami": func() (cli.Command, error) {
			return &commands.WhoAmICommand{Command: b}, nil
		},
		"publications": func() (cli.Command, error) {
			return &commands.PublicationsCommand{Command: b}, nil
		},
		"settings": func() (cli.Command, error) {
			return &commands.SettingsCommand{Command: b}, nil
		},
		"upload": func() (cli.Command, error) {
			return &commands.UploadCommand{Command: b}, nil
		},
		"request": func() (cli.Command, error) {
			return &commands.RequestCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &commands.VersionCommand{Command: b}, nil
		},
	}
}
