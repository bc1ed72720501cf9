package commands

import (
	"flag"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/apimodel"
	"github.com/jrsteele09/research-platform-client/internal/cmd/base"
)

type UploadCommand struct {
	*base.Command

	flagEndpoint string
	flagFile     string
	flagName     string
	flagMethod   string
	flagFields   base.KeyValueFlag
}

func (c *UploadCommand) Synopsis() string {
	return "Upload a file as multipart form data"
}

func (c *UploadCommand) Help() string {
	return `Usage: rpctl upload -endpoint <path> -file <path> [-field key=value ...]

  Sends a local file to an API endpoint as multipart/form-data using the
  stored session. Extra form fields are given with repeated -field flags.` +
		c.Flags().Help()
}

func (c *UploadCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("upload", flag.ContinueOnError))
	c.flagFields = base.KeyValueFlag{}
	f.StringVar(&c.flagEndpoint, "endpoint", "", "(Required) API path relative to the base URL, e.g. /research/publications/.")
	f.StringVar(&c.flagFile, "file", "", "(Required) Local file to upload.")
	f.StringVar(&c.flagName, "name", apiclient.FileFieldName, "Form field the file is sent under.")
	f.StringVar(&c.flagMethod, "method", http.MethodPost, "HTTP method, POST, PUT or PATCH.")
	f.Var(c.flagFields, "field", "Extra form field as key=value. May be repeated.")
	return f
}

func (c *UploadCommand) validate() error {
	return validation.Errors{
		"endpoint": validation.Validate(c.flagEndpoint, validation.Required, apiPath),
		"file":     validation.Validate(c.flagFile, validation.Required),
		"name":     validation.Validate(c.flagName, validation.Required),
		"method":   validation.Validate(strings.ToUpper(c.flagMethod), validation.In(http.MethodPost, http.MethodPut, http.MethodPatch)),
	}.Filter()
}

func (c *UploadCommand) Run(args []string) int {
	if code, ok := c.Parse(c.Flags(), args); !ok {
		return code
	}
	if err := c.validate(); err != nil {
		return c.Invalid(err)
	}

	f, err := c.Files().Open(c.flagFile)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error opening file: %v", err))
		return 1
	}
	defer f.Close()

	files := map[string]apiclient.File{c.flagName: {Name: filepath.Base(c.flagFile), Content: f}}
	raw, err := c.Client.Files().UploadForm(c.Context(), strings.ToUpper(c.flagMethod), c.flagEndpoint, files, c.flagFields)
	if err != nil {
		return c.Fail(err)
	}
	c.OutputRaw(raw)
	return 0
}

type SettingsCommand struct {
	*base.Command

	flagVisionImage  string
	flagMissionImage string
	flagLogo         string
	flagFields       base.KeyValueFlag
}

func (c *SettingsCommand) Synopsis() string {
	return "Show or update the organization settings"
}

func (c *SettingsCommand) Help() string {
	return `Usage: rpctl settings [-vision-image <path>] [-mission-image <path>] [-logo <path>] [-field key=value ...]

  Without options prints the public organization settings. With any image
  or field option the settings are updated, which requires an admin session.
  Images must be JPEG or PNG and at most 5MB.` +
		c.Flags().Help()
}

func (c *SettingsCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("settings", flag.ContinueOnError))
	c.flagFields = base.KeyValueFlag{}
	f.StringVar(&c.flagVisionImage, "vision-image", "", "Image shown next to the vision statement.")
	f.StringVar(&c.flagMissionImage, "mission-image", "", "Image shown next to the mission statement.")
	f.StringVar(&c.flagLogo, "logo", "", "Organization logo.")
	f.Var(c.flagFields, "field", "Settings field as key=value, e.g. vision=... May be repeated.")
	return f
}

func (c *SettingsCommand) images() map[string]string {
	images := map[string]string{}
	for field, path := range map[string]string{
		apimodel.VisionImageField:  c.flagVisionImage,
		apimodel.MissionImageField: c.flagMissionImage,
		apimodel.LogoField:         c.flagLogo,
	} {
		if path != "" {
			images[field] = path
		}
	}
	return images
}

func (c *SettingsCommand) Run(args []string) int {
	if code, ok := c.Parse(c.Flags(), args); !ok {
		return code
	}

	images := c.images()
	if len(images) == 0 && len(c.flagFields) == 0 {
		settings, err := c.Client.Organization.Settings(c.Context())
		if err != nil {
			return c.Fail(err)
		}
		if err := c.OutputJSON(settings); err != nil {
			return c.Fail(err)
		}
		return 0
	}

	errs := validation.Errors{}
	files := make(map[string]apiclient.File, len(images))
	for field, path := range images {
		if err := validation.Validate(path, settingsImage(c)); err != nil {
			errs[field] = err
			continue
		}
		f, err := c.Files().Open(path)
		if err != nil {
			errs[field] = err
			continue
		}
		defer f.Close()
		files[field] = apiclient.File{Name: filepath.Base(path), Content: f}
	}
	if err := errs.Filter(); err != nil {
		return c.Invalid(err)
	}

	settings, err := c.Client.Organization.UpdateSettingsImages(c.Context(), files, c.flagFields)
	if err != nil {
		return c.Fail(err)
	}
	c.UI.Output("Organization settings updated.")
	if err := c.OutputJSON(settings); err != nil {
		return c.Fail(err)
	}
	return 0
}

// settingsImage checks the extension and size of a local image before upload.
func settingsImage(c *SettingsCommand) validation.Rule {
	return validation.By(func(value interface{}) error {
		path, _ := value.(string)
		if !apimodel.IsSettingsImage(path) {
			return fmt.Errorf("must be a JPEG or PNG image")
		}
		info, err := c.Files().Stat(path)
		if err != nil {
			return err
		}
		if info.Size() > apimodel.MaxSettingsImageBytes {
			return fmt.Errorf("must be at most %dMB", apimodel.MaxSettingsImageBytes>>20)
		}
		return nil
	})
}
