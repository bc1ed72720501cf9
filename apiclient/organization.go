package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

const organizationSettingsPath = "/organization/settings/"

type OrganizationEndpoints struct {
	client *Client
}

func (o *OrganizationEndpoints) Departments(ctx context.Context, params Params) (*apimodel.Page[apimodel.Department], error) {
	return get[apimodel.Page[apimodel.Department]](ctx, o.client, "/organization/departments/", params)
}

func (o *OrganizationEndpoints) Labs(ctx context.Context, params Params) (*apimodel.Page[apimodel.Lab], error) {
	return get[apimodel.Page[apimodel.Lab]](ctx, o.client, "/organization/labs/", params)
}

func (o *OrganizationEndpoints) Equipment(ctx context.Context, params Params) (*apimodel.Page[apimodel.Object], error) {
	return get[apimodel.Page[apimodel.Object]](ctx, o.client, "/organization/equipment/", params)
}

func (o *OrganizationEndpoints) Staff(ctx context.Context, params Params) (*apimodel.Page[apimodel.Object], error) {
	return get[apimodel.Page[apimodel.Object]](ctx, o.client, "/organization/staff/", params)
}

// Stats returns headline counts grouped by area (departments, labs, ...).
func (o *OrganizationEndpoints) Stats(ctx context.Context) (apimodel.Object, error) {
	out, err := get[apimodel.Object](ctx, o.client, "/organization/stats/", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// Settings is public: it works without a session.
func (o *OrganizationEndpoints) Settings(ctx context.Context) (*apimodel.OrganizationSettings, error) {
	return get[apimodel.OrganizationSettings](ctx, o.client, organizationSettingsPath, nil)
}

// UpdateSettingsImages replaces settings images, keyed by form field
// (apimodel.VisionImageField, apimodel.MissionImageField, apimodel.LogoField),
// along with any plain fields. Admin only.
func (o *OrganizationEndpoints) UpdateSettingsImages(ctx context.Context, images map[string]File, fields map[string]string) (*apimodel.OrganizationSettings, error) {
	raw, err := o.client.Files().UploadForm(ctx, http.MethodPut, organizationSettingsPath, images, fields)
	if err != nil {
		return nil, err
	}
	var out apimodel.OrganizationSettings
	if err := decodeInto(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
