package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type ContentEndpoints struct {
	client *Client
}

func (c *ContentEndpoints) Announcements(ctx context.Context, params Params) (*apimodel.Page[apimodel.Announcement], error) {
	return get[apimodel.Page[apimodel.Announcement]](ctx, c.client, "/content/announcements/", params)
}

func (c *ContentEndpoints) CreateAnnouncement(ctx context.Context, data any) (*apimodel.Announcement, error) {
	return send[apimodel.Announcement](ctx, c.client, http.MethodPost, "/content/announcements/", data)
}

func (c *ContentEndpoints) Posts(ctx context.Context, params Params) (*apimodel.Page[apimodel.Object], error) {
	return get[apimodel.Page[apimodel.Object]](ctx, c.client, "/content/posts/", params)
}

func (c *ContentEndpoints) CreatePost(ctx context.Context, data any) (apimodel.Object, error) {
	out, err := send[apimodel.Object](ctx, c.client, http.MethodPost, "/content/posts/", data)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
