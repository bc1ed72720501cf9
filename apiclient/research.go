package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type ResearchEndpoints struct {
	client *Client
}

func publicationPath(id int) string {
	return fmt.Sprintf("/research/publications/%d/", id)
}

func (r *ResearchEndpoints) Publications(ctx context.Context, params Params) (*apimodel.Page[apimodel.Publication], error) {
	return get[apimodel.Page[apimodel.Publication]](ctx, r.client, "/research/publications/", params)
}

func (r *ResearchEndpoints) Publication(ctx context.Context, id int) (*apimodel.Publication, error) {
	return get[apimodel.Publication](ctx, r.client, publicationPath(id), nil)
}

func (r *ResearchEndpoints) CreatePublication(ctx context.Context, data any) (*apimodel.Publication, error) {
	return send[apimodel.Publication](ctx, r.client, http.MethodPost, "/research/publications/", data)
}

func (r *ResearchEndpoints) UpdatePublication(ctx context.Context, id int, data any) (*apimodel.Publication, error) {
	return send[apimodel.Publication](ctx, r.client, http.MethodPut, publicationPath(id), data)
}

func (r *ResearchEndpoints) DeletePublication(ctx context.Context, id int) error {
	return r.client.do(ctx, http.MethodDelete, publicationPath(id), nil, nil)
}

// ApprovePublication records a review decision. Moderators and admins only.
func (r *ResearchEndpoints) ApprovePublication(ctx context.Context, id int, review apimodel.PublicationReview) (*apimodel.PublicationReviewResult, error) {
	return send[apimodel.PublicationReviewResult](ctx, r.client, http.MethodPost, publicationPath(id)+"approve/", review)
}
