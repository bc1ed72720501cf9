package apiclient

import (
	"context"
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type ServicesEndpoints struct {
	client *Client
}

func (s *ServicesEndpoints) TestServices(ctx context.Context, params Params) (*apimodel.Page[apimodel.TestService], error) {
	return get[apimodel.Page[apimodel.TestService]](ctx, s.client, "/services/test-services/", params)
}

func (s *ServicesEndpoints) ServiceRequests(ctx context.Context, params Params) (*apimodel.Page[apimodel.ServiceRequest], error) {
	return get[apimodel.Page[apimodel.ServiceRequest]](ctx, s.client, "/services/service-requests/", params)
}

func (s *ServicesEndpoints) CreateServiceRequest(ctx context.Context, data any) (*apimodel.ServiceRequest, error) {
	return send[apimodel.ServiceRequest](ctx, s.client, http.MethodPost, "/services/service-requests/", data)
}

func (s *ServicesEndpoints) Clients(ctx context.Context, params Params) (*apimodel.Page[apimodel.Object], error) {
	return get[apimodel.Page[apimodel.Object]](ctx, s.client, "/services/clients/", params)
}
