// Package apiclient is a client for the research platform REST API.
//
// A single Client owns the base URL and the bearer session. Every endpoint
// group (Auth, Research, Organization, Content, Training, Services) funnels
// through Client.Request, which attaches the access token and, on a 401,
// refreshes it once and retries once. Failures of any kind come back as
// *APIError with Status 0 when no usable response was obtained.
//
//	client, err := apiclient.New("https://lab.example.org/api",
//		apiclient.WithStore(filestore.NewOS(path)))
//	if err != nil {
//		return err
//	}
//	page, err := client.Research.Publications(ctx, apiclient.Params{"page": 2})
package apiclient
