package apiclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
)

const instrumentationName = "github.com/jrsteele09/research-platform-client/apiclient"

// RefreshEndpoint is exchanged for a new access token. A 401 from this
// endpoint never triggers another refresh.
const RefreshEndpoint = "/auth/token/refresh/"

// Client is the facade over the research platform REST API. It owns the
// base URL and the bearer session, and every endpoint group funnels through
// Request. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      tokens.Store
	tokens     *tokens.Manager
	logger     zerolog.Logger
	tracer     trace.Tracer

	coalesceRefresh bool
	refreshGroup    singleflight.Group

	Auth         *AuthEndpoints
	Research     *ResearchEndpoints
	Organization *OrganizationEndpoints
	Content      *ContentEndpoints
	Training     *TrainingEndpoints
	Services     *ServicesEndpoints
}

// New creates a client for baseURL (one trailing slash is stripped) and
// hydrates the session from the configured store.
func New(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", errors.ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		logger:     log.Logger,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.store == nil {
		c.store = tokens.NewMemoryStore()
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}

	c.tokens = tokens.NewManager(c.store)
	if err := c.tokens.Load(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	c.Auth = &AuthEndpoints{client: c}
	c.Research = &ResearchEndpoints{client: c}
	c.Organization = &OrganizationEndpoints{client: c}
	c.Content = &ContentEndpoints{client: c}
	c.Training = &TrainingEndpoints{client: c}
	c.Services = &ServicesEndpoints{client: c}
	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns a snapshot of the current tokens.
func (c *Client) Session() tokens.Session {
	return c.tokens.Current()
}

// SetTokens replaces the session and persists it. The in-memory session is
// updated even if persisting fails.
func (c *Client) SetTokens(accessToken, refreshToken string) error {
	return c.tokens.Set(accessToken, refreshToken)
}

// ClearTokens drops the session and removes it from the store.
func (c *Client) ClearTokens() error {
	return c.tokens.Clear()
}

// IsAuthenticated reports whether an access token is held. Presence only: the
// token may have expired.
func (c *Client) IsAuthenticated() bool {
	return c.tokens.IsAuthenticated()
}

// Files returns the multipart upload helper bound to this client.
func (c *Client) Files() *FileUploader {
	return &FileUploader{client: c}
}
