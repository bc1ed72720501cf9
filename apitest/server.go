// Package apitest is an in-memory stand-in for the research platform API.
// It issues real HS256 tokens, enforces bearer auth and roles, and exposes
// knobs for driving a client through token expiry and refresh failure.
package apitest

import (
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

// BasePath is the prefix every route lives under.
const BasePath = "/api"

// Call is one request as the server saw it.
type Call struct {
	Method        string
	Path          string
	Query         string
	Authorization string
}

type Server struct {
	router *mux.Router
	logger zerolog.Logger
	issuer *issuer
	users  *userStore

	accessTTL time.Duration

	mu            sync.Mutex
	calls         []Call
	refreshStatus int
	publications  map[int]*apimodel.Publication
	nextPubID     int
	settings      apimodel.OrganizationSettings
	collections   map[string][]apimodel.Object

	httpServer *httptest.Server
}

type Option func(*Server)

// WithAccessTokenTTL sets the lifetime of issued access tokens.
func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.accessTTL = ttl
	}
}

// WithLogger logs each routed request.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds a server seeded with an organization and a few resources. It
// is not listening until Start is called; it can also be used directly as
// an http.Handler.
func New(options ...Option) *Server {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	s := &Server{
		router:       mux.NewRouter(),
		logger:       zerolog.Nop(),
		users:        newUserStore(),
		accessTTL:    5 * time.Minute,
		publications: make(map[int]*apimodel.Publication),
		nextPubID:    1,
		collections:  make(map[string][]apimodel.Object),
	}
	for _, opt := range options {
		opt(s)
	}
	s.issuer = newIssuer(secret, s.accessTTL)

	s.seed()
	s.initRoutes()
	return s
}

// Start listens on a loopback port and returns the API base URL.
func (s *Server) Start() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.httpServer == nil {
		s.httpServer = httptest.NewServer(s)
	}
	return s.httpServer.URL + BasePath
}

func (s *Server) Close() {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv != nil {
		srv.Close()
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
	})
	s.mu.Unlock()

	s.router.ServeHTTP(w, r)
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the requests received for path, relative to BasePath.
func (s *Server) CallsTo(path string) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Path == BasePath+path {
			out = append(out, c)
		}
	}
	return out
}

// ExpireAccessTokens invalidates every access token issued so far, as if
// they had all reached their expiry. Refresh tokens keep working.
func (s *Server) ExpireAccessTokens() {
	s.issuer.expireAccess()
}

// FailRefresh makes the refresh endpoint answer with status. Zero restores
// normal behaviour.
func (s *Server) FailRefresh(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshStatus = status
}

func (s *Server) refreshFailure() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshStatus
}
