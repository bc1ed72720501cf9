package apiclient_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/research-platform-client/apiclient"
	"github.com/jrsteele09/research-platform-client/tokens"
	"github.com/jrsteele09/research-platform-client/tokens/storefake"
)

const apiPrefix = "/api"

type recordedCall struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeAPI records every call and dispatches by path (without the /api prefix).
type fakeAPI struct {
	server *httptest.Server

	mu     sync.Mutex
	calls  []recordedCall
	routes map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{routes: make(map[string]http.HandlerFunc)}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	path := strings.TrimPrefix(r.URL.Path, apiPrefix)

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	h, ok := f.routes[path]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
		return
	}
	h(w, r)
}

func (f *fakeAPI) Calls() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeAPI) callsTo(path string) []recordedCall {
	var out []recordedCall
	for _, c := range f.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) lastCall(t *testing.T) recordedCall {
	t.Helper()
	calls := f.Calls()
	require.NotEmpty(t, calls)
	return calls[len(calls)-1]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond answers every call with the same status and body.
func respond(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, v)
	}
}

// bearerOnly answers 200 with v for the given token and 401 otherwise.
func bearerOnly(token string, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"detail": "Given token not valid for any token type",
				"code":   "token_not_valid",
			})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

type testFixture struct {
	client *apiclient.Client
	api    *fakeAPI
	store  *storefake.FakeStore
}

// setupTestFixture builds a client against a fresh fake API with the store
// seeded from session (access, refresh). Empty values are not stored.
func setupTestFixture(t *testing.T, session tokens.Session, options ...apiclient.Option) *testFixture {
	t.Helper()

	seed := map[string]string{}
	if session.AccessToken != "" {
		seed[tokens.AccessTokenKey] = session.AccessToken
	}
	if session.RefreshToken != "" {
		seed[tokens.RefreshTokenKey] = session.RefreshToken
	}
	store := storefake.NewFakeStoreWith(seed)

	api := newFakeAPI(t)
	options = append([]apiclient.Option{apiclient.WithStore(store)}, options...)
	client, err := apiclient.New(api.server.URL+apiPrefix+"/", options...)
	require.NoError(t, err)

	return &testFixture{client: client, api: api, store: store}
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}
