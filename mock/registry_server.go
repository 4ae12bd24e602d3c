// Package mock runs a mock of the registry HTTP APIs that the resolver talks
// to: the Docker Hub token and manifest endpoints, and the Quay tag query
// endpoint. Intended for unit tests.
package mock

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

const testToken = "mock-pull-token"

// ErrorMode selects which endpoint the mock server fails on.
type ErrorMode string

const (
	// NONE serves all endpoints normally
	NONE ErrorMode = "none"
	// AUTHFAIL fails the Docker Hub token endpoint
	AUTHFAIL ErrorMode = "auth fail"
	// MANIFESTFAIL 404s the Docker Hub manifest endpoint
	MANIFESTFAIL ErrorMode = "manifest fail"
	// NOTAGS returns an empty tag list from the Quay endpoint
	NOTAGS ErrorMode = "no tags"
)

// Params configures the mock registry server.
type Params struct {
	// Digest is returned for every manifest/tag lookup
	Digest string
	// Mode injects a failure into one of the endpoints
	Mode ErrorMode
}

// Server runs the mock registry API server and returns it. The caller owns
// the server and must Close it.
func Server(params Params) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/token":
			if params.Mode == AUTHFAIL {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"access_token": %q}`, testToken)
		case strings.HasPrefix(r.URL.Path, "/v2/") && strings.Contains(r.URL.Path, "/manifests/"):
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if params.Mode == MANIFESTFAIL {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Docker-Content-Digest", params.Digest)
			w.WriteHeader(http.StatusOK)
		case strings.HasPrefix(r.URL.Path, "/api/v1/repository/") && strings.HasSuffix(r.URL.Path, "/tag/"):
			w.Header().Set("Content-Type", "application/json")
			if params.Mode == NOTAGS {
				fmt.Fprint(w, `{"tags": []}`)
				return
			}
			fmt.Fprintf(w, `{"tags": [{"manifest_digest": %q}]}`, params.Digest)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}
