package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/opencontainers/go-digest"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAuthURL = "https://auth.docker.io"
	defaultHubURL  = "https://registry-1.docker.io"
	defaultQuayURL = "https://quay.io"

	manifestMediaType = "application/vnd.docker.distribution.manifest.v2+json"
	digestHeader      = "Docker-Content-Digest"
)

// Resolver resolves a tagged image reference (e.g. 'alpine:latest' or
// 'quay.io/biocontainers/samtools:1.2-0') to a digest-qualified reference
// (e.g. 'alpine@sha256:...'). Only meaningful for docker/quay-style
// references.
type Resolver interface {
	Resolve(reference string) (string, error)
}

// tokenResponse is the Docker Hub token endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// quayTagResponse is the Quay tag query endpoint response.
type quayTagResponse struct {
	Tags []struct {
		ManifestDigest string `json:"manifest_digest"`
	} `json:"tags"`
}

// HTTPResolver is a 'Resolver' backed by the Docker Hub and Quay registry
// APIs. The base URLs are overridable for testing against a mock server.
type HTTPResolver struct {
	client  *resty.Client
	AuthURL string
	HubURL  string
	QuayURL string
}

// NewHTTPResolver returns an 'HTTPResolver' with the real-world endpoints.
func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{
		client:  resty.New().SetTimeout(30 * time.Second),
		AuthURL: defaultAuthURL,
		HubURL:  defaultHubURL,
		QuayURL: defaultQuayURL,
	}
}

// Resolve looks up the manifest digest for the passed tagged reference and
// returns the reference re-written as '<name>@<digest>'. Quay-hosted images
// go through the Quay tag API, everything else through the Docker Hub
// token + manifest flow.
func (r *HTTPResolver) Resolve(reference string) (string, error) {
	ref, err := name.ParseReference(reference)
	if err != nil {
		return "", fmt.Errorf("unable to parse image ref %q: %s", reference, err)
	}
	repo := ref.Context().RepositoryStr()
	tag := ref.Identifier()

	var dgst string
	if ref.Context().RegistryStr() == "quay.io" {
		dgst, err = r.quayDigest(repo, tag)
	} else {
		// un-namespaced Hub images live in the 'library' org
		if !strings.Contains(repo, "/") {
			repo = "library/" + repo
		}
		dgst, err = r.hubDigest(repo, tag)
	}
	if err != nil {
		return "", err
	}
	parsed, err := digest.Parse(dgst)
	if err != nil {
		return "", fmt.Errorf("registry returned an invalid digest %q for %s:%s", dgst, repo, tag)
	}
	log.Infof("resolved %s to digest %s", reference, parsed)
	return untagged(reference) + "@" + parsed.String(), nil
}

// hubDigest retrieves the digest for an image hosted on Docker Hub by
// obtaining an anonymous pull token and issuing a manifest HEAD request.
func (r *HTTPResolver) hubDigest(repo string, tag string) (string, error) {
	var token tokenResponse
	resp, err := r.client.R().
		SetQueryParam("service", "registry.docker.io").
		SetQueryParam("scope", fmt.Sprintf("repository:%s:pull", repo)).
		SetResult(&token).
		Get(r.AuthURL + "/token")
	if err != nil {
		return "", fmt.Errorf("error getting auth token for %s: %s", repo, err)
	}
	if resp.IsError() || token.AccessToken == "" {
		return "", fmt.Errorf("unable to get auth token for %s: status %d", repo, resp.StatusCode())
	}
	resp, err = r.client.R().
		SetAuthToken(token.AccessToken).
		SetHeader("Accept", manifestMediaType).
		Head(fmt.Sprintf("%s/v2/%s/manifests/%s", r.HubURL, repo, tag))
	if err != nil {
		return "", fmt.Errorf("error getting manifest for %s:%s: %s", repo, tag, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("unable to get manifest for %s:%s: status %d", repo, tag, resp.StatusCode())
	}
	dgst := resp.Header().Get(digestHeader)
	if dgst == "" {
		return "", fmt.Errorf("registry returned no digest for %s:%s", repo, tag)
	}
	return dgst, nil
}

// quayDigest retrieves the digest for an image hosted on quay.io using the
// Quay tag query API.
func (r *HTTPResolver) quayDigest(repo string, tag string) (string, error) {
	var tags quayTagResponse
	resp, err := r.client.R().
		SetQueryParam("specificTag", tag).
		SetResult(&tags).
		Get(fmt.Sprintf("%s/api/v1/repository/%s/tag/", r.QuayURL, repo))
	if err != nil {
		return "", fmt.Errorf("error querying quay.io for %s:%s: %s", repo, tag, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("unable to query quay.io for %s:%s: status %d", repo, tag, resp.StatusCode())
	}
	if len(tags.Tags) == 0 {
		return "", fmt.Errorf("no quay.io tag matches %s:%s", repo, tag)
	}
	return tags.Tags[0].ManifestDigest, nil
}

// untagged strips the tag from the passed reference, leaving the image name as
// written in the image list (registry prefix included if there was one.)
func untagged(reference string) string {
	if idx := strings.LastIndex(reference, ":"); idx > strings.LastIndex(reference, "/") {
		return reference[:idx]
	}
	return reference
}
