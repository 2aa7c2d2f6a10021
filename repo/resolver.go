// Package repo resolves dependency version metadata against Maven
// repositories. It backs the "force resolution" step of a collection pass:
// dynamic version specs are replaced with concrete versions taken from the
// repository's maven-metadata.xml.
package repo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
	circuit "github.com/rubyist/circuitbreaker"

	"github.com/viant/pomgen/model"
)

var (
	ErrNotFound     = errors.New("artifact metadata not found")
	ErrRateLimited  = errors.New("rate limited by repository")
	ErrUpstreamDown = errors.New("repository unavailable")
)

// DefaultRepositoryURL is Maven Central.
const DefaultRepositoryURL = "https://repo.maven.apache.org/maven2"

// metadata mirrors the maven-metadata.xml document.
type metadata struct {
	XMLName    xml.Name   `xml:"metadata"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Versioning versioning `xml:"versioning"`
}

type versioning struct {
	Latest   string   `xml:"latest"`
	Release  string   `xml:"release"`
	Versions []string `xml:"versions>version"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRepositoryURL sets the repository base URL.
func WithRepositoryURL(baseURL string) Option {
	return func(r *Resolver) {
		r.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(r *Resolver) {
		r.userAgent = userAgent
	}
}

// WithMaxRetries sets the maximum retry attempts per metadata fetch.
func WithMaxRetries(n int) Option {
	return func(r *Resolver) {
		r.maxRetries = n
	}
}

// WithBaseDelay sets the base delay for exponential retry backoff.
func WithBaseDelay(delay time.Duration) Option {
	return func(r *Resolver) {
		r.baseDelay = delay
	}
}

// Resolver fetches version metadata from a Maven repository with retries and
// a per-host circuit breaker.
type Resolver struct {
	client     *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	baseDelay  time.Duration

	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// New creates a resolver with the given options.
func New(options ...Option) *Resolver {
	resolver := &Resolver{
		baseURL:    DefaultRepositoryURL,
		userAgent:  "pomgen/1.0",
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
		breakers:   make(map[string]*circuit.Breaker),
	}
	for _, option := range options {
		option(resolver)
	}
	if resolver.client == nil {
		resolver.client = newClient()
	}
	return resolver
}

// newClient builds an HTTP client whose dialer resolves hosts through a
// periodically refreshed DNS cache.
func newClient() *http.Client {
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: time.Minute,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := resolver.LookupHost(ctx, host)
				if err != nil {
					return nil, err
				}
				for _, ip := range ips {
					conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
					if err == nil {
						return conn, nil
					}
				}
				return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
			},
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// IsDynamic reports whether a version spec needs repository metadata to
// become concrete: empty specs, "+", prefix specs like "1.+", and
// "latest.release"/"latest.integration".
func IsDynamic(version string) bool {
	return version == "" ||
		version == "+" ||
		strings.HasSuffix(version, ".+") ||
		strings.HasPrefix(version, "latest.")
}

// ResolveVersion returns a concrete version for the given spec. Concrete
// specs come back unchanged without touching the network.
func (r *Resolver) ResolveVersion(ctx context.Context, group, artifact, version string) (string, error) {
	if !IsDynamic(version) {
		return version, nil
	}
	md, err := r.fetchMetadata(ctx, group, artifact)
	if err != nil {
		return "", err
	}
	candidates := md.Versioning.Versions
	if prefix, ok := strings.CutSuffix(version, "+"); ok && prefix != "" {
		var matched []string
		for _, candidate := range candidates {
			if strings.HasPrefix(candidate, prefix) {
				matched = append(matched, candidate)
			}
		}
		candidates = matched
	}
	if version == "latest.release" && md.Versioning.Release != "" {
		return md.Versioning.Release, nil
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no version of %s:%s matches %q: %w", group, artifact, version, ErrNotFound)
	}
	return highestVersion(candidates), nil
}

// ConfigurationHook returns a resolve hook that replaces dynamic version
// specs of external module dependencies with concrete versions.
func (r *Resolver) ConfigurationHook() model.ResolveFunc {
	return func(ctx context.Context, configuration *model.Configuration) error {
		for i := range configuration.Dependencies {
			dependency := &configuration.Dependencies[i]
			if dependency.Kind != model.KindExternalModule || !IsDynamic(dependency.Version) {
				continue
			}
			resolved, err := r.ResolveVersion(ctx, dependency.Group, dependency.Artifact, dependency.Version)
			if err != nil {
				return fmt.Errorf("failed to resolve %s:%s version %q: %w", dependency.Group, dependency.Artifact, dependency.Version, err)
			}
			dependency.Version = resolved
		}
		return nil
	}
}

// highestVersion picks the highest candidate, by semantic version when every
// candidate parses and by listed order otherwise.
func highestVersion(versions []string) string {
	parsed := make([]*semver.Version, 0, len(versions))
	for _, candidate := range versions {
		version, err := semver.NewVersion(candidate)
		if err != nil {
			return versions[len(versions)-1]
		}
		parsed = append(parsed, version)
	}
	sort.Sort(semver.Collection(parsed))
	return parsed[len(parsed)-1].Original()
}

func (r *Resolver) metadataURL(group, artifact string) string {
	return r.baseURL + "/" + strings.ReplaceAll(group, ".", "/") + "/" + artifact + "/maven-metadata.xml"
}

func (r *Resolver) fetchMetadata(ctx context.Context, group, artifact string) (*metadata, error) {
	metadataURL := r.metadataURL(group, artifact)
	breaker := r.getBreaker(metadataURL)
	if !breaker.Ready() {
		return nil, fmt.Errorf("circuit breaker open for %s: %w", r.baseURL, ErrUpstreamDown)
	}

	var result *metadata
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			// exponential backoff with 10% jitter
			delay := r.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			delay += time.Duration(float64(delay) * (rand.Float64() * 0.1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		err := breaker.Call(func() error {
			var fetchErr error
			result, fetchErr = r.doFetch(ctx, metadataURL)
			return fetchErr
		}, 0)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstreamDown) {
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (r *Resolver) doFetch(ctx context.Context, metadataURL string) (*metadata, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("User-Agent", r.userAgent)
	request.Header.Set("Accept", "application/xml")

	response, err := r.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusOK:
		var result metadata
		if err := xml.NewDecoder(response.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decoding metadata from %s: %w", metadataURL, err)
		}
		return &result, nil
	case response.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case response.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case response.StatusCode >= 500:
		return nil, ErrUpstreamDown
	default:
		body, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", response.StatusCode, string(body))
	}
}

// getBreaker returns or creates the circuit breaker for the metadata host.
func (r *Resolver) getBreaker(metadataURL string) *circuit.Breaker {
	host := hostOf(metadataURL)

	r.mu.RLock()
	breaker, exists := r.breakers[host]
	r.mu.RUnlock()
	if exists {
		return breaker
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if breaker, exists = r.breakers[host]; exists {
		return breaker
	}

	// trips after 5 consecutive failures, reopens on an exponential schedule
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	breaker = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	})
	r.breakers[host] = breaker
	return breaker
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}
