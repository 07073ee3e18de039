package discovery

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/badisi/samsung-tv-remote/internal/logging"
	"github.com/badisi/samsung-tv-remote/internal/version"
)

const (
	// DefaultFetchTimeout bounds a single descriptor fetch
	DefaultFetchTimeout = 3 * time.Second

	// maxDescriptorSize caps how much of a descriptor is scanned
	maxDescriptorSize = 1 << 20
)

var friendlyNamePattern = regexp.MustCompile(`(?is)<friendlyName>(.*?)</friendlyName>`)

// NameResolver fetches a device descriptor and extracts its friendly name
type NameResolver struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewNameResolver creates a resolver with DefaultFetchTimeout
func NewNameResolver() *NameResolver {
	return &NameResolver{
		HTTPClient: &http.Client{Timeout: DefaultFetchTimeout},
	}
}

// Resolve returns the friendly name found at location. Failures are logged
// and reported as ok == false; they never reach the caller as errors.
func (r *NameResolver) Resolve(ctx context.Context, location string) (string, bool) {
	name, err := r.fetch(ctx, location)
	if err != nil {
		logging.Warn("Failed to resolve friendly name",
			zap.String("location", location),
			zap.Error(err),
		)
		return "", false
	}
	if name == "" {
		logging.Debug("Descriptor has no friendly name", zap.String("location", location))
		return "", false
	}

	logging.Debug("Resolved friendly name",
		zap.String("location", location),
		zap.String("name", name),
	)
	return name, true
}

func (r *NameResolver) fetch(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("invalid descriptor URL: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("descriptor request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDescriptorSize))
	if err != nil {
		return "", fmt.Errorf("failed to read descriptor: %w", err)
	}

	return ExtractFriendlyName(string(body)), nil
}

// ExtractFriendlyName returns the content of the first <friendlyName>
// element (case-insensitive), or "" if there is none.
func ExtractFriendlyName(doc string) string {
	matches := friendlyNamePattern.FindStringSubmatch(doc)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(matches[1]))
}
