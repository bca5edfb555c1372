// Package meta talks to the launcher's meta server. Its one concern here is
// the remote properties document: a flat JSON object of property names to
// values that the server can push into the local settings store.
package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/emberlaunch/launchersync/internal/httpclient"
	"github.com/emberlaunch/launchersync/internal/logging"
	"github.com/emberlaunch/launchersync/internal/settings"
)

// DefaultMetaURL is the stock meta server, used when no override is stored.
const DefaultMetaURL = "https://meta.emberlaunch.org/v1/"

// propertiesDocument is the document name under the meta server base URL.
const propertiesDocument = "properties.json"

// maxDocumentSize caps the properties document read. The document is a small
// key-value object; anything larger is a server fault.
const maxDocumentSize = 1 << 20

// retryLogger adapts our logger to the retryablehttp.LeveledLogger interface.
type retryLogger struct {
	log *logging.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Error().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn().Msgf("%s %v", msg, keysAndValues)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {}

// PropertyClient downloads the remote properties document.
type PropertyClient struct {
	httpClient *nethttp.Client
	baseURL    string
	userAgent  string
}

// NewPropertyClient creates a client against the given meta server base URL.
// An empty baseURL selects the stock server. userAgent may be empty.
func NewPropertyClient(baseURL, userAgent string, log *logging.Logger) *PropertyClient {
	if baseURL == "" {
		baseURL = DefaultMetaURL
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpclient.New()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	if log != nil {
		retryClient.Logger = &retryLogger{log: log}
	} else {
		retryClient.Logger = nil
	}

	return &PropertyClient{
		httpClient: retryClient.StandardClient(),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// URL returns the full properties document URL.
func (c *PropertyClient) URL() string {
	return c.baseURL + "/" + propertiesDocument
}

// DownloadProperties fetches and decodes the properties document.
func (c *PropertyClient) DownloadProperties(ctx context.Context) (map[string]string, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download properties from %s: %w", c.URL(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, fmt.Errorf("meta server returned %s for %s", resp.Status, c.URL())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read properties document: %w", err)
	}

	var doc map[string]string
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode properties document: %w", err)
	}

	return doc, nil
}

// propMaxMemoryAllocation is the one property whose name differs from the
// settings key it lands in; its value is in megabytes.
const propMaxMemoryAllocation = "maxMemoryAllocation"

// appliableProperties maps property names the server may send to the settings
// keys they land in. URL-valued properties are normalized before storing.
var appliableProperties = map[string]struct {
	key   string
	isURL bool
}{
	settings.KeyMetaURLOverride:      {key: settings.KeyMetaURLOverride, isURL: true},
	settings.KeyResourceURLOverride:  {key: settings.KeyResourceURLOverride, isURL: true},
	settings.KeyLibrariesURLOverride: {key: settings.KeyLibrariesURLOverride, isURL: true},
	settings.KeyMSAClientIDOverride:  {key: settings.KeyMSAClientIDOverride},
	settings.KeyUserAgentOverride:    {key: settings.KeyUserAgentOverride},
}

// ApplyProperties writes the recognized properties from doc into the store
// and returns the applied name-to-stored-value map. Unrecognized property
// names are skipped, as is a maxMemoryAllocation that does not parse as an
// integer.
func ApplyProperties(doc map[string]string, s settings.Store) map[string]string {
	applied := make(map[string]string, len(doc))

	for name, value := range doc {
		if name == propMaxMemoryAllocation {
			mb, err := strconv.Atoi(value)
			if err != nil {
				continue
			}
			s.SetInt(settings.KeyMaxMemAlloc, mb)
			applied[name] = value
			continue
		}

		prop, ok := appliableProperties[name]
		if !ok {
			continue
		}
		if prop.isURL {
			value = settings.NormalizeURL(value)
		}
		s.Set(prop.key, value)
		applied[name] = value
	}

	return applied
}
