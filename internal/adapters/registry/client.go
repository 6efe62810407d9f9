// Package registry implements the Registry port against the rig tool index,
// an HTTP service that lists the published versions of each tool.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.rigtool.dev/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	indexAPIBase      = "https://index.rigtool.dev/v1/tools"
	httpClientTimeout = 30 * time.Second

	// BaseURLEnvVar overrides the index endpoint, mainly for tests and
	// self-hosted mirrors.
	BaseURLEnvVar = "RIG_REGISTRY_URL"
)

// Client implements ports.Registry using the rig tool index with local caching.
type Client struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client
}

// NewClient creates a Registry backed by the rig tool index. The endpoint
// defaults to the public index and can be overridden via RIG_REGISTRY_URL.
func NewClient() (*Client, error) {
	base := os.Getenv(BaseURLEnvVar)
	if base == "" {
		base = indexAPIBase
	}
	return newClientWithPath(base, domain.DefaultIndexCachePath())
}

// newClientWithPath creates a Client with a custom base URL and cache path (used for testing).
func newClientWithPath(baseURL, path string) (*Client, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error())
	}

	return &Client{
		baseURL:  baseURL,
		cacheDir: cleanPath,
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}, nil
}

// indexResponse is the wire format of the tool index.
type indexResponse struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// cacheEntry is the on-disk format of a cached index response.
type cacheEntry struct {
	Name      string    `json:"name"`
	Versions  []string  `json:"versions"`
	Timestamp time.Time `json:"timestamp"`
}

// Versions returns all published versions of the named tool. It checks the
// local cache first, then queries the index if needed.
func (c *Client) Versions(ctx context.Context, name string) ([]domain.Version, error) {
	cachePath := c.getCachePath(name)
	versions, err := c.loadFromCache(cachePath)
	if err == nil {
		return versions, nil
	}

	resp, err := c.queryIndex(ctx, name)
	if err != nil {
		return nil, err
	}

	versions, err = parseVersions(name, resp.Versions)
	if err != nil {
		return nil, err
	}

	// Cache write failure is not critical, resolution already succeeded.
	_ = c.saveToCache(cachePath, resp)

	return versions, nil
}

// getHash generates a deterministic cache filename for a tool name.
func getHash(name string) string {
	hash := sha256.Sum256([]byte(name))
	return hex.EncodeToString(hash[:])
}

// getCachePath returns the file path for the cache entry.
func (c *Client) getCachePath(name string) string {
	return filepath.Join(c.cacheDir, getHash(name)+".json")
}

// loadFromCache attempts to load a cached version list.
func (c *Client) loadFromCache(path string) ([]domain.Version, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrIndexCacheReadFailed
		}
		return nil, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	return parseVersions(entry.Name, entry.Versions)
}

// saveToCache saves an index response to the cache.
func (c *Client) saveToCache(path string, resp *indexResponse) error {
	entry := cacheEntry{
		Name:      resp.Name,
		Versions:  resp.Versions,
		Timestamp: time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}

	return nil
}

// atomicWriteFile writes data to a file atomically by writing to a temp file and renaming it.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "index-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// queryIndex queries the tool index for the published versions of a tool.
func (c *Client) queryIndex(ctx context.Context, name string) (*indexResponse, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(domain.ErrToolUnknown, "name", name)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrRegistryRequestFailed, "status_code", resp.StatusCode)
		return nil, zerr.With(apiErr, "name", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error())
	}

	var apiResp indexResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryParseFailed.Error())
	}

	return &apiResp, nil
}

// parseVersions parses the raw version strings reported for a tool.
func parseVersions(name string, raw []string) ([]domain.Version, error) {
	versions := make([]domain.Version, 0, len(raw))
	for _, s := range raw {
		v, err := domain.ParseVersion(s)
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrRegistryParseFailed.Error())
			return nil, zerr.With(parseErr, "name", name)
		}
		versions = append(versions, v)
	}
	return versions, nil
}
