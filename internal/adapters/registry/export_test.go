package registry

import "net/http"

// NewClientWithPath exposes the path-injecting constructor for tests.
func NewClientWithPath(baseURL, path string) (*Client, error) {
	return newClientWithPath(baseURL, path)
}

// NewClientWithHTTPClient exposes a fully injected constructor for tests.
func NewClientWithHTTPClient(baseURL, path string, httpClient *http.Client) (*Client, error) {
	c, err := newClientWithPath(baseURL, path)
	if err != nil {
		return nil, err
	}
	c.httpClient = httpClient
	return c, nil
}
