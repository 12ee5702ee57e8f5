package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jarcoal/httpmock"
)

// newClient builds a Client from cfg (defaults when nil) and closes it on cleanup.
func newClient(t *testing.T, cfg *Config) *Client {
	t.Helper()
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	client := New(cfg)
	t.Cleanup(client.Close)
	return client
}

// newMockClient returns a Client whose requests are answered by an httpmock transport.
func newMockClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	mock := httpmock.NewMockTransport()
	return newClient(t, &Config{Transport: mock}), mock
}

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// closeBody is deferred right after a successful request.
func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	if resp == nil || resp.Body == nil {
		return
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close response body: %v", err)
	}
}
