package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		client := New(nil)

		require.NotNil(t, client, "expected non-nil client")
		assert.Equal(t, DefaultTimeout, client.defaultTimeout, "expected default timeout")
		assert.Equal(t, defaultUserAgent, client.userAgent, "expected default user agent")
	})

	t.Run("custom config", func(t *testing.T) {
		cfg := Config{
			DefaultTimeout: 5 * time.Second,
			UserAgent:      "TestAgent/1.0",
		}
		client := New(&cfg)

		assert.Equal(t, 5*time.Second, client.defaultTimeout, "expected timeout 5s")
		assert.Equal(t, "TestAgent/1.0", client.userAgent, "expected user agent 'TestAgent/1.0'")
	})

	t.Run("zero values use defaults", func(t *testing.T) {
		cfg := Config{}
		client := New(&cfg)

		assert.Equal(t, DefaultTimeout, client.defaultTimeout, "expected default timeout")
		assert.NotEmpty(t, client.userAgent, "expected non-empty user agent")
		assert.Equal(t, Config{}, cfg, "caller config must not be mutated")
	})
}

func TestDo_BasicRequest(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "expected GET method")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	client := newClient(t, nil)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err, "failed to create request")

	resp, err := client.Do(t.Context(), req)
	require.NoError(t, err, "request failed")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode, "expected status 200")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read body")
	assert.Equal(t, "success", string(body), "expected body 'success'")
}

func TestDo_NilRequest(t *testing.T) {
	client := newClient(t, nil)

	resp, err := client.Do(t.Context(), nil)
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestDo_UserAgent(t *testing.T) {
	receivedUA := ""
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		receivedUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	})

	cfg := Config{UserAgent: "CustomAgent/2.0"}
	client := newClient(t, &cfg)

	resp, err := client.Get(t.Context(), server.URL)
	require.NoError(t, err, "request failed")
	defer closeBody(t, resp)

	assert.Equal(t, "CustomAgent/2.0", receivedUA, "expected User-Agent 'CustomAgent/2.0'")
}

func TestDo_ContextCancellation(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	client := newClient(t, nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	resp, err := client.Get(ctx, server.URL)
	defer closeBody(t, resp)

	require.Error(t, err, "expected error from cancelled context")
	assert.ErrorIs(t, err, context.Canceled, "expected context.Canceled error")
}

func TestDo_DefaultTimeout(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	cfg := Config{DefaultTimeout: 50 * time.Millisecond}
	client := newClient(t, &cfg)

	resp, err := client.Get(t.Context(), server.URL)
	defer closeBody(t, resp)

	require.Error(t, err, "expected timeout error")
	assert.ErrorIs(t, err, context.DeadlineExceeded, "expected context.DeadlineExceeded error")
}

func TestDo_ContextTimeoutOverridesDefault(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	cfg := Config{DefaultTimeout: 5 * time.Millisecond}
	client := newClient(t, &cfg)

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, server.URL)
	require.NoError(t, err, "request should succeed with context timeout")
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode, "expected status 200")
}

func TestDo_BodyReadableAfterReturn(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"London"}`))
	})

	// Default timeout applies; the body must stay readable after Do returns
	client := newClient(t, nil)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer closeBody(t, resp)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"London"}`, string(body))
}

func TestDo_InjectedTransport(t *testing.T) {
	client, mock := newMockClient(t)
	mock.RegisterResponder(http.MethodGet, "https://example.test/ping",
		httpmock.NewStringResponder(http.StatusTeapot, "short and stout"))

	resp, err := client.Get(t.Context(), "https://example.test/ping")
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestDo_ConcurrentRequests(t *testing.T) {
	var requestCount atomic.Int32
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	client := newClient(t, nil)

	concurrency := 20
	var wg sync.WaitGroup
	errChan := make(chan error, concurrency)

	for range concurrency {
		wg.Go(func() {
			resp, err := client.Get(t.Context(), server.URL)
			if err != nil {
				errChan <- err
				return
			}
			defer func() {
				if cerr := resp.Body.Close(); cerr != nil {
					errChan <- fmt.Errorf("failed to close response body: %w", cerr)
				}
			}()

			if resp.StatusCode != http.StatusOK {
				errChan <- fmt.Errorf("expected status 200, got %d", resp.StatusCode)
			}
		})
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		require.NoError(t, err, "concurrent request failed")
	}

	assert.Equal(t, int32(concurrency), requestCount.Load(), "expected all requests to be received")
}

func TestDo_Hooks(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	client := newClient(t, nil)

	var beforeCalled, afterCalled bool
	var capturedResp *http.Response
	var capturedErr error

	client.SetBeforeRequestHook(func(r *http.Request) {
		beforeCalled = true
		assert.Equal(t, server.URL, r.URL.String(), "before hook: unexpected URL")
	})

	client.SetAfterResponseHook(func(r *http.Request, resp *http.Response, err error) {
		afterCalled = true
		capturedResp = resp
		capturedErr = err
	})

	resp, err := client.Get(t.Context(), server.URL)
	require.NoError(t, err, "request failed")
	defer closeBody(t, resp)

	assert.True(t, beforeCalled, "before hook was not called")
	assert.True(t, afterCalled, "after hook was not called")
	assert.NotNil(t, capturedResp, "after hook did not capture response")
	assert.NoError(t, capturedErr, "after hook captured unexpected error")
}

func TestGet_InvalidURL(t *testing.T) {
	client := newClient(t, nil)

	resp, err := client.Get(t.Context(), "://missing-scheme")
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestClose(t *testing.T) {
	client := New(nil)

	client.Close()
	client.Close()
}
