package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestNewDefaultClientUsesDefaultBaseURL(t *testing.T) {
	var gotURL string
	client := NewDefaultClient()
	client.httpClient.Transport = roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(strings.NewReader(`{"status":"ok"}`)),
			Header:     make(http.Header),
		}, nil
	})

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotURL, DefaultBaseURL))
}

func TestWithTimeoutKeepsTransportAndLimiter(t *testing.T) {
	client := NewDefaultClient()
	rt := roundTripperFunc(func(r *http.Request) (*http.Response, error) { return nil, nil })
	client.httpClient.Transport = rt

	clone := client.WithTimeout(700)
	assert.Same(t, client.limiter, clone.limiter)
	assert.NotNil(t, clone.httpClient.Transport)
	assert.Equal(t, client.BaseURL(), clone.BaseURL())
}
