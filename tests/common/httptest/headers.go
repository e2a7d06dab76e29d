//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertHeaders checks response headers; an empty expected value asserts the header is absent.
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		if v == "" {
			assert.Empty(t, w.Header().Values(k), "header %s should be absent", k)
			continue
		}
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertLocation checks that Location points at a resource under prefix and returns its id segment.
func AssertLocation(t *testing.T, w *httptest.ResponseRecorder, prefix string) string {
	t.Helper()
	loc := w.Header().Get("Location")
	if !assert.True(t, strings.HasPrefix(loc, prefix), "Location %q should start with %q", loc, prefix) {
		return ""
	}
	return strings.TrimPrefix(loc, prefix)
}
