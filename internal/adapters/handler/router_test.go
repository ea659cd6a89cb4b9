package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/remtori/image-resize/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(processor *mockProcessor, timeout time.Duration) chi.Router {
	return NewRouter(NewResize(processor, &mockRecorder{}), timeout, []string{".remtori.com"})
}

func TestRouterServesWildcardPaths(t *testing.T) {
	processor := &mockProcessor{result: domain.Result{Image: []byte("jpeg")}}
	r := newTestRouter(processor, time.Second)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/deeply/nested/path/cat.jpg?w=32", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deeply/nested/path/cat.jpg", processor.got.Path)
	assert.Equal(t, 32, processor.got.Width)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterRejectsOtherMethods(t *testing.T) {
	processor := &mockProcessor{}
	r := newTestRouter(processor, time.Second)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/cat.jpg", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, processor.calls)
}

func TestRouterCORSHeaders(t *testing.T) {
	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{
			name:      "subdomain is allowed",
			origin:    "https://app.remtori.com",
			wantAllow: "https://app.remtori.com",
		},
		{
			name:      "bare apex is not allowed",
			origin:    "https://remtori.com",
			wantAllow: "",
		},
		{
			name:      "foreign origin is not allowed",
			origin:    "https://evil.example",
			wantAllow: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			processor := &mockProcessor{result: domain.Result{Image: []byte("jpeg")}}
			r := newTestRouter(processor, time.Second)

			req := httptest.NewRequest("GET", "/cat.jpg", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	processor := &mockProcessor{}
	r := newTestRouter(processor, time.Second)

	req := httptest.NewRequest("OPTIONS", "/cat.jpg", nil)
	req.Header.Set("Origin", "https://app.remtori.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.remtori.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, 0, processor.calls)
}

func TestRouterCORSPreflightRejectsOtherMethods(t *testing.T) {
	processor := &mockProcessor{}
	r := newTestRouter(processor, time.Second)

	req := httptest.NewRequest("OPTIONS", "/cat.jpg", nil)
	req.Header.Set("Origin", "https://app.remtori.com")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterTimesOutSlowRequests(t *testing.T) {
	processor := &mockProcessor{fn: func(ctx context.Context, _ domain.ResizeRequest) (domain.Result, error) {
		<-ctx.Done()
		return domain.Result{}, ctx.Err()
	}}
	r := newTestRouter(processor, 50*time.Millisecond)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/slow.jpg", nil))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestRouterRecoversPanics(t *testing.T) {
	processor := &mockProcessor{fn: func(_ context.Context, _ domain.ResizeRequest) (domain.Result, error) {
		panic("encoder failed")
	}}
	r := newTestRouter(processor, time.Second)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/cat.jpg", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOriginSuffixCheck(t *testing.T) {
	check := OriginSuffixCheck([]string{".remtori.com", ".example.org"})

	assert.True(t, check(nil, "https://cdn.remtori.com"))
	assert.True(t, check(nil, "https://a.b.example.org"))
	assert.False(t, check(nil, "https://remtori.com.evil.net"))
	assert.False(t, check(nil, "https://other.net"))
}
