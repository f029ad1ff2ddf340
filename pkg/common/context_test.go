package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetadata(t *testing.T) {
	tests := []struct {
		name   string
		chain  func(http.Handler) http.Handler
		header string
		want   string
	}{
		{name: "generated", chain: func(h http.Handler) http.Handler { return h }},
		{name: "incoming header", chain: func(h http.Handler) http.Handler { return h }, header: "abc-123", want: "abc-123"},
		{name: "chi request id", chain: middleware.RequestID, header: "from-client", want: "from-client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := tt.chain(RequestMetadata(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				var ok bool
				seen, ok = GetRequestID(r.Context())
				require.True(t, ok)
				_, ok = GetStartTime(r.Context())
				assert.True(t, ok)
			})))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
			if tt.want != "" {
				assert.Equal(t, tt.want, seen)
			}
		})
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusOK, map[string]int{"n": 1})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
