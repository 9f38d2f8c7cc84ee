package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kbportal/internal/auth"
	"kbportal/internal/domain"
	"kbportal/internal/httputil"
)

type fakeVerifier struct {
	tokens map[string]string
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	sub, ok := f.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	c := &auth.Claims{Role: auth.AuthenticatedRole}
	c.Subject = sub
	return c, nil
}

func (f *fakeVerifier) Close() error { return nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, httputil.GetUserID(r))
	})
}

func TestAuth(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]string{"good": "user-7"}}
	h := Auth(verifier, discard(), "/health")(echoUser())

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
		body   string
	}{
		{"valid token", http.MethodGet, "/api/kb/browse", "Bearer good", http.StatusOK, "user-7"},
		{"lower-case scheme", http.MethodGet, "/api/kb/browse", "bearer good", http.StatusOK, "user-7"},
		{"missing header", http.MethodGet, "/api/kb/browse", "", http.StatusUnauthorized, ""},
		{"wrong scheme", http.MethodGet, "/api/kb/browse", "Basic good", http.StatusUnauthorized, ""},
		{"unknown token", http.MethodGet, "/api/kb/browse", "Bearer bad", http.StatusUnauthorized, ""},
		{"public path", http.MethodGet, "/health", "", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "/api/kb/browse", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Run("panic before writing answers with a problem", func(t *testing.T) {
		h := Recovery(discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		require.NotPanics(t, func() {
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "internal server error")
	})

	t.Run("panic mid-stream leaves the response alone", func(t *testing.T) {
		h := Recovery(discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			io.WriteString(w, "event: progress\n\n")
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		require.NotPanics(t, func() {
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/kb/uploads", nil))
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		assert.Equal(t, "event: progress\n\n", rec.Body.String())
	})

	t.Run("flushing passes through", func(t *testing.T) {
		h := Recovery(discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			f, ok := w.(http.Flusher)
			require.True(t, ok)
			f.Flush()
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, rec.Flushed)
	})

	t.Run("aborted handlers keep panicking", func(t *testing.T) {
		h := Recovery(discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
