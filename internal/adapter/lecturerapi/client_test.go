package lecturerapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Create_Success(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/lecturers", r.URL.Path)
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/lecturers", "admin-token", Options{}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{
		Name:       "ד\"ר יעל כהן",
		Email:      "yael@uni.ac.il",
		Department: "cs",
	})
	require.NoError(t, err)

	assert.Equal(t, "ד\"ר יעל כהן", body["name"])
	assert.Equal(t, "yael@uni.ac.il", body["email"])
	assert.Equal(t, "cs", body["department"])
}

func TestClient_Create_OmitsEmptyEmail(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "Bearer admin-token", Options{}, newTestLogger())
	require.NoError(t, c.Create(context.Background(), domain.Lecturer{Name: "Levi", Department: "math"}))

	_, hasEmail := body["email"]
	assert.False(t, hasEmail, "empty email should be omitted")
}

func TestClient_Create_ApplicationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Department not found"}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, `{"message":"Department not found"}`, apiErr.Body)
	assert.False(t, errors.Is(err, ErrNoResponse))
}

func TestClient_Create_NoResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "t", Options{Timeout: time.Second}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResponse), "expected ErrNoResponse, got %v", err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_Create_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{MaxRetries: 3, RetryBaseDelay: time.Millisecond}, newTestLogger())
	require.NoError(t, c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"}))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Create_RetriesExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{MaxRetries: 2, RetryBaseDelay: time.Millisecond}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load(), "1 attempt + 2 retries")
}

func TestClient_Create_NoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{MaxRetries: 5, RetryBaseDelay: time.Millisecond}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Create_DefaultNoRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{}, newTestLogger())
	require.Error(t, c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"}))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Create_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "t", Options{MaxRetries: 3}, newTestLogger())
	err := c.Create(ctx, domain.Lecturer{Name: "A", Department: "cs"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_Create_RetriesTooManyRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{MaxRetries: 2, RetryBaseDelay: time.Millisecond}, newTestLogger())
	require.NoError(t, c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"}))
	assert.Equal(t, int32(2), calls.Load())
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_Create_RetriesUnsentRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	httpClient := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("dial tcp: connection refused")
	})}

	c := NewClient("http://lecturers.invalid/api/lecturers", "t",
		Options{MaxRetries: 2, RetryBaseDelay: time.Millisecond, HTTPClient: httpClient}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResponse))
	assert.Equal(t, int32(3), calls.Load(), "1 attempt + 2 retries")
}

func TestClient_Create_NoRetryAfterRequestWritten(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer does not support hijacking")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t", Options{MaxRetries: 3, RetryBaseDelay: time.Millisecond}, newTestLogger())
	err := c.Create(context.Background(), domain.Lecturer{Name: "A", Department: "cs"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResponse), "got %v", err)
	assert.Equal(t, int32(1), calls.Load(), "a delivered request must not be resent")
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lecturer api: status 401 Unauthorized", (&APIError{StatusCode: 401}).Error())
	assert.True(t, strings.Contains((&APIError{StatusCode: 400, Body: "bad"}).Error(), "bad"))
	assert.True(t, (&APIError{StatusCode: 503}).Retryable())
	assert.True(t, (&APIError{StatusCode: 429}).Retryable())
	assert.False(t, (&APIError{StatusCode: 404}).Retryable())
}
