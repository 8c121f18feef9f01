package joke

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/jask/widgetbox/internal/apperr"
)

func TestRandom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/random_joke" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"type":"general","setup":"Why did the scarecrow win an award?","punchline":"He was outstanding in his field.","id":17}`))
	}))
	defer srv.Close()

	j, err := NewClient(srv.URL, time.Second, nil).Random(context.Background())
	require.NoError(t, err)
	want := Joke{ID: 17, Type: "general", Setup: "Why did the scarecrow win an award?", Punchline: "He was outstanding in his field."}
	if diff := cmp.Diff(want, j); diff != "" {
		t.Fatalf("joke mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "Why did the scarecrow win an award? | 👉 He was outstanding in his field.", j.String())
}

func TestRandomFailures(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		"body":   func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>")) },
		"empty":  func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("{}")) },
	}
	for name, h := range handlers {
		srv := httptest.NewServer(h)
		_, err := NewClient(srv.URL, time.Second, nil).Random(context.Background())
		srv.Close()
		require.True(t, apperr.IsNetwork(err), name)
		require.Equal(t, "Failed to fetch a joke. Please try again later.", apperr.Message(err), name)
	}
}

func TestRandomAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"type":"general","setup":"s","punchline":"p","id":1}`))
	}))
	defer srv.Close()

	j, err := NewClient(srv.URL, time.Second, nil).Random(context.Background())
	require.NoError(t, err)
	require.Equal(t, "s | 👉 p", j.String())
}

func TestRandomHonoursContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL, 5*time.Second, nil).Random(ctx)
	require.True(t, apperr.IsNetwork(err))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
