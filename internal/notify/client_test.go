package notify

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendNewFollower(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.UnmarshalRead(r.Body, &gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	err := c.SendNewFollower(context.Background(), 42, "alice")
	require.NoError(t, err)

	assert.Equal(t, "/notify/new-follower", gotPath)
	// The notification service expects followedId as a JSON number.
	assert.Equal(t, float64(42), gotPayload["followedId"])
	assert.Equal(t, "You have a new follower!", gotPayload["title"])
	assert.Equal(t, "alice has started following you.", gotPayload["body"])
}

func TestSendNewFollower_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())
	err := c.SendNewFollower(context.Background(), 1, "bob")
	assert.ErrorContains(t, err, "status 500")
}

func TestSendNewFollower_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, testLogger())
	err := c.SendNewFollower(context.Background(), 1, "carol")
	assert.Error(t, err)
}
