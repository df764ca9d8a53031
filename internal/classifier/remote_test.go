package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteScorer_Score(t *testing.T) {
	var got remoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sidecar-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"probability": 0.73}`))
	}))
	defer srv.Close()

	s := NewRemoteScorer(srv.URL, "sidecar-token", []string{"Gender", "Age"}, time.Second)
	p, err := s.Score(context.Background(), []float64{1, -0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.73, p)
	assert.Equal(t, []string{"Gender", "Age"}, got.FeatureNames)
	assert.Equal(t, []float64{1, -0.5}, got.Vector)
}

func TestRemoteScorer_Errors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	_, err := NewRemoteScorer(failing.URL, "", nil, time.Second).Score(context.Background(), []float64{0})
	assert.ErrorContains(t, err, "503")

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer empty.Close()

	_, err = NewRemoteScorer(empty.URL, "", nil, time.Second).Score(context.Background(), []float64{0})
	assert.ErrorContains(t, err, "no probability")
}
