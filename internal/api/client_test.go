package api

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tally/internal/apperr"
	"github.com/five82/tally/internal/model"
)

type testModel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(server.URL, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_DefaultsAndNormalizes(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = New("api.internal:8443/v1?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://api.internal:8443/v1", c.BaseURL())

	_, err = New("http://")
	require.Error(t, err)
	assert.Equal(t, apperr.Network, apperr.KindOf(err))
}

func TestFetch_InvalidEndpointIsNetworkError(t *testing.T) {
	c, err := New("https://api.example.com")
	require.NoError(t, err)

	for _, endpoint := range []string{"", "   ", "%zz"} {
		t.Run(endpoint, func(t *testing.T) {
			_, err := Fetch[testModel](context.Background(), c, endpoint)
			require.Error(t, err)
			assert.Equal(t, apperr.Network, apperr.KindOf(err), "err = %v", err)
		})
	}
}

func TestFetch_DecodesBody(t *testing.T) {
	var gotPath, gotAccept, gotUA string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testModel{ID: 7, Name: "seven"})
	})

	got, err := Fetch[testModel](context.Background(), c, "items/7")
	require.NoError(t, err)
	assert.Equal(t, testModel{ID: 7, Name: "seven"}, got)
	assert.Equal(t, "/items/7", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.True(t, strings.HasPrefix(gotUA, "tally/"), "User-Agent = %q", gotUA)
}

func TestFetch_NonSuccessStatusIsNetworkError(t *testing.T) {
	for _, status := range []int{http.StatusMovedPermanently, http.StatusNotFound, http.StatusInternalServerError} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Location", "/elsewhere")
			w.WriteHeader(status)
		})
		c.http.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

		_, err := Fetch[testModel](context.Background(), c, "items")
		require.Error(t, err)
		assert.Equal(t, apperr.Network, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "invalid response")
	}
}

func TestFetch_AcceptsWholeSuccessRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":1,"name":"queued"}`))
	})

	got, err := Fetch[testModel](context.Background(), c, "jobs")
	require.NoError(t, err)
	assert.Equal(t, "queued", got.Name)
}

func TestFetch_MalformedBodyIsDecodingError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	})

	_, err := Fetch[testModel](context.Background(), c, "items")
	require.Error(t, err)
	assert.Equal(t, apperr.Decoding, apperr.KindOf(err))
}

func TestFetch_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	c, err := New(server.URL)
	require.NoError(t, err)
	server.Close()

	_, err = Fetch[testModel](context.Background(), c, "items")
	require.Error(t, err)
	assert.Equal(t, apperr.Network, apperr.KindOf(err))
}

func TestPost_SendsJSON(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody testModel
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(testModel{ID: 99, Name: gotBody.Name})
	})

	got, err := Post[testModel](context.Background(), c, "/items", testModel{Name: "new"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "new", gotBody.Name)
	assert.Equal(t, testModel{ID: 99, Name: "new"}, got)
}

func TestPost_UnencodableBodyIsEncodingError(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := Post[testModel](context.Background(), c, "items", map[string]float64{"x": math.Inf(1)})
	require.Error(t, err)
	assert.Equal(t, apperr.Encoding, apperr.KindOf(err))

	_, err = Post[testModel](context.Background(), c, "items", make(chan int))
	require.Error(t, err)
	assert.Equal(t, apperr.Encoding, apperr.KindOf(err))
	assert.False(t, called, "nothing is sent when encoding fails")
}

func TestPost_InvalidEndpointIsNetworkError(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	_, err = Post[testModel](context.Background(), c, "", testModel{})
	assert.Equal(t, apperr.Network, apperr.KindOf(err))
}

func TestPost_CounterRoundTripsThroughEcho(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(w, r.Body)
	})
	created := time.Date(2025, 11, 27, 9, 30, 0, 123456789, time.UTC)
	original := model.New(model.WithValue(12), model.WithTitle("Echo"), model.WithTimes(created, created.Add(time.Minute)))

	got, err := Post[model.Counter](context.Background(), c, "echo", original)
	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, original.Value, got.Value)
	assert.Equal(t, original.Title, got.Title)
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, original.UpdatedAt.Equal(got.UpdatedAt))
}

func TestFetch_ISO8601Dates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"0b6c7e52-3f5e-4a39-9f0c-1d8f7a1f2c11","value":3,"title":"x",` +
			`"createdAt":"2025-11-27T09:30:00Z","updatedAt":"2025-11-27T10:30:00+01:00"}`))
	})

	got, err := Fetch[model.Counter](context.Background(), c, "counter")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))

	bad := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"createdAt":"27/11/2025"}`))
	})
	_, err = Fetch[model.Counter](context.Background(), bad, "counter")
	assert.Equal(t, apperr.Decoding, apperr.KindOf(err))
}

func TestClient_ConcurrentCallsAreIndependent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(testModel{Name: strings.TrimPrefix(r.URL.Path, "/")})
	})

	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d", "e", "f"}
	results := make([]string, len(names))
	errs := make([]error, len(names))
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			got, err := Fetch[testModel](context.Background(), c, name)
			results[i], errs[i] = got.Name, err
		}(i, name)
	}
	wg.Wait()

	for i, name := range names {
		require.NoError(t, errs[i])
		assert.Equal(t, name, results[i])
	}
}
