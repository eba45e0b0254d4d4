package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func geocodeServer(t *testing.T, handler http.HandlerFunc) *NominatimGeocoder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewNominatimGeocoder(srv.URL+"/reverse", "locanote-test", srv.Client(), 0)
}

type failingSource struct{}

func (failingSource) Coordinates(ctx context.Context) (Coordinates, error) {
	return Coordinates{}, errors.New("permission denied")
}

func TestLocator_Resolve(t *testing.T) {
	g := geocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "35.0116", r.URL.Query().Get("lat"))
		assert.Equal(t, "135.7681", r.URL.Query().Get("lon"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "locanote-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"place_id": 1, "display_name": "Kyoto, Japan"}`))
	})

	l := NewLocator(StaticSource{Latitude: 35.0116, Longitude: 135.7681}, g, nil)

	assert.Equal(t, "Kyoto, Japan", l.Resolve(context.Background()))
}

func TestLocator_Fallbacks(t *testing.T) {
	cases := []struct {
		name    string
		source  CoordinateSource
		handler http.HandlerFunc
		want    string
	}{
		{
			name:   "no display name",
			source: StaticSource{},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error": "Unable to geocode"}`))
			},
			want: UnknownLocation,
		},
		{
			name:   "server error",
			source: StaticSource{},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: LocationUnavailable,
		},
		{
			name:   "malformed body",
			source: StaticSource{},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			want: LocationUnavailable,
		},
		{
			name:   "coordinates denied",
			source: failingSource{},
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("geocoder called without coordinates")
			},
			want: LocationUnavailable,
		},
		{
			name:   "location disabled",
			source: NoSource{},
			handler: func(w http.ResponseWriter, r *http.Request) {
				t.Error("geocoder called without coordinates")
			},
			want: LocationUnavailable,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLocator(c.source, geocodeServer(t, c.handler), nil)
			assert.Equal(t, c.want, l.Resolve(context.Background()))
		})
	}
}

func TestLocator_CanceledContext(t *testing.T) {
	g := geocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "Kyoto, Japan"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLocator(StaticSource{}, g, nil)
	assert.Equal(t, LocationUnavailable, l.Resolve(ctx))
}

func TestIPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"status": "success", "lat": 35.0116, "lon": 135.7681}`))
		default:
			w.Write([]byte(`{"status": "fail", "message": "reserved range"}`))
		}
	}))
	defer srv.Close()

	c, err := (&IPSource{URL: srv.URL + "/ok", Client: srv.Client()}).Coordinates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Latitude: 35.0116, Longitude: 135.7681}, c)

	_, err = (&IPSource{URL: srv.URL + "/fail", Client: srv.Client()}).Coordinates(context.Background())
	assert.ErrorIs(t, err, ErrNoCoordinates)
}

// blockingSource holds the first lookup until release is closed and
// records whether the context it was given had been canceled by then.
type blockingSource struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func (s *blockingSource) Coordinates(ctx context.Context) (Coordinates, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release

	select {
	case s.ctxErr <- ctx.Err():
	default:
	}

	return Coordinates{Latitude: 35.0116, Longitude: 135.7681}, nil
}

func TestLocator_CanceledCallerKeepsSharedLookup(t *testing.T) {
	g := geocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "Kyoto, Japan"}`))
	})

	src := &blockingSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 1),
	}
	l := NewLocator(src, g, nil)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan string, 1)
	go func() { first <- l.Resolve(ctx) }()

	<-src.started

	second := make(chan string, 1)
	go func() { second <- l.Resolve(context.Background()) }()

	cancel()
	assert.Equal(t, LocationUnavailable, <-first)

	close(src.release)

	require.NoError(t, <-src.ctxErr)
	assert.Equal(t, "Kyoto, Japan", <-second)
}

func TestNominatimGeocoder_StatusError(t *testing.T) {
	g := geocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := g.Reverse(context.Background(), Coordinates{})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Contains(t, se.URL, "/reverse")
}

func TestLocator_LogsStatus(t *testing.T) {
	g := geocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	obs, logs := observer.New(zapcore.WarnLevel)
	l := NewLocator(StaticSource{}, g, zap.New(obs))

	assert.Equal(t, LocationUnavailable, l.Resolve(context.Background()))

	entries := logs.FilterMessage("error getting location").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusTooManyRequests), fields[FieldStatus])
	assert.Contains(t, fields[FieldURL], "/reverse")
}
