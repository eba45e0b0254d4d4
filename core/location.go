package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	LocationUnavailable = "Location not available"
	UnknownLocation     = "Unknown location"
)

var ErrNoCoordinates = errors.New("coordinates unavailable")

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// CoordinateSource yields the current device position, one shot per call.
type CoordinateSource interface {
	Coordinates(ctx context.Context) (Coordinates, error)
}

// Geocoder turns coordinates into a place name. An empty name with a nil
// error means the service knows nothing about the position.
type Geocoder interface {
	Reverse(ctx context.Context, c Coordinates) (string, error)
}

// LocationResolver is what the store needs from a Locator.
type LocationResolver interface {
	Resolve(ctx context.Context) string
}

type StaticSource Coordinates

func (s StaticSource) Coordinates(ctx context.Context) (Coordinates, error) {
	return Coordinates(s), nil
}

// NoSource is used when location lookups are disabled.
type NoSource struct{}

func (NoSource) Coordinates(ctx context.Context) (Coordinates, error) {
	return Coordinates{}, ErrNoCoordinates
}

// IPSource asks an ip-api.com style endpoint where this host is.
type IPSource struct {
	URL    string
	Client *http.Client
}

func (s *IPSource) Coordinates(ctx context.Context) (Coordinates, error) {
	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := getJSON(ctx, s.Client, s.URL, "", &body); err != nil {
		return Coordinates{}, errors.Wrap(err, "ip geolocation")
	}

	if body.Status != "" && body.Status != "success" {
		return Coordinates{}, errors.Wrapf(ErrNoCoordinates, "ip geolocation: %s", body.Message)
	}

	return Coordinates{Latitude: body.Lat, Longitude: body.Lon}, nil
}

// NominatimGeocoder calls an OpenStreetMap Nominatim compatible /reverse
// endpoint.
type NominatimGeocoder struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
	limiter   *rate.Limiter
}

// NewNominatimGeocoder limits outgoing requests to perSecond; zero means
// unlimited.
func NewNominatimGeocoder(baseURL, userAgent string, client *http.Client, perSecond float64) *NominatimGeocoder {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}

	return &NominatimGeocoder{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Client:    client,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

func (g *NominatimGeocoder) Reverse(ctx context.Context, c Coordinates) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "reverse geocode")
	}

	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return "", errors.Wrap(err, "reverse geocode")
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	var body struct {
		DisplayName string `json:"display_name"`
	}

	if err := getJSON(ctx, g.Client, u.String(), g.UserAgent, &body); err != nil {
		return "", errors.Wrap(err, "reverse geocode")
	}

	return body.DisplayName, nil
}

// StatusError is returned when a location service answers with anything
// but 200 OK.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
}

func getJSON(ctx context.Context, client *http.Client, target, userAgent string, v any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return errors.WithStack(&StatusError{URL: req.URL.Redacted(), Status: res.StatusCode})
	}

	return json.NewDecoder(res.Body).Decode(v)
}

// Locator resolves the current place name. It never fails: errors are
// logged and replaced by LocationUnavailable.
type Locator struct {
	source   CoordinateSource
	geocoder Geocoder
	logger   *zap.Logger
	group    singleflight.Group
}

func NewLocator(source CoordinateSource, geocoder Geocoder, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Locator{
		source:   source,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Resolve shares one in-flight lookup between concurrent callers. The
// lookup is detached from the caller that started it, so a canceled
// caller only gives up its own wait.
func (l *Locator) Resolve(ctx context.Context) string {
	if err := ctx.Err(); err != nil {
		l.logger.Warn("error getting location", zap.Error(err))
		return LocationUnavailable
	}

	ch := l.group.DoChan("resolve", func() (interface{}, error) {
		return l.resolve(context.WithoutCancel(ctx)), nil
	})

	select {
	case res := <-ch:
		return res.Val.(string)
	case <-ctx.Done():
		l.logger.Warn("error getting location", zap.Error(ctx.Err()))
		return LocationUnavailable
	}
}

func errorFields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err)}

	var se *StatusError
	if errors.As(err, &se) {
		fields = append(fields,
			zap.String(FieldURL, se.URL),
			zap.Int(FieldStatus, se.Status),
		)
	}

	return fields
}

func (l *Locator) resolve(ctx context.Context) string {
	start := time.Now()

	c, err := l.source.Coordinates(ctx)
	if err != nil {
		l.logger.Warn("error getting location", errorFields(err)...)
		return LocationUnavailable
	}

	name, err := l.geocoder.Reverse(ctx, c)
	if err != nil {
		l.logger.Warn("error getting location", append([]zap.Field{
			zap.Float64("lat", c.Latitude),
			zap.Float64("lon", c.Longitude),
		}, errorFields(err)...)...)
		return LocationUnavailable
	}

	if name == "" {
		name = UnknownLocation
	}

	l.logger.Debug("location resolved",
		zap.String(FieldLocation, name),
		zap.Duration("duration", time.Since(start)),
	)

	return name
}
