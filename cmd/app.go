package cmd

import (
	"net/http"

	"github.com/ikasoba/locanote/config"
	"github.com/ikasoba/locanote/core"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is one application session: config, logger and an open store.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *core.Store
}

func openApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if home, _ := flags.GetString("home"); home != "" {
		cfg.Home = home
	}

	if locale, _ := flags.GetString("locale"); locale != "" {
		cfg.Locale = locale
	}

	logger := newLogger()

	slot, err := core.OpenBoltSlot(cfg.Home, cfg.Storage.File, cfg.Storage.Key)
	if err != nil {
		return nil, err
	}

	store, err := core.Open(slot,
		core.WithLocator(newLocator(cfg.Location, logger)),
		core.WithLogger(logger),
	)
	if err != nil {
		slot.Close()
		return nil, err
	}

	logger.Debug("session opened",
		zap.String("home", cfg.Home),
		zap.String("config", cfg.File),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("close store", zap.Error(err))
	}

	a.logger.Sync()
}

func newLocator(cfg config.LocationConfig, logger *zap.Logger) *core.Locator {
	client := &http.Client{Timeout: cfg.Timeout}

	var source core.CoordinateSource
	switch cfg.Mode {
	case config.ModeStatic:
		source = core.StaticSource{Latitude: cfg.Latitude, Longitude: cfg.Longitude}
	case config.ModeIP:
		source = &core.IPSource{URL: cfg.IPLookupURL, Client: client}
	default:
		source = core.NoSource{}
	}

	geocoder := core.NewNominatimGeocoder(cfg.ReverseURL, cfg.UserAgent, client, cfg.RateLimit)

	return core.NewLocator(source, geocoder, logger.Named("location"))
}
