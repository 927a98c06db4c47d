// Package api exposes the predictor over HTTP, websocket and gRPC.
package api

import (
	"context"
	"errors"

	"github.com/xtding233/volcano-backend/internal/game"
	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
	"github.com/xtding233/volcano-backend/internal/store"
	"github.com/xtding233/volcano-backend/internal/volcano"
)

// PredictionCache is the part of store.Store the service needs.
type PredictionCache interface {
	Get(ctx context.Context, key string) (*volcano.Prediction, error)
	Put(ctx context.Context, key string, p *volcano.Prediction) error
	PurgeStale(ctx context.Context, current string) (int64, error)
}

// Service binds table loading, profile resolution and the cache to the engine.
type Service struct {
	tables   *mapdata.Loader
	profiles *game.Loader
	cache    PredictionCache // optional
}

// NewService creates a service. cache may be nil.
func NewService(tables *mapdata.Loader, profiles *game.Loader, cache PredictionCache) *Service {
	return &Service{tables: tables, profiles: profiles, cache: cache}
}

func (s *Service) engine() (*volcano.Engine, error) {
	t, err := s.tables.Load()
	if err != nil {
		return nil, err
	}
	return volcano.NewEngine(t), nil
}

// Resolve turns a profile name plus overrides into engine settings.
func (s *Service) Resolve(profile string, o game.Overrides) (volcano.GameSettings, error) {
	_, settings, err := s.profiles.Resolve(profile, o)
	return settings, err
}

// Predict returns the day's prediction, from the cache when possible. cached reports a cache hit.
func (s *Service) Predict(ctx context.Context, settings volcano.GameSettings) (p *volcano.Prediction, cached bool, err error) {
	e, err := s.engine()
	if err != nil {
		return nil, false, err
	}
	if err := volcano.ValidateSettings(settings); err != nil {
		return nil, false, err
	}
	key := store.Key(settings, e.Tables().Version())
	if s.cache != nil {
		p, err := s.cache.Get(ctx, key)
		if err == nil {
			return p, true, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			logger.Error("cache read failed", "key", key, "error", err)
		}
	}

	p, err = e.Predict(settings)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, key, p); err != nil {
			logger.Error("cache write failed", "key", key, "error", err)
		}
	}
	return p, false, nil
}

// SimulateFloor runs a single floor; a nil luck range covers the settings' whole domain.
func (s *Service) SimulateFloor(settings volcano.GameSettings, level, layout int, luck *volcano.LuckRange) (*volcano.FloorView, error) {
	e, err := s.engine()
	if err != nil {
		return nil, err
	}
	return e.SimulateFloor(settings, level, layout, luck)
}

// Sweep records a metric over a range of days.
func (s *Service) Sweep(settings volcano.GameSettings, sp volcano.SweepParams) (*volcano.SweepResult, error) {
	e, err := s.engine()
	if err != nil {
		return nil, err
	}
	return e.Sweep(settings, sp)
}

// TableVersion loads the tables if needed and returns their version.
func (s *Service) TableVersion() (string, int, error) {
	t, err := s.tables.Load()
	if err != nil {
		return "", 0, err
	}
	return t.Version(), t.NumLayouts(), nil
}

// Reload drops cached tables and profiles, reloads the tables and purges predictions from older tables.
func (s *Service) Reload(ctx context.Context) error {
	s.tables.Invalidate()
	s.profiles.Invalidate()
	t, err := s.tables.Load()
	if err != nil {
		return err
	}
	var purged int64
	if s.cache != nil {
		if purged, err = s.cache.PurgeStale(ctx, t.Version()); err != nil {
			return err
		}
	}
	logger.Info("tables reloaded", "version", t.Version(), "layouts", t.NumLayouts(), "purged", purged)
	return nil
}

// isClientError reports whether err was caused by the request rather than the server.
func isClientError(err error) bool {
	for _, target := range []error{
		errBadRequest,
		game.ErrInvalidConfig,
		volcano.ErrInvalidSettings,
		volcano.ErrInvalidLevel,
		volcano.ErrInvalidLuckRange,
		mapdata.ErrUnknownLayout,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var errBadRequest = errors.New("bad request")
