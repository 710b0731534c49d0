package services

import (
	"context"
	"sync"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const statsCacheKey = "dashboard_stats"

// StatsStore define la consulta de totales que necesitamos del repositorio
type StatsStore interface {
	GetDashboardStats(ctx context.Context) (models.DashboardStats, error)
}

// DashboardService calcula las estadísticas del dashboard y las guarda en caché hasta la próxima escritura
type DashboardService struct {
	store      StatsStore
	cache      *cache.Cache
	enabled    bool
	mu         sync.Mutex
	generation uint64
	log        zerolog.Logger
}

// NewDashboardService crea el servicio; ttl <= 0 deshabilita la caché
func NewDashboardService(store StatsStore, ttl time.Duration, log zerolog.Logger) *DashboardService {
	cleanup := ttl * 2
	if ttl <= 0 {
		cleanup = time.Minute
	}
	return &DashboardService{
		store:   store,
		cache:   cache.New(ttl, cleanup),
		enabled: ttl > 0,
		log:     log.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetStats devuelve las estadísticas, desde la caché si siguen vigentes
func (s *DashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	if s.enabled {
		if cached, found := s.cache.Get(statsCacheKey); found {
			return cached.(models.DashboardStats), nil
		}
	}

	s.mu.Lock()
	generation := s.generation
	s.mu.Unlock()

	stats, err := s.store.GetDashboardStats(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Error al calcular las estadísticas del dashboard")
		return models.DashboardStats{}, err
	}

	// Si hubo una escritura mientras se calculaba, no guardamos un resultado viejo
	s.mu.Lock()
	if s.enabled && s.generation == generation {
		s.cache.SetDefault(statsCacheKey, stats)
	}
	s.mu.Unlock()
	return stats, nil
}

// Invalidate descarta las estadísticas en caché
func (s *DashboardService) Invalidate() {
	s.mu.Lock()
	s.generation++
	s.cache.Delete(statsCacheKey)
	s.mu.Unlock()
	s.log.Debug().Msg("Caché del dashboard invalidada")
}
