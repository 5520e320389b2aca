package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anurakx/villadesk/internal/cache"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/export"
	"github.com/anurakx/villadesk/internal/observability/metrics"
	"github.com/anurakx/villadesk/internal/stats"
)

type DashboardUseCase interface {
	Stats(ctx context.Context, includeRevenue bool) (*stats.Summary, error)
	ChartData(ctx context.Context, metric stats.Metric, rng stats.Range, offset int) ([]stats.Point, error)
	Forecast(ctx context.Context, page int) ([]stats.ForecastDay, error)
	Arrivals(ctx context.Context) ([]domain.Booking, error)
	FinanceReport(ctx context.Context) ([]byte, error)
}

// SnapshotCache is the subset of the redis cache the dashboard needs.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) (*cache.Snapshot, error)
	SetSnapshot(ctx context.Context, snap *cache.Snapshot) error
}

// BookingSource fetches the live booking list from the upstream system.
type BookingSource interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

type DashboardService struct {
	source    BookingSource
	cache     SnapshotCache
	inventory []domain.Room
	logger    *zap.Logger
	nowFn     func() time.Time
}

type DashboardServiceOption func(*DashboardService)

// WithClock overrides the service clock. Used in tests.
func WithClock(nowFn func() time.Time) DashboardServiceOption {
	return func(s *DashboardService) {
		s.nowFn = nowFn
	}
}

func NewDashboardService(source BookingSource, snapshots SnapshotCache, inventory []domain.Room, logger *zap.Logger, opts ...DashboardServiceOption) *DashboardService {
	service := &DashboardService{
		source:    source,
		cache:     snapshots,
		inventory: inventory,
		logger:    logger,
		nowFn:     time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// snapshot returns the current property snapshot, cache-aside: a hit
// serves the cached copy, a miss refetches from the booking backend
// and fills the cache. Cache errors fall through to the backend.
func (s *DashboardService) snapshot(ctx context.Context) (*cache.Snapshot, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSnapshot(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.source.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	snap := &cache.Snapshot{
		Rooms:     s.inventory,
		Bookings:  bookings,
		FetchedAt: s.nowFn(),
	}
	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, snap); err != nil {
			s.logger.Warn("failed to cache snapshot", zap.Error(err))
		}
	}
	metrics.SnapshotRefreshes.Inc()
	return snap, nil
}

func (s *DashboardService) Stats(ctx context.Context, includeRevenue bool) (*stats.Summary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(snap.Rooms, snap.Bookings, s.nowFn())
	if !includeRevenue {
		summary.RedactRevenue()
	}
	return &summary, nil
}

func (s *DashboardService) ChartData(ctx context.Context, metric stats.Metric, rng stats.Range, offset int) ([]stats.Point, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Series(metric, rng, offset, snap.Rooms, snap.Bookings, s.nowFn()), nil
}

func (s *DashboardService) Forecast(ctx context.Context, page int) ([]stats.ForecastDay, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.AvailabilityForecast(snap.Rooms, snap.Bookings, page, s.nowFn()), nil
}

func (s *DashboardService) Arrivals(ctx context.Context) ([]domain.Booking, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.UpcomingArrivals(snap.Bookings, s.nowFn()), nil
}

// FinanceReport renders the current snapshot as an xlsx workbook.
func (s *DashboardService) FinanceReport(ctx context.Context) ([]byte, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return export.FinanceWorkbook(snap.Rooms, snap.Bookings, s.nowFn())
}

// Refresh force-fetches a fresh snapshot into the cache. The worker
// calls it on a ticker so dashboard reads stay warm.
func (s *DashboardService) Refresh(ctx context.Context) error {
	bookings, err := s.source.ListBookings(ctx)
	if err != nil {
		return err
	}

	snap := &cache.Snapshot{
		Rooms:     s.inventory,
		Bookings:  bookings,
		FetchedAt: s.nowFn(),
	}
	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, snap); err != nil {
			return err
		}
	}
	metrics.SnapshotRefreshes.Inc()
	return nil
}

var _ DashboardUseCase = (*DashboardService)(nil)
