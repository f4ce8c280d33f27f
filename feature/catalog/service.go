package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/store"
	"catalog-sync/feature/catalog/woocommerce"

	"go.uber.org/zap"
)

// guardKey names product runs for the in-process group and the redis lease.
const guardKey = "products"

// Stats summarizes the mirror against the remote catalog.
type Stats struct {
	DatabaseCount int64             `json:"database_count"`
	RemoteCount   int               `json:"remote_count"` // -1 when the remote could not be reached
	RemoteError   string            `json:"remote_error,omitempty"`
	CategoryCount int               `json:"category_count"`
	LastSync      *reconcile.Report `json:"last_sync,omitempty"`
}

// Service runs synchronizations and answers read-only catalog queries.
type Service struct {
	adapter *ProductAdapter
	remote  RemoteCatalog
	store   *store.Store
	guard   *reconcile.Guard
	cfg     SyncConfig
	logger  *zap.Logger
	archive *Archive
	metrics *Metrics

	mu   sync.RWMutex
	last *reconcile.Report
}

// NewService creates a catalog service. A nil guard allows in-process exclusion only.
func NewService(remote RemoteCatalog, st *store.Store, guard *reconcile.Guard, cfg SyncConfig, logger *zap.Logger) *Service {
	if guard == nil {
		guard = reconcile.NewGuard(nil)
	}
	return &Service{
		adapter: NewProductAdapter(remote, st),
		remote:  remote,
		store:   st,
		guard:   guard,
		cfg:     cfg,
		logger:  logger,
	}
}

// WithArchive enables report archiving.
func (s *Service) WithArchive(a *Archive) *Service {
	s.archive = a
	return s
}

// WithMetrics enables Prometheus metrics.
func (s *Service) WithMetrics(m *Metrics) *Service {
	s.metrics = m
	return s
}

// Synchronize converges the mirror onto the remote catalog. Callers arriving
// while a run is in flight receive that run's report.
func (s *Service) Synchronize(ctx context.Context) (*reconcile.Report, error) {
	report, shared, err := s.guard.Do(ctx, guardKey, s.run)
	if shared {
		s.logger.Debug("Synchronization result shared with concurrent caller")
	}
	return report, err
}

func (s *Service) run(ctx context.Context) (*reconcile.Report, error) {
	s.logger.Info("Starting catalog synchronization")

	report, plan, err := reconcile.Synchronize(ctx, s.adapter, reconcile.Options{BatchSize: s.cfg.InsertBatchSize})
	if plan != nil {
		for _, key := range plan.SkippedKeys {
			s.logger.Warn("Duplicate product id in remote pull, skipped", zap.String("shop_id", key))
		}
	}

	s.metrics.Observe(report, err)

	if err != nil {
		s.logFailure(err, plan, report)
		return report, err
	}

	s.logger.Info("Catalog synchronization finished",
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Int("deleted", report.Deleted),
		zap.Int("unchanged", report.Unchanged),
		zap.Int("skipped", report.Skipped),
		zap.Int("remote_count", report.RemoteCount),
		zap.Int("mirror_count", report.MirrorCount),
		zap.Int64("duration_ms", report.DurationMs),
	)

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.Save(ctx, report); err != nil {
			s.logger.Warn("Failed to archive sync report", zap.Error(err))
		}
	}

	return report, nil
}

func (s *Service) logFailure(err error, plan *reconcile.Plan, report *reconcile.Report) {
	var (
		fetchErr *woocommerce.RemoteFetchError
		valErr   *woocommerce.ValidationError
		writeErr *reconcile.StorageWriteError
	)

	switch {
	case errors.As(err, &valErr):
		s.logger.Error("Remote page failed validation, mirror untouched",
			zap.Int("page", valErr.Page),
			zap.Int("index", valErr.Index),
			zap.Int64("product_id", valErr.ProductID),
			zap.String("field", valErr.Field),
			zap.String("tag", valErr.Tag),
		)
	case errors.As(err, &fetchErr):
		s.logger.Error("Remote pull failed, mirror untouched",
			zap.Int("page", fetchErr.Page),
			zap.Int("status", fetchErr.StatusCode),
			zap.Error(fetchErr.Err),
		)
	case errors.As(err, &writeErr):
		fields := []zap.Field{
			zap.String("phase", string(writeErr.Phase)),
			zap.Int("batch", writeErr.Batch),
			zap.String("first_id", writeErr.FirstKey),
			zap.String("last_id", writeErr.LastKey),
			zap.Int("count", writeErr.Count),
			zap.Error(writeErr.Err),
		}
		if plan != nil {
			fields = append(fields,
				zap.Int("remote_count", plan.Summary.RemoteCount),
				zap.Int("mirror_count", plan.Summary.MirrorCount),
			)
		}
		if report != nil {
			fields = append(fields,
				zap.Int("committed_inserts", report.Inserted),
				zap.Int("committed_deletes", report.Deleted),
				zap.Int("committed_updates", report.Updated),
			)
		}
		s.logger.Error("Mirror write failed", fields...)
	default:
		s.logger.Error("Catalog synchronization failed", zap.Error(err))
	}
}

// Plan computes what a synchronization would do without writing anything.
func (s *Service) Plan(ctx context.Context) (*reconcile.Plan, error) {
	return reconcile.BuildPlan(ctx, s.adapter)
}

// LastReport returns the report of the last successful run in this process.
func (s *Service) LastReport() *reconcile.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Stats compares mirror and remote sizes. A remote failure is reported in the
// result, not as an error.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		DatabaseCount: count,
		CategoryCount: len(categories),
		LastSync:      s.LastReport(),
	}

	remote, err := s.remote.Count(ctx)
	if err != nil {
		s.logger.Warn("Failed to count remote products", zap.Error(err))
		stats.RemoteCount = -1
		stats.RemoteError = err.Error()
	} else {
		stats.RemoteCount = remote
		if int64(remote) != count {
			s.logger.Warn("Mirror and remote product counts differ",
				zap.Int64("database_count", count),
				zap.Int("remote_count", remote),
			)
		}
	}

	return stats, nil
}

// Products returns mirror rows with decoded categories. A non-empty category
// keeps rows having a category whose name or slug contains it, ignoring case.
func (s *Service) Products(ctx context.Context, category string) ([]models.ProductView, error) {
	rows, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(category))
	views := make([]models.ProductView, 0, len(rows))
	for _, row := range rows {
		view := row.ToView()
		if term != "" && !matchesCategory(view.Categories, term) {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func matchesCategory(cats []models.Category, term string) bool {
	for _, c := range cats {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Slug), term) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories across the mirror, sorted by name.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Category)
	for _, row := range rows {
		for _, c := range row.ToView().Categories {
			if _, ok := byID[c.ID]; !ok {
				byID[c.ID] = c
			}
		}
	}

	out := make([]models.Category, 0, len(byID))
	for _, c := range byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// History returns archived reports, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]reconcile.Report, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx, limit)
}

// RunWithTimeout runs Synchronize on a fresh context bounded by timeout.
// Used by the scheduler, whose jobs have no caller context.
func (s *Service) RunWithTimeout(timeout time.Duration) (*reconcile.Report, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.Synchronize(ctx)
}
