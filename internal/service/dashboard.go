package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"realtyapi/internal/logger"
	"realtyapi/internal/metrics"
	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// AvgDealTimePlaceholder is reported as avgDealTime until deal durations are tracked.
const AvgDealTimePlaceholder = 32

const salesChartMonths = 6

var activeLeadStatuses = []string{
	model.LeadStatusNew,
	model.LeadStatusContacted,
	model.LeadStatusQualified,
}

var tracer = otel.Tracer("realtyapi/internal/service")

// DashboardService computes the owner-scoped dashboard figures. It never writes.
type DashboardService interface {
	// GetKPIs returns active lead count, sold property count and revenue, and
	// the average deal time placeholder.
	GetKPIs(ctx context.Context, ownerID string) (*model.DashboardKPIs, error)

	// GetSalesChart returns sold-property revenue for the six calendar months
	// ending with the current one, oldest first.
	GetSalesChart(ctx context.Context, ownerID string) (*model.SalesChart, error)
}

type dashboardService struct {
	agg     repository.AggregateRepository
	props   repository.PropertyRepository
	metrics *metrics.Metrics
	now     func() time.Time
	loc     *time.Location
}

// DashboardOption customises a DashboardService.
type DashboardOption func(*dashboardService)

// WithDashboardClock overrides the time source used for the chart window.
func WithDashboardClock(now func() time.Time) DashboardOption {
	return func(s *dashboardService) { s.now = now }
}

// WithDashboardLocation sets the location month boundaries are computed in.
func WithDashboardLocation(loc *time.Location) DashboardOption {
	return func(s *dashboardService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithDashboardMetrics records aggregation results on m.
func WithDashboardMetrics(m *metrics.Metrics) DashboardOption {
	return func(s *dashboardService) { s.metrics = m }
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(agg repository.AggregateRepository, props repository.PropertyRepository, opts ...DashboardOption) DashboardService {
	s := &dashboardService{
		agg:   agg,
		props: props,
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetKPIs runs the lead count and the sold-property aggregate concurrently.
// The two aggregates are not taken from one snapshot and may reflect slightly
// different points in time under concurrent writes.
func (s *dashboardService) GetKPIs(ctx context.Context, ownerID string) (*model.DashboardKPIs, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetKPIs", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	leadsQ := repository.From(repository.CollectionLeads).
		Where("ownerId", repository.OpEqual, ownerID).
		Where("status", repository.OpIn, activeLeadStatuses)
	soldQ := repository.From(repository.CollectionProperties).
		Where("ownerId", repository.OpEqual, ownerID).
		Where("status", repository.OpEqual, model.PropertyStatusSold)

	var (
		activeLeads int64
		sold        repository.AggregateResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.agg.Count(gctx, leadsQ)
		if err != nil {
			return fmt.Errorf("count active leads: %w", err)
		}
		activeLeads = n
		return nil
	})
	g.Go(func() error {
		res, err := s.agg.CountAndSum(gctx, soldQ, "expectedPrice")
		if err != nil {
			return fmt.Errorf("aggregate sold properties: %w", err)
		}
		sold = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.internal(ctx, span, "kpis", ownerID, err)
	}

	s.metrics.ObserveAggregation("kpis", "success")
	return &model.DashboardKPIs{
		ActiveLeads:    activeLeads,
		PropertiesSold: sold.Count,
		TotalRevenue:   finiteOrZero(sold.Sum),
		AvgDealTime:    AvgDealTimePlaceholder,
	}, nil
}

func (s *dashboardService) GetSalesChart(ctx context.Context, ownerID string) (*model.SalesChart, error) {
	ctx, span := tracer.Start(ctx, "DashboardService.GetSalesChart", trace.WithAttributes(attribute.String("owner.id", ownerID)))
	defer span.End()

	if ownerID == "" {
		return nil, ErrUnauthenticated
	}

	now := s.now().In(s.loc)
	q := repository.From(repository.CollectionProperties).
		Where("ownerId", repository.OpEqual, ownerID).
		Where("status", repository.OpEqual, model.PropertyStatusSold).
		Where("soldAt", repository.OpGreaterOrEqual, salesWindowStart(now))

	props, err := s.props.Find(ctx, q)
	if err != nil {
		return nil, s.internal(ctx, span, "sales_chart", ownerID, fmt.Errorf("find sold properties: %w", err))
	}

	buckets := make(map[string]float64)
	for _, p := range props {
		if p.SoldAt == nil || p.SoldAt.IsZero() || p.ExpectedPrice == nil || !isFinite(*p.ExpectedPrice) {
			logger.Debug(ctx, "skipping property with unusable sale data", "property_id", p.ID)
			continue
		}
		buckets[monthKey(p.SoldAt.In(s.loc))] += *p.ExpectedPrice
	}

	s.metrics.ObserveAggregation("sales_chart", "success")
	return buildSalesSeries(now, buckets), nil
}

func (s *dashboardService) internal(ctx context.Context, span trace.Span, operation, ownerID string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, operation+" failed")
	s.metrics.ObserveAggregation(operation, "error")
	logger.Error(ctx, "dashboard aggregation failed", "operation", operation, "owner_id", ownerID, "error", err)
	return ErrInternal
}

// buildSalesSeries emits salesChartMonths entries ending with the month of now.
func buildSalesSeries(now time.Time, buckets map[string]float64) *model.SalesChart {
	chart := &model.SalesChart{
		Labels: make([]string, salesChartMonths),
		Data:   make([]float64, salesChartMonths),
	}
	start := salesWindowStart(now)
	for i := 0; i < salesChartMonths; i++ {
		m := start.AddDate(0, i, 0)
		chart.Labels[i] = m.Format("Jan")
		chart.Data[i] = buckets[monthKey(m)]
	}
	return chart
}

// salesWindowStart is midnight on the first day of the oldest charted month.
// Stepping from the first of the month keeps AddDate from overflowing on the 29th to 31st.
func salesWindowStart(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -(salesChartMonths - 1), 0)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteOrZero(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}
