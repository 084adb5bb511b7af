package portfolio

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"stockfolio/internal/logger"
	"stockfolio/internal/model"
	"stockfolio/internal/store"
)

type nopLogger struct{}

func (nopLogger) With(args ...interface{}) logger.Logger      { return nopLogger{} }
func (nopLogger) Debugf(template string, args ...interface{}) {}
func (nopLogger) Infof(template string, args ...interface{})  {}
func (nopLogger) Warnf(template string, args ...interface{})  {}
func (nopLogger) Errorf(template string, args ...interface{}) {}
func (nopLogger) Fatalf(template string, args ...interface{}) {}
func (nopLogger) Sync() error                                 { return nil }

var _ logger.Logger = nopLogger{}

// stubPricer serves fixed prices per symbol; unknown symbols signal no data.
type stubPricer struct {
	prices  map[string]float64
	history []model.PricePoint
}

func (s *stubPricer) FetchCurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	p, ok := s.prices[symbol]
	return p, ok
}

func (s *stubPricer) FetchHistoricalDaily(ctx context.Context, symbol string) ([]model.PricePoint, bool) {
	if len(s.history) == 0 {
		return nil, false
	}
	return s.history, true
}

var _ PriceProvider = (*stubPricer)(nil)

func newTestManager(pricer PriceProvider) *Manager {
	return NewManager(store.NewMemoryStore(), pricer, nopLogger{})
}

func TestAddThenLoad(t *testing.T) {
	m := newTestManager(&stubPricer{})
	ctx := context.Background()

	if _, err := m.Add(ctx, "aapl", 10, 150.00); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	holdings, err := m.Holdings(ctx)
	if err != nil {
		t.Fatalf("Holdings error: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("len(holdings) = %d, want 1", len(holdings))
	}
	h := holdings[0]
	if h.Symbol != "AAPL" || h.Shares != 10 || h.PurchasePrice != 150.00 {
		t.Fatalf("stored holding = %+v", h)
	}
	if h.CurrentPrice != 0 || h.TotalValue != 0 || h.GainLoss != 0 {
		t.Fatalf("derived fields not zeroed: %+v", h)
	}
}

func TestAddRejectsNegativeInput(t *testing.T) {
	m := newTestManager(&stubPricer{})
	ctx := context.Background()

	if _, err := m.Add(ctx, "AAPL", -1, 150); !errors.Is(err, ErrInvalidHolding) {
		t.Fatalf("Add(-1 shares) error = %v, want ErrInvalidHolding", err)
	}
	if _, err := m.Add(ctx, "AAPL", 1, -150); !errors.Is(err, ErrInvalidHolding) {
		t.Fatalf("Add(negative price) error = %v, want ErrInvalidHolding", err)
	}
}

func TestDuplicateSymbolsKeepSeparateRows(t *testing.T) {
	m := newTestManager(&stubPricer{})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150)
	m.Add(ctx, "AAPL", 5, 120)

	holdings, _ := m.Holdings(ctx)
	if len(holdings) != 2 {
		t.Fatalf("len(holdings) = %d, want 2", len(holdings))
	}
}

func TestRemoveAbsentSymbolLeavesPortfolioUnchanged(t *testing.T) {
	m := newTestManager(&stubPricer{})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150)
	if err := m.Remove(ctx, "MSFT"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	holdings, _ := m.Holdings(ctx)
	if len(holdings) != 1 || holdings[0].Symbol != "AAPL" {
		t.Fatalf("holdings = %+v, want just AAPL", holdings)
	}
}

func TestRemoveIsCaseInsensitiveAndDropsDuplicates(t *testing.T) {
	m := newTestManager(&stubPricer{})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150)
	m.Add(ctx, "MSFT", 3, 200)
	m.Add(ctx, "AAPL", 5, 120)

	if err := m.Remove(ctx, "aapl"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}

	holdings, _ := m.Holdings(ctx)
	if len(holdings) != 1 || holdings[0].Symbol != "MSFT" {
		t.Fatalf("holdings = %+v, want just MSFT", holdings)
	}
}

func TestRefreshAllUpdatesDerivedFields(t *testing.T) {
	m := newTestManager(&stubPricer{prices: map[string]float64{"AAPL": 155.00}})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150.00)
	if _, err := m.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll error: %v", err)
	}

	holdings, _ := m.Holdings(ctx)
	h := holdings[0]
	if h.CurrentPrice != 155.00 {
		t.Fatalf("CurrentPrice = %v, want 155", h.CurrentPrice)
	}
	if h.TotalValue != 1550.00 {
		t.Fatalf("TotalValue = %v, want 1550", h.TotalValue)
	}
	if h.GainLoss != 50.00 {
		t.Fatalf("GainLoss = %v, want 50", h.GainLoss)
	}
}

func TestRefreshAllKeepsPriorValuesOnMissingData(t *testing.T) {
	pricer := &stubPricer{prices: map[string]float64{"AAPL": 155.00}}
	m := newTestManager(pricer)
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150.00)
	m.RefreshAll(ctx)

	// Next cycle the API has nothing for AAPL.
	pricer.prices = map[string]float64{}
	if _, err := m.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll error: %v", err)
	}

	holdings, _ := m.Holdings(ctx)
	if holdings[0].CurrentPrice != 155.00 {
		t.Fatalf("CurrentPrice = %v, want prior 155", holdings[0].CurrentPrice)
	}
}

func TestTotalValueAndGainLoss(t *testing.T) {
	m := newTestManager(&stubPricer{prices: map[string]float64{"AAPL": 155, "MSFT": 210}})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150)
	m.Add(ctx, "MSFT", 2, 200)
	m.RefreshAll(ctx)

	total, err := m.TotalValue(ctx)
	if err != nil {
		t.Fatalf("TotalValue error: %v", err)
	}
	if want := 10*155.0 + 2*210.0; total != want {
		t.Fatalf("TotalValue = %v, want %v", total, want)
	}

	gain, err := m.TotalGainLoss(ctx)
	if err != nil {
		t.Fatalf("TotalGainLoss error: %v", err)
	}
	if want := 50.0 + 20.0; gain != want {
		t.Fatalf("TotalGainLoss = %v, want %v", gain, want)
	}
}

func TestDiversificationSumsToHundred(t *testing.T) {
	m := newTestManager(&stubPricer{prices: map[string]float64{"AAPL": 100, "MSFT": 300}})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 1, 90)
	m.Add(ctx, "MSFT", 1, 250)
	m.RefreshAll(ctx)

	allocations, err := m.Diversification(ctx)
	if err != nil {
		t.Fatalf("Diversification error: %v", err)
	}
	if len(allocations) != 2 {
		t.Fatalf("len(allocations) = %d, want 2", len(allocations))
	}

	var sum float64
	for _, a := range allocations {
		sum += a.Percent
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum = %v, want ~100", sum)
	}
	if allocations[0].Percent != 25 || allocations[1].Percent != 75 {
		t.Fatalf("allocations = %+v, want 25/75", allocations)
	}
}

func TestDiversificationZeroTotalValue(t *testing.T) {
	m := newTestManager(&stubPricer{})
	ctx := context.Background()

	m.Add(ctx, "AAPL", 10, 150)

	allocations, err := m.Diversification(ctx)
	if !errors.Is(err, ErrZeroPortfolioValue) {
		t.Fatalf("error = %v, want ErrZeroPortfolioValue", err)
	}
	if len(allocations) != 0 {
		t.Fatalf("allocations = %+v, want none", allocations)
	}
}

func TestHistoryTrimsToOneYear(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, 0, 400)
	for i := 0; i < 400; i++ {
		points = append(points, model.PricePoint{Date: day.AddDate(0, 0, i), Close: float64(i)})
	}

	m := newTestManager(&stubPricer{history: points})
	got, ok := m.History(context.Background(), "AAPL")
	if !ok {
		t.Fatalf("History signalled no data")
	}
	if len(got) != 365 {
		t.Fatalf("len(history) = %d, want 365", len(got))
	}
	if !got[len(got)-1].Date.Equal(points[len(points)-1].Date) {
		t.Fatalf("history should keep the most recent closes")
	}
}

func TestHistoryMissingData(t *testing.T) {
	m := newTestManager(&stubPricer{})
	if _, ok := m.History(context.Background(), "AAPL"); ok {
		t.Fatalf("History ok = true, want false")
	}
}
