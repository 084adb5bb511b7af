package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockfolio/internal/logger"
	"stockfolio/internal/model"
	"stockfolio/internal/store"
)

var (
	// ErrZeroPortfolioValue is returned by Diversification when the portfolio
	// has no market value to break down.
	ErrZeroPortfolioValue = errors.New("total portfolio value is zero")
	// ErrInvalidHolding marks rejected add input, as opposed to store failures.
	ErrInvalidHolding = errors.New("invalid holding")
)

const _historyDays = 365

// PriceProvider delivers market prices. A false ok means "no data this cycle":
// the provider already logged the cause and the caller must keep prior values.
type PriceProvider interface {
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, bool)
	FetchHistoricalDaily(ctx context.Context, symbol string) ([]model.PricePoint, bool)
}

// Allocation is one holding's share of the total portfolio value.
type Allocation struct {
	Symbol  string  `json:"symbol"`
	Percent float64 `json:"percent"`
}

// Manager owns the ordered holdings list: mutations, price refreshes and
// aggregate metrics. Every mutation persists the whole list to the store.
type Manager struct {
	store  store.Store
	pricer PriceProvider

	logger logger.Logger
}

func NewManager(store store.Store, pricer PriceProvider, logger logger.Logger) *Manager {
	return &Manager{
		store:  store,
		pricer: pricer,
		logger: logger,
	}
}

// Add appends a holding with zeroed derived fields and persists. Duplicate
// symbols are allowed: each add is its own line item.
func (m *Manager) Add(ctx context.Context, symbol string, shares int, purchasePrice float64) (model.Holding, error) {
	if shares < 0 {
		return model.Holding{}, fmt.Errorf("%w: shares must be >= 0, got %d", ErrInvalidHolding, shares)
	}
	if purchasePrice < 0 {
		return model.Holding{}, fmt.Errorf("%w: purchase price must be >= 0, got %.2f", ErrInvalidHolding, purchasePrice)
	}

	holdings, err := m.store.Load(ctx)
	if err != nil {
		return model.Holding{}, err
	}

	h := model.NewHolding(symbol, shares, purchasePrice)
	holdings = append(holdings, h)

	if err := m.store.Save(ctx, holdings); err != nil {
		return model.Holding{}, err
	}

	m.logger.Infof("added %d shares of %s at $%.2f each", shares, h.Symbol, purchasePrice)
	return h, nil
}

// Remove drops every holding whose symbol matches, case-insensitively. An
// absent symbol leaves the list unchanged but still rewrites the store.
func (m *Manager) Remove(ctx context.Context, symbol string) error {
	holdings, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	target := strings.ToUpper(symbol)
	kept := holdings[:0]
	for _, h := range holdings {
		if h.Symbol != target {
			kept = append(kept, h)
		}
	}

	if err := m.store.Save(ctx, kept); err != nil {
		return err
	}

	m.logger.Infof("removed %s from the portfolio", target)
	return nil
}

// Holdings returns the current list in insertion order.
func (m *Manager) Holdings(ctx context.Context) ([]model.Holding, error) {
	return m.store.Load(ctx)
}

// RefreshAll fetches a current price for every holding and recomputes the
// derived fields. A failed fetch keeps the holding's prior values: no retry,
// no partial zeroing. The refreshed list is persisted once at the end.
func (m *Manager) RefreshAll(ctx context.Context) ([]model.Holding, error) {
	holdings, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range holdings {
		price, ok := m.pricer.FetchCurrentPrice(ctx, holdings[i].Symbol)
		if !ok {
			continue
		}
		holdings[i].ApplyPrice(price)
	}

	if err := m.store.Save(ctx, holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

func (m *Manager) TotalValue(ctx context.Context) (float64, error) {
	holdings, err := m.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	return totalValue(holdings), nil
}

func (m *Manager) TotalGainLoss(ctx context.Context) (float64, error) {
	holdings, err := m.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, h := range holdings {
		total += h.GainLoss
	}
	return total, nil
}

// Diversification reports each holding's share of the total portfolio value.
// Duplicate symbols keep separate rows, so the percentages always sum to ~100.
func (m *Manager) Diversification(ctx context.Context) ([]Allocation, error) {
	holdings, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	total := totalValue(holdings)
	if total == 0 {
		return nil, ErrZeroPortfolioValue
	}

	allocations := make([]Allocation, 0, len(holdings))
	for _, h := range holdings {
		allocations = append(allocations, Allocation{
			Symbol:  h.Symbol,
			Percent: h.TotalValue / total * 100,
		})
	}
	return allocations, nil
}

// History returns up to a year of daily closes for the symbol, oldest first.
func (m *Manager) History(ctx context.Context, symbol string) ([]model.PricePoint, bool) {
	points, ok := m.pricer.FetchHistoricalDaily(ctx, symbol)
	if !ok {
		return nil, false
	}
	if len(points) > _historyDays {
		points = points[len(points)-_historyDays:]
	}
	return points, true
}

func totalValue(holdings []model.Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += h.TotalValue
	}
	return total
}
