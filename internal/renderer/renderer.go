// Package renderer builds the markdown reports shown by the CLI.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"stockfolio/internal/model"
	"stockfolio/internal/portfolio"
)

const _dateLayout = "2006-01-02"

func holdingsTable(holdings []model.Holding) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Shares", "Purchase Price", "Current Price", "Total Value", "Gain/Loss"},
		Rows:   [][]string{},
	}
	for _, h := range holdings {
		table.Rows = append(table.Rows, []string{
			h.Symbol,
			fmt.Sprintf("%d", h.Shares),
			fmt.Sprintf("$%.2f", h.PurchasePrice),
			fmt.Sprintf("$%.2f", h.CurrentPrice),
			fmt.Sprintf("$%.2f", h.TotalValue),
			fmt.Sprintf("$%.2f", h.GainLoss),
		})
	}
	return table
}

// HoldingsMarkdown renders the full portfolio view with totals.
func HoldingsMarkdown(holdings []model.Holding, totalValue, totalGainLoss float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	doc.Table(holdingsTable(holdings))
	doc.PlainTextf("Total Portfolio Value: $%.2f", totalValue)
	doc.PlainTextf("Total Gain/Loss: $%.2f", totalGainLoss)

	return doc.String()
}

// SummaryMarkdown renders the per-holding summary table.
func SummaryMarkdown(holdings []model.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.Table(holdingsTable(holdings))

	return doc.String()
}

// DiversificationMarkdown renders each holding's share of the total value.
func DiversificationMarkdown(allocations []portfolio.Allocation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Diversification Analysis")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Share"},
		Rows:   [][]string{},
	}
	for _, a := range allocations {
		table.Rows = append(table.Rows, []string{
			a.Symbol,
			fmt.Sprintf("%.2f%%", a.Percent),
		})
	}
	doc.Table(table)

	return doc.String()
}

// HistoryMarkdown renders the daily close series for one symbol.
func HistoryMarkdown(symbol string, points []model.PricePoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Historical Performance of %s for the Last Year", symbol))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Close"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Date.Format(_dateLayout),
			fmt.Sprintf("$%.2f", p.Close),
		})
	}
	doc.Table(table)

	return doc.String()
}
