package server

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"stockfolio/internal/logger"
	"stockfolio/internal/model"
	"stockfolio/internal/portfolio"
)

// Router exposes a read-only JSON view of the portfolio plus a refresh
// trigger. Mutations stay in the interactive CLI.
func Router(manager *portfolio.Manager, logger logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/holdings", handleHoldings(manager, logger))
	mux.HandleFunc("/summary", handleSummary(manager, logger))
	mux.HandleFunc("/diversification", handleDiversification(manager, logger))
	mux.HandleFunc("/refresh", handleRefresh(manager, logger))
	return mux
}

type summaryResponse struct {
	Holdings      []model.Holding `json:"holdings"`
	TotalValue    float64         `json:"total_value"`
	TotalGainLoss float64         `json:"total_gain_loss"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleHoldings(manager *portfolio.Manager, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		holdings, err := manager.Holdings(r.Context())
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, logger, holdings)
	}
}

func handleSummary(manager *portfolio.Manager, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		holdings, err := manager.Holdings(r.Context())
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		totalValue, err := manager.TotalValue(r.Context())
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		totalGainLoss, err := manager.TotalGainLoss(r.Context())
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, logger, summaryResponse{
			Holdings:      holdings,
			TotalValue:    totalValue,
			TotalGainLoss: totalGainLoss,
		})
	}
}

func handleDiversification(manager *portfolio.Manager, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		allocations, err := manager.Diversification(r.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, portfolio.ErrZeroPortfolioValue) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, logger, status, err)
			return
		}
		writeJSON(w, logger, allocations)
	}
}

func handleRefresh(manager *portfolio.Manager, logger logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		holdings, err := manager.RefreshAll(r.Context())
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, logger, holdings)
	}
}

func writeJSON(w http.ResponseWriter, logger logger.Logger, v interface{}) {
	data, err := sonic.Marshal(v)
	if err != nil {
		logger.Errorf("%s: can't marshal response", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func writeError(w http.ResponseWriter, logger logger.Logger, status int, err error) {
	logger.Errorf("%s: request failed", err)
	data, merr := sonic.Marshal(errorResponse{Error: err.Error()})
	if merr != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
