package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"

	"stockfolio/internal/alphavantage"
	"stockfolio/internal/config"
	"stockfolio/internal/logger"
	"stockfolio/internal/portfolio"
	"stockfolio/internal/renderer"
	"stockfolio/internal/store"
)

const _trackerCfgFilePath = "./configs/tracker.yaml"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("can't detect .env file")
	}

	cfg, err := config.LoadTrackerConfig(_trackerCfgFilePath)
	if err != nil {
		log.Fatalf("%s: can't load tracker cfg", err)
	}

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	st, err := store.NewStore(cfg.Storage)
	if err != nil {
		zapLogger.Fatalf("%s: can't init store", err)
	}

	pricer := alphavantage.NewClient(cfg.Market, zapLogger)
	defer pricer.Close()

	manager := portfolio.NewManager(st, pricer, zapLogger)

	ctx := context.Background()
	if _, err := manager.Holdings(ctx); err != nil {
		zapLogger.Fatalf("%s: can't load portfolio", err)
	}

	term, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		zapLogger.Fatalf("%s: can't init term renderer", err)
	}

	runMenu(ctx, manager, zapLogger, term)
}

func runMenu(ctx context.Context, manager *portfolio.Manager, zapLogger logger.Logger, term *glamour.TermRenderer) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Println("Stock Portfolio Management")
		fmt.Println("1. Add Stock")
		fmt.Println("2. Remove Stock")
		fmt.Println("3. View Portfolio")
		fmt.Println("4. View Portfolio Summary")
		fmt.Println("5. Diversification Analysis")
		fmt.Println("6. Historical Performance")
		fmt.Println("7. Exit")

		choice := prompt(scanner, "Enter your choice (1-7): ")

		switch choice {
		case "1":
			runAdd(ctx, scanner, manager, zapLogger)
		case "2":
			symbol := prompt(scanner, "Enter stock symbol to remove: ")
			if err := manager.Remove(ctx, symbol); err != nil {
				zapLogger.Fatalf("%s: can't remove stock", err)
			}
		case "3":
			runView(ctx, manager, zapLogger, term)
		case "4":
			runSummary(ctx, manager, zapLogger, term)
		case "5":
			runDiversification(ctx, manager, zapLogger, term)
		case "6":
			symbol := prompt(scanner, "Enter stock symbol for historical performance: ")
			runHistory(ctx, symbol, manager, term)
		case "7":
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func runAdd(ctx context.Context, scanner *bufio.Scanner, manager *portfolio.Manager, zapLogger logger.Logger) {
	symbol := prompt(scanner, "Enter stock symbol: ")

	shares, err := strconv.Atoi(prompt(scanner, "Enter number of shares: "))
	if err != nil {
		fmt.Println("Invalid input. Please enter numeric values for shares and purchase price.")
		return
	}
	price, err := strconv.ParseFloat(prompt(scanner, "Enter purchase price: "), 64)
	if err != nil {
		fmt.Println("Invalid input. Please enter numeric values for shares and purchase price.")
		return
	}

	h, err := manager.Add(ctx, symbol, shares, price)
	if err != nil {
		if errors.Is(err, portfolio.ErrInvalidHolding) {
			fmt.Printf("Cannot add stock: %v\n", err)
			return
		}
		zapLogger.Fatalf("%s: can't add stock", err)
	}
	fmt.Printf("Added %d shares of %s at $%.2f each.\n", h.Shares, h.Symbol, h.PurchasePrice)
}

func runView(ctx context.Context, manager *portfolio.Manager, zapLogger logger.Logger, term *glamour.TermRenderer) {
	holdings, err := manager.RefreshAll(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: can't refresh portfolio", err)
	}
	totalValue, err := manager.TotalValue(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: can't total portfolio", err)
	}
	totalGainLoss, err := manager.TotalGainLoss(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: can't total portfolio", err)
	}
	printMarkdown(term, renderer.HoldingsMarkdown(holdings, totalValue, totalGainLoss))
}

func runSummary(ctx context.Context, manager *portfolio.Manager, zapLogger logger.Logger, term *glamour.TermRenderer) {
	holdings, err := manager.RefreshAll(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: can't refresh portfolio", err)
	}
	printMarkdown(term, renderer.SummaryMarkdown(holdings))
}

func runDiversification(ctx context.Context, manager *portfolio.Manager, zapLogger logger.Logger, term *glamour.TermRenderer) {
	if _, err := manager.RefreshAll(ctx); err != nil {
		zapLogger.Fatalf("%s: can't refresh portfolio", err)
	}
	allocations, err := manager.Diversification(ctx)
	if err != nil {
		if errors.Is(err, portfolio.ErrZeroPortfolioValue) {
			fmt.Println("Total portfolio value is zero. Diversification analysis cannot be performed.")
			return
		}
		zapLogger.Fatalf("%s: can't analyze diversification", err)
	}
	printMarkdown(term, renderer.DiversificationMarkdown(allocations))
}

func runHistory(ctx context.Context, symbol string, manager *portfolio.Manager, term *glamour.TermRenderer) {
	points, ok := manager.History(ctx, symbol)
	if !ok {
		fmt.Printf("No historical data available for %s.\n", strings.ToUpper(symbol))
		return
	}
	printMarkdown(term, renderer.HistoryMarkdown(strings.ToUpper(symbol), points))
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		// stdin closed, treat as exit
		os.Exit(0)
	}
	return strings.TrimSpace(scanner.Text())
}

func printMarkdown(term *glamour.TermRenderer, markdown string) {
	out, err := term.Render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
