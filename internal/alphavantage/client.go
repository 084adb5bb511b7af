package alphavantage

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"resty.dev/v3"

	"stockfolio/internal/config"
	"stockfolio/internal/logger"
	"stockfolio/internal/model"
)

const (
	_functionIntraday = "TIME_SERIES_INTRADAY"
	_functionDaily    = "TIME_SERIES_DAILY"
	_closeField       = "4. close"
	_dateLayout       = "2006-01-02"
)

// Client fetches quotes from an Alpha Vantage compatible endpoint. Every
// failure is swallowed here: callers only see the ok=false signal, the
// underlying cause goes to the log.
type Client struct {
	c   *resty.Client
	cfg config.MarketConfig

	logger logger.Logger
}

func NewClient(cfg config.MarketConfig, logger logger.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &Client{
		c:      client,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Client) Close() error {
	return c.c.Close()
}

// FetchCurrentPrice returns the close of the most recent intraday bar for the
// symbol, or ok=false when the API has no data for it.
func (c *Client) FetchCurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	body, ok := c.get(ctx, map[string]string{
		"function": _functionIntraday,
		"symbol":   symbol,
		"interval": c.cfg.Interval,
		"apikey":   c.cfg.APIKey,
	})
	if !ok {
		return 0, false
	}

	series := gjson.GetBytes(body, "Time Series ("+c.cfg.Interval+")").Map()
	if len(series) == 0 {
		c.logger.Warnf("no intraday data returned for %s", symbol)
		return 0, false
	}

	timestamps := make([]string, 0, len(series))
	for ts := range series {
		timestamps = append(timestamps, ts)
	}
	sort.Strings(timestamps)
	latest := timestamps[len(timestamps)-1]

	price, err := strconv.ParseFloat(series[latest].Map()[_closeField].String(), 64)
	if err != nil {
		c.logger.Warnf("%s: can't parse close price for %s at %s", err, symbol, latest)
		return 0, false
	}

	return price, true
}

// FetchHistoricalDaily returns the daily close series for the symbol ordered
// by date ascending, or ok=false when the API has no data for it.
func (c *Client) FetchHistoricalDaily(ctx context.Context, symbol string) ([]model.PricePoint, bool) {
	body, ok := c.get(ctx, map[string]string{
		"function": _functionDaily,
		"symbol":   symbol,
		"apikey":   c.cfg.APIKey,
	})
	if !ok {
		return nil, false
	}

	series := gjson.GetBytes(body, "Time Series (Daily)").Map()
	if len(series) == 0 {
		c.logger.Warnf("no historical data returned for %s", symbol)
		return nil, false
	}

	points := make([]model.PricePoint, 0, len(series))
	for ds, day := range series {
		d, err := time.Parse(_dateLayout, ds)
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(day.Map()[_closeField].String(), 64)
		if err != nil {
			continue
		}
		points = append(points, model.PricePoint{Date: d, Close: price})
	}
	if len(points) == 0 {
		c.logger.Warnf("no parsable daily closes for %s", symbol)
		return nil, false
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return points, true
}

func (c *Client) get(ctx context.Context, params map[string]string) ([]byte, bool) {
	resp, err := c.c.R().
		SetQueryParams(params).
		SetContext(ctx).
		Get("")
	if err != nil {
		c.logger.Warnf("%s: can't fetch data for %s", err, params["symbol"])
		return nil, false
	}
	defer resp.Body.Close()

	c.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	if resp.IsError() {
		c.logger.Warnf("quote request for %s failed: %s", params["symbol"], resp.Status())
		return nil, false
	}

	body := resp.Bytes()
	if note := gjson.GetBytes(body, "Note"); note.Exists() {
		c.logger.Warnf("api limit reached for %s: %s", params["symbol"], note.String())
	}

	return body, true
}
