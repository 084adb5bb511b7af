package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"stockfolio/internal/model"
)

// DBStore keeps the portfolio in a holdings table. The position column
// preserves insertion order and lets duplicate symbols coexist, matching the
// JSON file layout.
type DBStore struct {
	db *sqlx.DB
}

var _ Store = (*DBStore)(nil)

const (
	_schemaSQLite = `CREATE TABLE IF NOT EXISTS holdings (
		position       INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol         TEXT NOT NULL,
		shares         INTEGER NOT NULL,
		purchase_price DOUBLE PRECISION NOT NULL,
		current_price  DOUBLE PRECISION NOT NULL,
		total_value    DOUBLE PRECISION NOT NULL,
		gain_loss      DOUBLE PRECISION NOT NULL
	)`
	_schemaPostgres = `CREATE TABLE IF NOT EXISTS holdings (
		position       SERIAL PRIMARY KEY,
		symbol         TEXT NOT NULL,
		shares         INTEGER NOT NULL,
		purchase_price DOUBLE PRECISION NOT NULL,
		current_price  DOUBLE PRECISION NOT NULL,
		total_value    DOUBLE PRECISION NOT NULL,
		gain_loss      DOUBLE PRECISION NOT NULL
	)`

	_queryHoldings = `SELECT symbol, shares, purchase_price, current_price, total_value, gain_loss
		FROM holdings ORDER BY position`
	_deleteHoldings = `DELETE FROM holdings`
	_insertHolding  = `INSERT INTO holdings (symbol, shares, purchase_price, current_price, total_value, gain_loss)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

func NewDBStore(driver, dsn string) (*DBStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: can't connect to %s store", err, driver)
	}

	schema := _schemaSQLite
	if driver == "postgres" {
		schema = _schemaPostgres
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("%w: can't create holdings table", err)
	}

	return &DBStore{db: db}, nil
}

func (s *DBStore) Load(ctx context.Context) ([]model.Holding, error) {
	holdings := []model.Holding{}
	if err := s.db.SelectContext(ctx, &holdings, _queryHoldings); err != nil {
		return nil, fmt.Errorf("%w: can't query holdings", err)
	}
	return holdings, nil
}

func (s *DBStore) Save(ctx context.Context, holdings []model.Holding) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: can't begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, _deleteHoldings); err != nil {
		return fmt.Errorf("%w: can't clear holdings", err)
	}
	for _, h := range holdings {
		if _, err := tx.ExecContext(ctx, _insertHolding,
			h.Symbol, h.Shares, h.PurchasePrice, h.CurrentPrice, h.TotalValue, h.GainLoss); err != nil {
			return fmt.Errorf("%w: can't insert holding %s", err, h.Symbol)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: can't commit holdings", err)
	}
	return nil
}

func (s *DBStore) Close() error {
	return s.db.Close()
}
