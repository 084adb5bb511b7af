package store

import (
	"context"
	"fmt"
	"strings"

	"stockfolio/internal/model"
)

// Store persists the full ordered holdings list. Every mutation rewrites the
// list wholesale, so Save always receives the complete portfolio.
type Store interface {
	Load(ctx context.Context) ([]model.Holding, error)
	Save(ctx context.Context, holdings []model.Holding) error
}

const (
	BackendFile     = "file"
	BackendJSON     = "json"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// NewStore returns a store for the provided backend spec.
// Examples:
//   - "file:portfolio.json"
//   - "memory"
//   - "sqlite:portfolio.db"
//   - "postgres:host=localhost user=postgres dbname=stockfolio sslmode=disable"
//
// A spec without a backend prefix is treated as a file path.
func NewStore(spec string) (Store, error) {
	backend, arg := parseSpec(spec)

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, BackendJSON:
		path := arg
		if path == "" {
			path = "portfolio.json"
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		path := arg
		if path == "" {
			path = "portfolio.db"
		}
		return NewDBStore("sqlite", path)
	case BackendPostgres:
		return NewDBStore("postgres", arg)
	default:
		return nil, fmt.Errorf("unsupported portfolio backend: %s", backend)
	}
}

func parseSpec(spec string) (backend, arg string) {
	if spec == "" {
		return BackendFile, "portfolio.json"
	}

	if !strings.Contains(spec, ":") {
		backend = strings.ToLower(spec)
		switch backend {
		case BackendMemory, BackendFile, BackendJSON, BackendSQLite, BackendPostgres:
			return backend, ""
		default:
			// Plain file path.
			return BackendFile, spec
		}
	}

	parts := strings.SplitN(spec, ":", 2)
	return strings.ToLower(parts[0]), parts[1]
}
