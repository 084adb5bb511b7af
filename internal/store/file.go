package store

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"stockfolio/internal/model"
)

// FileStore keeps the portfolio as a human-readable JSON array in one file.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the portfolio file. A missing file means an empty portfolio; a
// present but unreadable or malformed file is an error for the caller.
func (s *FileStore) Load(ctx context.Context) ([]model.Holding, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Holding{}, nil
		}
		return nil, fmt.Errorf("%w: can't read portfolio file", err)
	}

	var holdings []model.Holding
	if err := sonic.Unmarshal(data, &holdings); err != nil {
		return nil, fmt.Errorf("%w: can't unmarshal portfolio file %s", err, s.path)
	}
	if holdings == nil {
		holdings = []model.Holding{}
	}
	return holdings, nil
}

func (s *FileStore) Save(ctx context.Context, holdings []model.Holding) error {
	data, err := sonic.MarshalIndent(holdings, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: can't marshal portfolio", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: can't write portfolio file %s", err, s.path)
	}
	return nil
}
