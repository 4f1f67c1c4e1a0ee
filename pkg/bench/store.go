package bench

import (
	"context"
	"encoding/json"
	"os"

	apperrors "github.com/lennartvogt/treedom/pkg/errors"
)

// ResultStore persists benchmark reports.
type ResultStore interface {
	// Store persists a single report.
	Store(ctx context.Context, report *Report) error

	// Close releases the store's resources.
	Close(ctx context.Context) error
}

// JSONLStore appends reports to a JSON-lines file, one report per line.
// The file is created on first use.
type JSONLStore struct {
	path string
}

// NewJSONLStore creates a store writing to the given path.
func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Store appends the report as a single JSON line.
func (s *JSONLStore) Store(_ context.Context, report *Report) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "open %s", s.path)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(report); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "encode report")
	}
	return nil
}

// Close is a no-op; the file is opened per write.
func (s *JSONLStore) Close(context.Context) error { return nil }
