package instance

import (
	"context"
	"errors"
	"fmt"
	"load-route-service/internal/domain"
	"load-route-service/internal/platform/obs"
	"os"
)

// File-backed implementation of the LoadRepository port.
// The file is read on every ListLoads call.
type FileLoadRepository struct {
	Path string
}

func NewFileLoadRepository(path string) *FileLoadRepository {
	return &FileLoadRepository{Path: path}
}

// Return all loads recorded in the instance file.
func (f *FileLoadRepository) ListLoads(ctx context.Context) (_ []domain.Load, err error) {
	defer obs.Time(ctx, "instance.file.ListLoads")(&err)

	if f.Path == "" {
		return nil, errors.New("file load repository: path must be non-empty")
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("list loads: open %q: %w", f.Path, err)
	}
	defer file.Close()

	loads, err := ParseLoads(file)
	if err != nil {
		return nil, fmt.Errorf("list loads: %q: %w", f.Path, err)
	}
	return loads, nil
}

// In-memory LoadRepository over an already parsed load set.
type StaticLoadRepository struct {
	loads []domain.Load
}

func NewStaticLoadRepository(loads []domain.Load) *StaticLoadRepository {
	return &StaticLoadRepository{loads: loads}
}

// Return a copy of the wrapped loads.
func (s *StaticLoadRepository) ListLoads(ctx context.Context) ([]domain.Load, error) {
	out := make([]domain.Load, len(s.loads))
	copy(out, s.loads)
	return out, nil
}
