package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
	"github.com/charlpcronje/fxd-coordinator/internal/ports"
	"github.com/spf13/viper"
)

const annotationsTempPattern = ".annotations-*.json.tmp"

// AnnotationRepository persists the annotation index as one JSON document
// mapping file path to annotation records.
type AnnotationRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.AnnotationRepository = (*AnnotationRepository)(nil)

func NewAnnotationRepository(cfg *viper.Viper) (*AnnotationRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}

	path := cfg.GetString(annotationsKey)
	if path == "" {
		return nil, errors.New("annotations path is empty")
	}
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &AnnotationRepository{path: path, mu: lockForPath(path)}, nil
}

// Path returns the location of the annotation index file.
func (r *AnnotationRepository) Path() string {
	return r.path
}

func (r *AnnotationRepository) Load(ctx context.Context) (domain.AnnotationIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.AnnotationIndex{}, nil
		}
		return nil, fmt.Errorf("read annotations file: %w", err)
	}

	var records map[string][]annotationSchema
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode annotations file: %w", err)
	}

	index := make(domain.AnnotationIndex, len(records))
	for filePath, anns := range records {
		decoded := make([]domain.CodeAnnotation, 0, len(anns))
		for _, ann := range anns {
			decoded = append(decoded, fromAnnotationSchema(ann))
		}
		index[filePath] = decoded
	}

	return index, nil
}

func (r *AnnotationRepository) Replace(ctx context.Context, index domain.AnnotationIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := make(map[string][]annotationSchema, len(index))
	for filePath, anns := range index {
		encoded := make([]annotationSchema, 0, len(anns))
		for _, ann := range anns {
			encoded = append(encoded, toAnnotationSchema(ann))
		}
		records[filePath] = encoded
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode annotations file: %w", err)
	}

	return writeFileAtomic(r.path, data, annotationsTempPattern)
}
