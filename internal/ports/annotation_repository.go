package ports

import (
	"context"

	"github.com/charlpcronje/fxd-coordinator/internal/domain"
)

// AnnotationRepository persists the reverse index of code annotations. The
// index is a single document: Replace overwrites it wholesale, there is no
// incremental merge.
type AnnotationRepository interface {
	Load(ctx context.Context) (domain.AnnotationIndex, error)
	Replace(ctx context.Context, index domain.AnnotationIndex) error
}
