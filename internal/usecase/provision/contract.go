package provision

import (
	"context"

	"github.com/vektorops/qdrant-init/internal/domain"
)

// API is the slice of the management client the provisioner needs.
type API interface {
	Exists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, spec domain.CollectionSpec) error
	CreateFieldIndex(ctx context.Context, collection string, field domain.Field) error
	ListCollections(ctx context.Context) ([]string, error)
}
