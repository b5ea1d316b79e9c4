package repository

import (
	"context"

	"realtyapi/internal/model"
)

// PropertyRepository reads listings. The service layer never writes properties.
type PropertyRepository interface {
	// Find returns the properties matching q. q.Collection must be CollectionProperties.
	Find(ctx context.Context, q Query) ([]model.Property, error)
}
