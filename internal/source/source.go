// Package source translates upstream opportunity platforms into the canonical
// Opportunity schema. Each adapter owns its own parsing and normalization;
// failures never propagate past the aggregator boundary.
package source

import (
	"context"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

// Source is one upstream platform adapter.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Opportunity, error)
}
