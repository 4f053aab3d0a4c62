package source

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
)

// Build returns the source set for the configured mode. Live adapters and the
// fixture adapter conform to the same interface; the mode switch happens here
// and nowhere else.
func Build(logger *zap.Logger, cfg *config.Config) ([]Source, error) {
	switch cfg.SourceMode {
	case "live":
		return []Source{
			NewDevboard(logger, cfg),
			NewRemoteBoard(logger, cfg),
			NewLaunchpool(logger, cfg),
			NewHackarena(logger, cfg),
		}, nil
	case "fixture":
		return []Source{NewFixture(logger)}, nil
	default:
		return nil, fmt.Errorf("unknown SOURCE_MODE: %s (use 'live' or 'fixture')", cfg.SourceMode)
	}
}
