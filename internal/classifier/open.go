package classifier

import (
	"fmt"
	"time"

	"github.com/MikeSquared-Agency/CardioRisk/internal/config"
	"github.com/MikeSquared-Agency/CardioRisk/internal/features"
)

// Open builds the adapter for the configured backend. Any error here means the
// service cannot serve predictions.
func Open(cfg config.ModelConfig, timeout time.Duration, m features.Manifest) (*Adapter, error) {
	switch cfg.Backend {
	case config.BackendLocal, "":
		a, err := LoadArtifact(cfg.ArtifactPath)
		if err != nil {
			return nil, err
		}
		if err := a.CheckManifest(m); err != nil {
			return nil, err
		}
		s, err := a.Scorer()
		if err != nil {
			return nil, err
		}
		return NewAdapter(s, m, a.ModelID), nil
	case config.BackendRemote:
		if cfg.RemoteURL == "" {
			return nil, fmt.Errorf("model backend %q requires remote_url", cfg.Backend)
		}
		s := NewRemoteScorer(cfg.RemoteURL, cfg.RemoteToken, m.Names(), timeout)
		return NewAdapter(s, m, cfg.RemoteModelID), nil
	}
	return nil, fmt.Errorf("unknown model backend %q", cfg.Backend)
}
