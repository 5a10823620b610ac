package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rorical/RoriHost/internal/handle"
)

// VersionEndpoint is resolved against the API base URL
const VersionEndpoint = "appVersion"

type versionInfo struct {
	Version string
}

// VersionProber asks the server which application version it serves
type VersionProber struct {
	client *resty.Client
	logger *zap.Logger
}

func NewVersionProber(timeout time.Duration, logger *zap.Logger) *VersionProber {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "RoriHost/1.0")

	return &VersionProber{client: client, logger: logger}
}

// Probe returns the reported version, or handle.UnknownVersion when the
// endpoint cannot be reached or does not answer as expected.
func (p *VersionProber) Probe(ctx context.Context, apiBaseURL string) string {
	url := apiBaseURL + VersionEndpoint

	resp, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		p.logger.Warn("version probe failed", zap.String("url", url), zap.Error(err))
		return handle.UnknownVersion
	}

	if resp.StatusCode() != http.StatusOK {
		p.logger.Warn("version probe rejected",
			zap.String("url", url), zap.Int("status", resp.StatusCode()))
		return handle.UnknownVersion
	}

	var info versionInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		p.logger.Warn("version probe returned malformed body", zap.String("url", url), zap.Error(err))
		return handle.UnknownVersion
	}
	if info.Version == "" {
		p.logger.Warn("version probe returned no version", zap.String("url", url))
		return handle.UnknownVersion
	}

	return info.Version
}
