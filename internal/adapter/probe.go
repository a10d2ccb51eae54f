package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-survey/internal/logger"
)

type healthProbe struct {
	remote  RemoteStore
	timeout time.Duration
}

// NewHealthProbe returns a [ConnectivityProbe] that issues one health check
// bounded by timeout. A zero timeout leaves only the caller's deadline.
func NewHealthProbe(remote RemoteStore, timeout time.Duration) ConnectivityProbe {
	return &healthProbe{remote: remote, timeout: timeout}
}

func (p *healthProbe) Reachable(ctx context.Context) bool {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if _, err := p.remote.CheckHealth(ctx); err != nil {
		logger.FromContext(ctx).Debug().Err(err).
			Str("func", "healthProbe.Reachable").
			Msg("remote api unreachable")
		return false
	}
	return true
}
