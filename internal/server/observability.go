package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/observability/metrics"
	"github.com/dvanenk/bookery/internal/observability/tracer"
)

// ObservabilityShutdownFunc is returned by InitObservability.
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and the application metrics.
func InitObservability(serviceName, metricsEndpoint string, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(serviceName, metricsEndpoint, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.Init()
	logger.Info("Observability initialized", zap.String("metrics_endpoint", metricsEndpoint+"/metrics"))

	return otelShutdown, nil
}
