// Package observability provides metrics and monitoring capabilities for the WallYouNeed application.
package observability

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/wallyouneed/wallyouneed/internal/logger"
	"github.com/wallyouneed/wallyouneed/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry *prometheus.Registry
	Export   *metrics.ExportMetrics
}

// NewMetrics creates a new instance of Metrics on a private registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exportMetrics, err := metrics.NewExportMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create export metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		Export:   exportMetrics,
	}, nil
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes every gathered metric family in the Prometheus text format.
// The application has no metrics endpoint; the CLI dumps metrics after a command instead.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			log.Warn("failed to encode metric family", logger.String("family", mf.GetName()), logger.Error(err))
			return fmt.Errorf("failed to write metric family %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
