package worker

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/framelog/slp/internal/worker"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
