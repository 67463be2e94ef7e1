package parser

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/framelog/slp/internal/parser"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
