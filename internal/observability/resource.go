package observability

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ServiceVersion is reported on every exported signal. Overridden at build
// time with -ldflags "-X go-chi-calculator/internal/observability.ServiceVersion=...".
var ServiceVersion = "dev"

func ServiceName() string {
	name := os.Getenv("OTEL_SERVICE_NAME")
	if name == "" {
		name = "calculator-api"
	}
	return name
}

// newResource describes this process for traces, metrics and logs.
// OTEL_RESOURCE_ATTRIBUTES entries are merged in.
func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName()),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
}
