package telemetry_test

import (
	"context"
	"testing"

	"academy-service/internal/logger"
	"academy-service/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestInitWithoutEndpoint(t *testing.T) {
	tel, err := telemetry.Init(context.Background(), "", "academy-service", "dev", "test", logger.Discard())
	require.NoError(t, err)

	assert.Nil(t, tel.MeterProvider)
	require.NotNil(t, tel.Metrics)
	assert.NotPanics(t, func() { tel.Metrics.RecordStudentCreated(context.Background()) })
	assert.NoError(t, tel.Shutdown(context.Background(), logger.Discard()))
}

func TestNewMeterProviderCarriesServiceResource(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()

	provider, err := telemetry.NewMeterProvider(ctx, "academy-service", "1.2.3", reader)
	require.NoError(t, err)
	defer provider.Shutdown(ctx)

	counter, err := provider.Meter("test").Int64Counter("probe")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	attrs := map[string]string{}
	for _, kv := range rm.Resource.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "academy-service", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}
