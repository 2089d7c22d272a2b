package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNew_NoopProvider(t *testing.T) {
	m, err := New(noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.NotPanics(t, func() {
		m.Delivered(1)
		m.Crashed(1)
		m.Struck(1)
		m.Fined(1)
		m.Refuelled(1)
		m.LifeLost(1)
	})
}

func TestNew_GlobalProvider(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { m.Delivered(2) })
}

func TestNop(t *testing.T) {
	assert.NotNil(t, Nop())
}
