// Package telemetry counts gameplay events through OpenTelemetry metrics.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "chosenoffset.com/spacetaxi/internal/telemetry"

// Metrics holds the gameplay counters.
type Metrics struct {
	deliveries metric.Int64Counter
	crashes    metric.Int64Counter
	strikes    metric.Int64Counter
	fines      metric.Int64Counter
	refuels    metric.Int64Counter
	livesLost  metric.Int64Counter
}

// New creates the counters on provider. A nil provider uses the global one.
func New(provider metric.MeterProvider) (*Metrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	m := provider.Meter(instrumentationName)

	var (
		mt  Metrics
		err error
	)
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&mt.deliveries, "spacetaxi.deliveries", "Astronauts delivered to their destination"},
		{&mt.crashes, "spacetaxi.crashes", "Taxi crashes, including fuel exhaustion"},
		{&mt.strikes, "spacetaxi.strikes", "Astronauts struck by the taxi"},
		{&mt.fines, "spacetaxi.fines", "Fines levied for clipping a dropped-off astronaut"},
		{&mt.refuels, "spacetaxi.refuel_ticks", "Ticks spent refuelling at a pump"},
		{&mt.livesLost, "spacetaxi.lives_lost", "Lives lost"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
	}
	return &mt, nil
}

// Nop returns metrics that record nothing.
func Nop() *Metrics {
	m, _ := New(noop.NewMeterProvider())
	return m
}

func levelAttr(level int) metric.AddOption {
	return metric.WithAttributes(attribute.Int("level", level))
}

// Delivered records a completed trip.
func (m *Metrics) Delivered(level int) {
	m.deliveries.Add(context.Background(), 1, levelAttr(level))
}

// Crashed records a taxi crash.
func (m *Metrics) Crashed(level int) {
	m.crashes.Add(context.Background(), 1, levelAttr(level))
}

// Struck records an astronaut strike.
func (m *Metrics) Struck(level int) {
	m.strikes.Add(context.Background(), 1, levelAttr(level))
}

// Fined records a clipping fine.
func (m *Metrics) Fined(level int) {
	m.fines.Add(context.Background(), 1, levelAttr(level))
}

// Refuelled records one refuelling tick.
func (m *Metrics) Refuelled(level int) {
	m.refuels.Add(context.Background(), 1, levelAttr(level))
}

// LifeLost records a lost life.
func (m *Metrics) LifeLost(level int) {
	m.livesLost.Add(context.Background(), 1, levelAttr(level))
}
