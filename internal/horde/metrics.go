package horde

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/vovakirdan/horde/internal/horde"

// Metrics counts gameplay events.
type Metrics struct {
	spawned metric.Int64Counter
	fired   metric.Int64Counter
	hits    metric.Int64Counter
	kills   metric.Int64Counter
	waves   metric.Int64Counter
	deaths  metric.Int64Counter
}

// NewMetrics registers the gameplay counters on mp. A nil mp uses the
// global provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	m := mp.Meter(instrumentationName)
	var (
		mt  Metrics
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&mt.spawned, "horde.enemies.spawned", "Enemies spawned"},
		{&mt.fired, "horde.projectiles.fired", "Projectiles fired"},
		{&mt.hits, "horde.projectiles.hits", "Projectile hits on enemies"},
		{&mt.kills, "horde.enemies.killed", "Enemies killed"},
		{&mt.waves, "horde.waves.completed", "Waves completed"},
		{&mt.deaths, "horde.player.deaths", "Sessions ended by player death"},
	}
	for _, c := range counters {
		*c.dst, err = m.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("create %s counter: %w", c.name, err)
		}
	}
	return &mt, nil
}

// Record adds one tick's counters. A nil receiver is a no-op.
func (m *Metrics) Record(ctx context.Context, res StepResult, wave int) {
	if m == nil || !res.Advanced {
		return
	}
	attrs := metric.WithAttributes(attribute.Int("wave", wave))

	add := func(c metric.Int64Counter, n int) {
		if n > 0 {
			c.Add(ctx, int64(n), attrs)
		}
	}
	add(m.spawned, res.Spawned)
	add(m.fired, res.Fired)
	add(m.hits, res.Hits)
	add(m.kills, res.Kills)
	if res.WaveComplete {
		m.waves.Add(ctx, 1, attrs)
	}
	if res.Died {
		m.deaths.Add(ctx, 1, attrs)
	}
}
