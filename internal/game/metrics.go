package game

import (
	"context"
	"math/big"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/profitpilgrim/internal/currency"
)

type metrics struct {
	commands metric.Int64Counter
	earned   metric.Float64Counter
}

func newMetrics(m metric.Meter) (*metrics, error) {
	commands, err := m.Int64Counter("game.commands",
		metric.WithDescription("Player commands by action and outcome"))
	if err != nil {
		return nil, err
	}
	earned, err := m.Float64Counter("game.earned",
		metric.WithDescription("Currency credited by ticks, approximate"))
	if err != nil {
		return nil, err
	}
	return &metrics{commands: commands, earned: earned}, nil
}

func (m *metrics) recordCommand(ctx context.Context, action Action, ok bool) {
	m.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action.String()),
		attribute.Bool("success", ok),
	))
}

func (m *metrics) recordEarned(ctx context.Context, source string, amount currency.Amount) {
	if amount.IsZero() {
		return
	}
	f, _ := new(big.Float).SetInt(amount.Big()).Float64()
	m.earned.Add(ctx, f, metric.WithAttributes(attribute.String("source", source)))
}
