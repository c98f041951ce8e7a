package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestTracersWithoutSetupDoNotRecord(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "noop")
	defer span.End()
	assert.False(t, span.IsRecording())

	_, span2 := NoopTracer().Start(context.Background(), "noop")
	defer span2.End()
	assert.False(t, span2.IsRecording())
}

func TestResourceAttributesDescribeBattle(t *testing.T) {
	attrs := resourceAttributes(BattleInfo{Columns: 8, Rows: 4, Seed: 99, MaxTurns: 12})

	byKey := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, kv := range attrs {
		byKey[kv.Key] = kv.Value
	}

	assert.Equal(t, "battlecore", byKey["service.name"].AsString())
	assert.Equal(t, int64(8), byKey["battle.field.columns"].AsInt64())
	assert.Equal(t, int64(4), byKey["battle.field.rows"].AsInt64())
	assert.Equal(t, int64(99), byKey["battle.seed"].AsInt64())
	assert.Equal(t, int64(12), byKey["battle.max_turns"].AsInt64())
}
