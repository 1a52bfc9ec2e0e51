package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawRecordsBallThenPaddle(t *testing.T) {
	cfg := DefaultConfig()
	var rec Recorder
	Draw(&rec, cfg, NewState(cfg))

	ops := rec.Take()
	want := []DrawOp{
		{Op: "clearRect", Args: []float64{0, 0, 800, 600}},
		{Op: "beginPath"},
		{Op: "arc", Args: []float64{400, 570, 10, 0, math.Pi * 2}},
		{Op: "fillStyle", Style: "#ef4444"},
		{Op: "fill"},
		{Op: "closePath"},
		{Op: "beginPath"},
		{Op: "rect", Args: []float64{362.5, 590, 75, 10}},
		{Op: "fillStyle", Style: "#1e293b"},
		{Op: "fill"},
		{Op: "closePath"},
	}
	require.Equal(t, want, ops)
	assert.Empty(t, rec.Ops())
}
