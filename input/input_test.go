package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAction_String(t *testing.T) {
	assert.Equal(t, "MOVE_FORWARD", MoveForward.String())
	assert.Equal(t, "JUMP", Jump.String())
	assert.Equal(t, "UNKNOWN", Action(-1).String())
	assert.Equal(t, "UNKNOWN", actionCount.String())
}

func TestParseAction(t *testing.T) {
	for _, action := range Actions() {
		parsed, ok := ParseAction(action.String())
		assert.True(t, ok, action.String())
		assert.Equal(t, action, parsed)
	}

	_, ok := ParseAction("FLY_AWAY")
	assert.False(t, ok)
}

func TestState_Edges(t *testing.T) {
	var state State

	// Nothing is visible before the first Swap
	state.Set(Jump, true)
	assert.False(t, state.IsDown(Jump))

	state.Swap()
	assert.True(t, state.IsDown(Jump))
	assert.True(t, state.IsPressed(Jump))
	assert.False(t, state.IsReleased(Jump))

	// Held: down, but no longer pressed
	state.Swap()
	assert.True(t, state.IsDown(Jump))
	assert.False(t, state.IsPressed(Jump))

	state.Set(Jump, false)
	state.Swap()
	assert.False(t, state.IsDown(Jump))
	assert.True(t, state.IsReleased(Jump))

	state.Swap()
	assert.False(t, state.IsReleased(Jump))
}

func TestState_IndependentActions(t *testing.T) {
	var state State
	state.Set(MoveLeft, true)
	state.Swap()

	assert.True(t, state.IsDown(MoveLeft))
	assert.False(t, state.IsDown(MoveRight))
}

func TestState_OutOfRange(t *testing.T) {
	var state State
	state.Set(Action(99), true)
	state.Swap()

	assert.False(t, state.IsDown(Action(99)))
	assert.False(t, state.IsPressed(Action(-1)))
	assert.False(t, state.IsReleased(actionCount))
}

func TestNone(t *testing.T) {
	var source Source = None{}
	for _, action := range Actions() {
		assert.False(t, source.IsDown(action))
		assert.False(t, source.IsPressed(action))
	}
}
