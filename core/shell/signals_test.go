package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleForegroundOnly(t *testing.T) {
	bridge := &SignalBridge{}
	assert.False(t, bridge.ForegroundOnly())

	notice, deferred := bridge.ToggleForegroundOnly()
	assert.Equal(t, enterForegroundOnlyNotice, notice)
	assert.False(t, deferred)
	assert.True(t, bridge.ForegroundOnly())

	notice, deferred = bridge.ToggleForegroundOnly()
	assert.Equal(t, exitForegroundOnlyNotice, notice)
	assert.False(t, deferred)
	assert.False(t, bridge.ForegroundOnly())
}

func TestToggleDeferredWhileWaiting(t *testing.T) {
	bridge := &SignalBridge{}
	bridge.SetWaiting(true)

	notice, deferred := bridge.ToggleForegroundOnly()
	assert.Equal(t, enterForegroundOnlyNotice, notice)
	assert.True(t, deferred)

	// The deferred notice is held until the main loop takes it.
	taken, ok := bridge.TakeNotice()
	assert.True(t, ok)
	assert.Equal(t, enterForegroundOnlyNotice, taken)

	_, ok = bridge.TakeNotice()
	assert.False(t, ok)
}

func TestTakeNoticeWithoutToggle(t *testing.T) {
	bridge := &SignalBridge{}
	_, ok := bridge.TakeNotice()
	assert.False(t, ok)
}
