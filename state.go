package control4amp

import "sync"

// tracker remembers the last commanded value per output. The protocol
// cannot confirm state on the datagram dialect, so these values reflect
// what the driver last attempted, not necessarily what the device did.
type tracker struct {
	mu      sync.Mutex
	outputs map[int]*outputState
}

type outputState struct {
	power       bool
	powerKnown  bool
	volume      int
	volumeKnown bool
	source      int
	sourceKnown bool
}

func newTracker() *tracker {
	return &tracker{outputs: map[int]*outputState{}}
}

// get returns the state record for an output. Callers must hold the lock.
func (t *tracker) get(output int) *outputState {
	state, found := t.outputs[output]
	if !found {
		state = &outputState{}
		t.outputs[output] = state
	}
	return state
}

func (t *tracker) recordPower(output int, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.get(output)
	state.power = on
	state.powerKnown = true
}

func (t *tracker) recordVolume(output int, level int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.get(output)
	state.volume = level
	state.volumeKnown = true
}

func (t *tracker) recordSource(output int, input int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.get(output)
	state.source = input
	state.sourceKnown = true
}

func (t *tracker) powerOf(output int) (on bool, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.get(output)
	return state.power, state.powerKnown
}

func (t *tracker) volumeOf(output int) (level int, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.get(output)
	return state.volume, state.volumeKnown
}

func (t *tracker) sourceOf(output int) (input int, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state := t.get(output)
	return state.source, state.sourceKnown
}
