// Package control4amp drives a Control4 matrix amplifier over its socket
// protocol. Many deployments speak a write-only datagram dialect, so zone
// state is tracked locally from the last commanded values and can drift
// from the real device until a stream-dialect refresh.
package control4amp

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOutput   = errors.New("invalid output")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidVolume   = errors.New("invalid volume")
	ErrInvalidResponse = errors.New("invalid response")
	ErrUnsupported     = errors.New("not supported by this dialect")
)

// Amplifier is the client for one physical matrix amp. All zones share its
// transport and its lock, so the device only ever sees one command at a
// time.
type Amplifier struct {
	name    string
	inputs  int
	outputs int
	dialect dialect
	state   *tracker
	zones   []*Zone

	verbose bool
	connect Connector
}

type Option func(*Amplifier)

func VerboseOption() Option {
	return func(amp *Amplifier) {
		amp.verbose = true
	}
}

// ConnectorOption substitutes the transport's dial function. Used for the
// stream dialect over a serial port and by tests.
func ConnectorOption(connect Connector) Option {
	return func(amp *Amplifier) {
		amp.connect = connect
	}
}

func New(cfg *Config, options ...Option) (*Amplifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	amp := &Amplifier{
		name:    cfg.name(),
		inputs:  cfg.numInputs(),
		outputs: cfg.numOutputs(),
		state:   newTracker(),
	}
	for _, option := range options {
		option(amp)
	}

	switch cfg.dialect() {
	case DialectStream:
		connect := amp.connect
		if connect == nil {
			connect = dialStream(cfg.Host, cfg.port())
		}
		amp.dialect = &streamDialect{client: &streamClient{connect: connect, verbose: amp.verbose}}
	case DialectDatagram:
		connect := amp.connect
		if connect == nil {
			connect = dialDatagram(cfg.Host, cfg.port())
		}
		amp.dialect = &datagramDialect{client: &datagramClient{connect: connect, verbose: amp.verbose}}
	}

	if amp.inputs > amp.dialect.maxInputs() {
		return nil, fmt.Errorf("%w: %s dialect supports at most %d inputs",
			ErrInvalidInput, cfg.dialect(), amp.dialect.maxInputs())
	}

	for id := 1; id <= amp.outputs; id++ {
		amp.zones = append(amp.zones, &Zone{id: id, amp: amp})
	}
	return amp, nil
}

func (amp *Amplifier) Name() string {
	return amp.name
}

func (amp *Amplifier) Zones() []*Zone {
	return amp.zones
}

// Zone returns the zone for an output, or nil if the output is out of
// range.
func (amp *Amplifier) Zone(id int) *Zone {
	if id < 1 || id > amp.outputs {
		return nil
	}
	return amp.zones[id-1]
}

// SourceLabels lists the selectable inputs as the host presents them.
func (amp *Amplifier) SourceLabels() []string {
	labels := make([]string, 0, amp.inputs)
	for i := 1; i <= amp.inputs; i++ {
		labels = append(labels, sourceLabel(i))
	}
	return labels
}

func (amp *Amplifier) Close() error {
	return amp.dialect.close()
}

func (amp *Amplifier) checkInput(input int) error {
	if input < 1 || input > amp.inputs {
		return fmt.Errorf("%w %d", ErrInvalidInput, input)
	}
	return nil
}
