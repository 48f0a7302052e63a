package control4amp

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
)

// Zone is one amplifier output. Zones are cheap handles onto the shared
// Amplifier; state reads come from the local tracker and may lag the real
// device on the datagram dialect.
type Zone struct {
	id  int
	amp *Amplifier
}

func (z *Zone) ID() int {
	return z.id
}

// TurnOn powers the output up on its last selected source, defaulting to
// input 1 when no source was ever selected.
func (z *Zone) TurnOn() error {
	source, known := z.amp.state.sourceOf(z.id)
	if !known {
		source = 1
	}
	if err := z.amp.dialect.powerOn(z.id, source); err != nil {
		return err
	}
	z.amp.state.recordPower(z.id, true)
	z.amp.state.recordSource(z.id, source)
	return nil
}

func (z *Zone) TurnOff() error {
	if err := z.amp.dialect.powerOff(z.id); err != nil {
		return err
	}
	z.amp.state.recordPower(z.id, false)
	return nil
}

// SetVolume sets the output level, 0-100.
func (z *Zone) SetVolume(level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("%w %d", ErrInvalidVolume, level)
	}
	if err := z.amp.dialect.setVolume(z.id, level); err != nil {
		return err
	}
	z.amp.state.recordVolume(z.id, level)
	return nil
}

// SetVolumeLevel is the host-facing form, 0.0-1.0.
func (z *Zone) SetVolumeLevel(level float64) error {
	if level < 0 || level > 1 {
		return fmt.Errorf("%w %v", ErrInvalidVolume, level)
	}
	return z.SetVolume(int(math.Round(level * 100)))
}

// SelectSource routes an input to this output. Power state is left alone;
// routing does not imply turning the zone on.
func (z *Zone) SelectSource(input int) error {
	if err := z.amp.checkInput(input); err != nil {
		return err
	}
	if err := z.amp.dialect.route(z.id, input); err != nil {
		return err
	}
	z.amp.state.recordSource(z.id, input)
	return nil
}

// SelectSourceLabel resolves a label like "Input 3" and routes it.
func (z *Zone) SelectSourceLabel(label string) error {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return fmt.Errorf("%w %q", ErrInvalidInput, label)
	}
	input, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return fmt.Errorf("%w %q", ErrInvalidInput, label)
	}
	return z.SelectSource(input)
}

func (z *Zone) Power() (on bool, known bool) {
	return z.amp.state.powerOf(z.id)
}

func (z *Zone) Volume() (level int, known bool) {
	return z.amp.state.volumeOf(z.id)
}

func (z *Zone) VolumeLevel() (level float64, known bool) {
	v, known := z.amp.state.volumeOf(z.id)
	return float64(v) / 100, known
}

func (z *Zone) Source() (input int, known bool) {
	return z.amp.state.sourceOf(z.id)
}

func (z *Zone) SourceLabel() (label string, known bool) {
	input, known := z.amp.state.sourceOf(z.id)
	if !known {
		return "", false
	}
	return sourceLabel(input), true
}

// Available reports whether commands can be attempted. Silence on the
// datagram dialect is expected device behavior, so a single timeout never
// marks the zone unavailable.
func (z *Zone) Available() bool {
	return true
}

// Refresh re-reads this zone's state from the device and overwrites the
// tracker. Only the stream dialect can ask; the datagram dialect returns
// ErrUnsupported and leaves tracked state untouched. A malformed reply to
// one query is logged and skipped without aborting the others.
func (z *Zone) Refresh() error {
	source, err := z.amp.dialect.querySource(z.id)
	switch {
	case err == nil:
		z.amp.state.recordSource(z.id, source)
	case errors.Is(err, ErrInvalidResponse):
		log.Printf("Zone %d: %v", z.id, err)
	default:
		return err
	}

	volume, err := z.amp.dialect.queryVolume(z.id)
	switch {
	case err == nil:
		z.amp.state.recordVolume(z.id, volume)
	case errors.Is(err, ErrInvalidResponse):
		log.Printf("Zone %d: %v", z.id, err)
	default:
		return err
	}

	power, err := z.amp.dialect.queryPower(z.id)
	switch {
	case err == nil:
		z.amp.state.recordPower(z.id, power)
	case errors.Is(err, ErrInvalidResponse):
		log.Printf("Zone %d: %v", z.id, err)
	default:
		return err
	}
	return nil
}

func sourceLabel(input int) string {
	return fmt.Sprintf("Input %d", input)
}
