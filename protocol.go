package control4amp

import (
	"fmt"
	"strconv"
	"strings"
)

// dialect is the operation-level contract shared by the two wire protocol
// variants. Implementations encode, execute and (where the protocol allows)
// confirm a single command; they never touch tracked state.
type dialect interface {
	route(output int, input int) error
	setVolume(output int, level int) error
	powerOn(output int, input int) error
	powerOff(output int) error

	// Queries return ErrUnsupported on dialects that cannot ask.
	querySource(output int) (int, error)
	queryVolume(output int) (int, error)
	queryPower(output int) (bool, error)

	// maxInputs is the largest input index the wire encoding can carry.
	maxInputs() int
	close() error
}

// streamDialect speaks the CRLF text protocol over a persistent connection.
// Every command is confirmed by the device, so callers may treat a nil
// error as applied.
type streamDialect struct {
	client *streamClient
}

func (d *streamDialect) route(output int, input int) error {
	return d.confirm(encodeStream(Route, output, input))
}

func (d *streamDialect) setVolume(output int, level int) error {
	return d.confirm(encodeStream(SetVol, output, level))
}

func (d *streamDialect) powerOn(output int, input int) error {
	// POWERON carries no source operand; the facade records the source
	// it resolved so local state still converges.
	return d.confirm(encodeStream(PowerOn, output))
}

func (d *streamDialect) powerOff(output int) error {
	return d.confirm(encodeStream(PowerOff, output))
}

func (d *streamDialect) querySource(output int) (int, error) {
	resp, err := d.client.execute(encodeStream(GetRoute, output))
	if err != nil {
		return 0, err
	}
	return parseField(resp, "SOURCE")
}

func (d *streamDialect) queryVolume(output int) (int, error) {
	resp, err := d.client.execute(encodeStream(GetVol, output))
	if err != nil {
		return 0, err
	}
	return parseField(resp, "VOLUME")
}

func (d *streamDialect) queryPower(output int) (bool, error) {
	resp, err := d.client.execute(encodeStream(GetPower, output))
	if err != nil {
		return false, err
	}
	return parsePower(resp)
}

func (d *streamDialect) confirm(cmd string) error {
	resp, err := d.client.execute(cmd)
	if err != nil {
		return err
	}
	return parseOK(resp)
}

func (d *streamDialect) maxInputs() int { return 16 }

func (d *streamDialect) close() error { return d.client.close() }

// datagramDialect speaks the hex-encoded connectionless protocol. The
// device rarely acknowledges, so commands are fire-and-forget and queries
// do not exist; local tracking is the only source of truth.
type datagramDialect struct {
	client *datagramClient
}

func (d *datagramDialect) route(output int, input int) error {
	if input < 1 || input > d.maxInputs() {
		return fmt.Errorf("%w %d", ErrInvalidInput, input)
	}
	_, err := d.client.execute(wrapDatagram(encodeOut(output, input)))
	return err
}

func (d *datagramDialect) setVolume(output int, level int) error {
	_, err := d.client.execute(wrapDatagram(encodeChVol(output, level)))
	return err
}

// powerOn is the same wire command as route: assigning a source wakes the
// output.
func (d *datagramDialect) powerOn(output int, input int) error {
	return d.route(output, input)
}

func (d *datagramDialect) powerOff(output int) error {
	_, err := d.client.execute(wrapDatagram(encodeOutOff(output)))
	return err
}

func (d *datagramDialect) querySource(output int) (int, error) {
	return 0, ErrUnsupported
}

func (d *datagramDialect) queryVolume(output int) (int, error) {
	return 0, ErrUnsupported
}

func (d *datagramDialect) queryPower(output int) (bool, error) {
	return false, ErrUnsupported
}

func (d *datagramDialect) maxInputs() int { return 15 }

func (d *datagramDialect) close() error { return nil }

// parseOK accepts any reply containing OK.
func parseOK(resp string) error {
	if strings.Contains(resp, "OK") {
		return nil
	}
	return fmt.Errorf("%w %q", ErrInvalidResponse, resp)
}

// parseField reads a "<KEY> <n>" reply, e.g. "SOURCE 4" or "VOLUME 27".
func parseField(resp string, key string) (int, error) {
	fields := strings.Fields(resp)
	for i, field := range fields {
		if field == key && i+1 < len(fields) {
			value, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return 0, fmt.Errorf("%w %q", ErrInvalidResponse, resp)
			}
			return value, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidResponse, resp)
}

// parsePower reads a power state reply containing ON or OFF.
func parsePower(resp string) (bool, error) {
	for _, field := range strings.Fields(resp) {
		switch field {
		case "ON":
			return true, nil
		case "OFF":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w %q", ErrInvalidResponse, resp)
}
