package control4amp

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Command is a verb in the stream (text) dialect.
type Command string

var (
	Route    Command = "ROUTE"
	SetVol   Command = "SETVOL"
	GetRoute Command = "GETROUTE"
	GetVol   Command = "GETVOL"
	PowerOn  Command = "POWERON"
	PowerOff Command = "POWEROFF"
	GetPower Command = "GETPOWER"
)

func encodeStream(cmd Command, args ...int) string {
	builder := &strings.Builder{}
	builder.WriteString(string(cmd))
	for _, arg := range args {
		builder.WriteString(" ")
		builder.WriteString(strconv.Itoa(arg))
	}
	return builder.String()
}

// Datagram dialect constants. The counter prefix and the volume offset come
// from observed traffic; the amp does not publish this protocol.
const (
	counterPrefix = "0sgh"
	volumeOffset  = 160
)

// wrapDatagram frames a payload for the wire: counter token, payload, a
// literal trailing space, then CRLF. The two counter digits are random and
// never checked against replies.
func wrapDatagram(payload string) string {
	return fmt.Sprintf("%s%02d %s \r\n", counterPrefix, rand.Intn(100), payload)
}

// encodeOut routes an input to an output and powers the output on. The
// input must fit a single hex digit (1-15).
func encodeOut(output int, input int) string {
	return fmt.Sprintf("c4.amp.out %02d 0%x", output, input)
}

// encodeOutOff powers an output down.
func encodeOutOff(output int) string {
	return fmt.Sprintf("c4.amp.out %02d 00", output)
}

// encodeChVol sets an output's volume. The level (0-100) is offset by 160
// before hex conversion, e.g. 50 -> 210 -> "d2".
func encodeChVol(output int, level int) string {
	return fmt.Sprintf("c4.amp.chvol %02d %x", output, level+volumeOffset)
}
