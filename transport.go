package control4amp

import (
	"bufio"
	"io"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	connectTimeout  = 10 * time.Second
	streamTimeout   = 5 * time.Second
	datagramTimeout = 3 * time.Second
)

// Connector opens the wire to the amplifier. The default connectors dial
// TCP or UDP from the configured endpoint; tests and serial deployments
// substitute their own.
type Connector func() (io.ReadWriteCloser, error)

// deadlineConn is satisfied by net.Conn; serial ports handle timeouts at
// open time instead.
type deadlineConn interface {
	SetReadDeadline(t time.Time) error
}

func dialStream(host string, port int) Connector {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	return func() (io.ReadWriteCloser, error) {
		return net.DialTimeout("tcp", addr, connectTimeout)
	}
}

func dialDatagram(host string, port int) Connector {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	return func() (io.ReadWriteCloser, error) {
		return net.Dial("udp", addr)
	}
}

// streamClient owns one persistent connection. Connect is lazy, access is
// serialized, and any I/O failure tears the connection down so the next
// command dials fresh.
type streamClient struct {
	mu       sync.Mutex
	connect  Connector
	conn     io.ReadWriteCloser
	reader   *bufio.Reader
	connects int
	verbose  bool
}

func (c *streamClient) execute(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, err := c.connect()
		if err != nil {
			log.Printf("Connect failed: %v", err)
			return "", err
		}
		c.conn = conn
		c.reader = bufio.NewReader(conn)
		c.connects++
	}

	if c.verbose {
		log.Printf("TX %s", cmd)
	}
	if _, err := io.WriteString(c.conn, cmd+"\r\n"); err != nil {
		log.Printf("Write failed, dropping connection: %v", err)
		c.teardown()
		return "", err
	}

	if conn, ok := c.conn.(deadlineConn); ok {
		conn.SetReadDeadline(time.Now().Add(streamTimeout))
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		log.Printf("Read failed, dropping connection: %v", err)
		c.teardown()
		return "", err
	}
	line = strings.TrimSpace(line)
	if c.verbose {
		log.Printf("RX %s", line)
	}
	return line, nil
}

// teardown releases the connection. Callers must hold the lock.
func (c *streamClient) teardown() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
		c.reader = nil
	}
}

func (c *streamClient) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown()
	return nil
}

// datagramClient opens a fresh socket per command. A fresh socket avoids
// carrying a stale error state between commands; the socket is closed on
// every exit path. Silence from the device is normal, not a failure.
type datagramClient struct {
	mu      sync.Mutex
	connect Connector
	verbose bool
}

func (c *datagramClient) execute(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.connect()
	if err != nil {
		log.Printf("Socket open failed: %v", err)
		return "", err
	}
	defer conn.Close()

	if c.verbose {
		log.Printf("TX %q", cmd)
	}
	if _, err := io.WriteString(conn, cmd); err != nil {
		log.Printf("Send failed: %v", err)
		return "", err
	}

	if conn, ok := conn.(deadlineConn); ok {
		conn.SetReadDeadline(time.Now().Add(datagramTimeout))
	}
	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	if err != nil {
		// Most of these amps never acknowledge; no reply within the
		// deadline counts as accepted.
		return "", nil
	}
	resp := strings.TrimSpace(string(buf[:n]))
	if c.verbose {
		log.Printf("RX %s", resp)
	}
	return resp, nil
}
