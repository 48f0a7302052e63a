package control4amp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DialectStream   = "stream"
	DialectDatagram = "datagram"

	DefaultStreamPort   = 4999
	DefaultDatagramPort = 8750
	DefaultName         = "Control4 Matrix Amp"
	DefaultNumInputs    = 6
	DefaultNumOutputs   = 16
)

// Config describes one amplifier endpoint. Zero fields fall back to the
// defaults above; Host may be empty only when SerialPort is set.
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port,omitempty"`
	SerialPort string `yaml:"serial_port,omitempty"`
	Dialect    string `yaml:"dialect,omitempty"`
	Name       string `yaml:"name,omitempty"`
	NumInputs  int    `yaml:"num_inputs,omitempty"`
	NumOutputs int    `yaml:"num_outputs,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Dialect:    DialectStream,
		Name:       DefaultName,
		NumInputs:  DefaultNumInputs,
		NumOutputs: DefaultNumOutputs,
	}
}

// LoadConfig loads configuration from file, returning defaults when the
// file does not exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.dialect() {
	case DialectStream, DialectDatagram:
	default:
		return fmt.Errorf("unknown dialect %q", c.Dialect)
	}
	if c.Host == "" && c.SerialPort == "" {
		return fmt.Errorf("host is required")
	}
	if c.SerialPort != "" && c.dialect() != DialectStream {
		return fmt.Errorf("serial_port is only valid with the stream dialect")
	}
	if n := c.numInputs(); n < 1 || n > 16 {
		return fmt.Errorf("num_inputs %d out of range [1, 16]", n)
	}
	if n := c.numOutputs(); n < 1 || n > 16 {
		return fmt.Errorf("num_outputs %d out of range [1, 16]", n)
	}
	return nil
}

func (c *Config) dialect() string {
	if c.Dialect == "" {
		return DialectStream
	}
	return c.Dialect
}

func (c *Config) port() int {
	if c.Port != 0 {
		return c.Port
	}
	if c.dialect() == DialectDatagram {
		return DefaultDatagramPort
	}
	return DefaultStreamPort
}

func (c *Config) name() string {
	if c.Name == "" {
		return DefaultName
	}
	return c.Name
}

func (c *Config) numInputs() int {
	if c.NumInputs == 0 {
		return DefaultNumInputs
	}
	return c.NumInputs
}

func (c *Config) numOutputs() int {
	if c.NumOutputs == 0 {
		return DefaultNumOutputs
	}
	return c.NumOutputs
}
