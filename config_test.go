package control4amp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, (&Config{Host: "amp.local"}).Validate())

	assert.Equal(t, DialectStream, cfg.dialect())
	assert.Equal(t, DefaultStreamPort, cfg.port())
	assert.Equal(t, DefaultName, cfg.name())
	assert.Equal(t, DefaultNumInputs, cfg.numInputs())
	assert.Equal(t, DefaultNumOutputs, cfg.numOutputs())
}

func TestConfigPortDefaultsPerDialect(t *testing.T) {
	assert.Equal(t, DefaultStreamPort, (&Config{Host: "a"}).port())
	assert.Equal(t, DefaultDatagramPort, (&Config{Host: "a", Dialect: DialectDatagram}).port())
	assert.Equal(t, 1234, (&Config{Host: "a", Port: 1234}).port())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"minimal", Config{Host: "amp.local"}, false},
		{"datagram", Config{Host: "amp.local", Dialect: DialectDatagram}, false},
		{"serial stream", Config{SerialPort: "/dev/ttyUSB0"}, false},
		{"missing host", Config{}, true},
		{"bad dialect", Config{Host: "amp.local", Dialect: "telnet"}, true},
		{"serial datagram", Config{SerialPort: "/dev/ttyUSB0", Dialect: DialectDatagram}, true},
		{"too many inputs", Config{Host: "amp.local", NumInputs: 17}, true},
		{"negative inputs", Config{Host: "amp.local", NumInputs: -1}, true},
		{"too many outputs", Config{Host: "amp.local", NumOutputs: 17}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
host: 10.0.0.5
port: 8750
dialect: datagram
name: Patio Amp
num_inputs: 4
num_outputs: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 8750, cfg.Port)
	assert.Equal(t, DialectDatagram, cfg.Dialect)
	assert.Equal(t, "Patio Amp", cfg.Name)
	assert.Equal(t, 4, cfg.NumInputs)
	assert.Equal(t, 8, cfg.NumOutputs)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
