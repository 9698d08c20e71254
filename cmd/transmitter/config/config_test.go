package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"Soundmodem/pkg/device"
	"Soundmodem/pkg/iface"
	"Soundmodem/pkg/layers"
	"Soundmodem/pkg/transmitter"

	"github.com/prometheus/client_golang/prometheus"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestDefaultMatchesCore(t *testing.T) {
	config := Default()
	if config.Core() != transmitter.DefaultConfig() {
		t.Errorf("expected %+v, got %+v", transmitter.DefaultConfig(), config.Core())
	}
	if err := config.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoadConfig(t *testing.T) {
	filename := writeConfig(t, `
modem:
  tone_duration: 0.02
  tone_high: 4000
transmission:
  inter_transmission_pause: 2s
  packet_repetitions: 3
  mode: play
device:
  driver: loopback
listener:
  address: 127.0.0.1:0
tun:
  enabled: true
`)

	config, err := LoadConfig(filename)
	if err != nil {
		t.Fatal(err)
	}

	core := config.Core()
	if core.BitDuration != 0.02 || core.HighFreq != 4000 || core.Redundancy != 3 {
		t.Errorf("unexpected core config %+v", core)
	}
	if core.Pause != 2*time.Second {
		t.Errorf("expected a 2s pause, got %v", core.Pause)
	}
	// untouched keys keep their defaults
	if core.SampleRate != 44100 || core.DurationMultiplier != 3 || core.TransmitterAddress != "192.168.0.1" {
		t.Errorf("defaults were lost: %+v", core)
	}
	if config.Listener.MaxMessageSize != iface.DefaultMaxMessageSize {
		t.Errorf("expected default message size, got %d", config.Listener.MaxMessageSize)
	}

	sources := CreateSources(config, nil)
	if len(sources) != 2 {
		t.Fatalf("expected listener and TUN sources, got %d", len(sources))
	}
	if _, ok := sources[0].(*iface.TCPListener); !ok {
		t.Errorf("expected a TCP listener first, got %T", sources[0])
	}

	tx, err := CreateTransmitter(config, nil, prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if tx.Config() != core {
		t.Errorf("transmitter config differs from the file")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected error
	}{
		{"bad mode", "transmission:\n  mode: stream\n", nil},
		{"too many repetitions", "transmission:\n  packet_repetitions: 300\n", layers.ErrSequenceOverflow},
		{"bad address", "transmission:\n  transmitter_address: 1.2.3\n", layers.ErrAddressFormat},
		{"bad yaml", "modem: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				err = config.Validate()
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.expected != nil && !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestCreateAudioSink(t *testing.T) {
	config := Default()

	for driver, expected := range map[string]any{
		"loopback":  &device.Loopback{},
		"asio":      &device.ASIOMono{},
		"portaudio": &device.PortAudio{},
	} {
		config.Device.Driver = driver
		sink, err := CreateAudioSink(config)
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if got, want := reflect.TypeOf(sink.Device), reflect.TypeOf(expected); got != want {
			t.Errorf("%s: expected %v, got %v", driver, want, got)
		}
	}

	config.Device.Driver = "alsa"
	if _, err := CreateAudioSink(config); err == nil {
		t.Error("expected an error for an unknown driver")
	}
}

func TestNewLogger(t *testing.T) {
	config := Default()
	config.Log.Level = "debug"
	if _, err := NewLogger(config); err != nil {
		t.Error(err)
	}
	config.Log.Level = "loud"
	if _, err := NewLogger(config); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestLoadConfigLeavesValidationToCaller(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "transmission:\n  mode: save\n  output_file: \"\"\n"))
	if err != nil {
		t.Fatalf("expected the file to load, got %v", err)
	}
	if err := config.Validate(); err == nil {
		t.Error("expected save mode without an output file to be invalid")
	}

	config.Transmission.OutputFile = "out.wav"
	if err := config.Validate(); err != nil {
		t.Errorf("expected the overridden config to be valid, got %v", err)
	}
}
