package config

import (
	"fmt"
	"os"
	"time"

	"Soundmodem/pkg/device"
	"Soundmodem/pkg/iface"
	"Soundmodem/pkg/transmitter"
	"Soundmodem/pkg/wavfile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	ModePlay = "play"
	ModeSave = "save"
)

type Config struct {
	Modem struct {
		ToneDuration       float64 `yaml:"tone_duration"`
		DurationMultiplier float64 `yaml:"duration_multiplier"`
		ToneHigh           float64 `yaml:"tone_high"`
		ToneLow            float64 `yaml:"tone_low"`
		SampleRate         float64 `yaml:"sample_rate"`
	} `yaml:"modem"`

	Transmission struct {
		Pause              time.Duration `yaml:"inter_transmission_pause"`
		Repetitions        int           `yaml:"packet_repetitions"`
		TransmitterAddress string        `yaml:"transmitter_address"`
		Mode               string        `yaml:"mode"`
		OutputFile         string        `yaml:"output_file"`
	} `yaml:"transmission"`

	Device struct {
		Driver      string  `yaml:"driver"`
		DeviceName  string  `yaml:"device_name"`
		DeviceIndex int     `yaml:"device_index"`
		OutChannel  int     `yaml:"out_channel"`
		Amplitude   float64 `yaml:"amplitude"`
	} `yaml:"device"`

	Listener struct {
		Enabled        bool          `yaml:"enabled"`
		Address        string        `yaml:"address"`
		MaxMessageSize int           `yaml:"max_message_size"`
		ReadTimeout    time.Duration `yaml:"read_timeout"`
	} `yaml:"listener"`

	TUN struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"tun"`

	Metrics struct {
		Address string `yaml:"address"`
	} `yaml:"metrics"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func Default() *Config {
	var config Config
	core := transmitter.DefaultConfig()

	config.Modem.ToneDuration = core.BitDuration
	config.Modem.DurationMultiplier = core.DurationMultiplier
	config.Modem.ToneHigh = core.HighFreq
	config.Modem.ToneLow = core.LowFreq
	config.Modem.SampleRate = core.SampleRate

	config.Transmission.Pause = core.Pause
	config.Transmission.Repetitions = core.Redundancy
	config.Transmission.TransmitterAddress = core.TransmitterAddress
	config.Transmission.Mode = ModeSave
	config.Transmission.OutputFile = "multi_transmission.wav"

	config.Device.Driver = "portaudio"
	config.Device.DeviceIndex = -1

	config.Listener.Enabled = true
	config.Listener.Address = iface.DefaultListenAddress
	config.Listener.MaxMessageSize = iface.DefaultMaxMessageSize

	config.Log.Level = "info"
	return &config
}

// LoadConfig reads filename on top of Default. The result is not validated,
// so command-line overrides can still be applied before Validate.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Transmission.Mode {
	case ModePlay, ModeSave:
	default:
		return fmt.Errorf("unknown mode %q (expected %s or %s)", c.Transmission.Mode, ModePlay, ModeSave)
	}
	if c.Transmission.Mode == ModeSave && c.Transmission.OutputFile == "" {
		return fmt.Errorf("mode %s needs an output_file", ModeSave)
	}
	return c.Core().Validate()
}

func (c *Config) Core() transmitter.Config {
	return transmitter.Config{
		BitDuration:        c.Modem.ToneDuration,
		DurationMultiplier: c.Modem.DurationMultiplier,
		HighFreq:           c.Modem.ToneHigh,
		LowFreq:            c.Modem.ToneLow,
		SampleRate:         c.Modem.SampleRate,
		Pause:              c.Transmission.Pause,
		Redundancy:         c.Transmission.Repetitions,
		TransmitterAddress: c.Transmission.TransmitterAddress,
	}
}

func NewLogger(config *Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(config.Log.Level)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().
		Timestamp().
		Caller().
		Logger().Level(level), nil
}

func CreateAudioSink(config *Config) (*device.Output, error) {
	var dev device.Device
	switch config.Device.Driver {
	case "loopback":
		dev = &device.Loopback{Realtime: true}
	case "asio":
		dev = &device.ASIOMono{
			DeviceName: config.Device.DeviceName,
			OutChannel: config.Device.OutChannel,
		}
	case "portaudio":
		dev = &device.PortAudio{DeviceIndex: config.Device.DeviceIndex}
	default:
		return nil, fmt.Errorf("unknown audio driver %q", config.Device.Driver)
	}
	return &device.Output{Device: dev, Amplitude: config.Device.Amplitude}, nil
}

func CreateTransmitter(config *Config, log *zerolog.Logger, reg prometheus.Registerer) (*transmitter.Transmitter, error) {
	opts := []transmitter.Option{
		transmitter.WithLogger(log),
		transmitter.WithFileSink(wavfile.Writer{}),
	}
	if config.Transmission.Mode == ModePlay {
		sink, err := CreateAudioSink(config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transmitter.WithAudioSink(sink))
	}
	if reg != nil {
		opts = append(opts, transmitter.WithMetrics(transmitter.NewMetrics(reg)))
	}
	return transmitter.New(config.Core(), opts...)
}

func CreateSources(config *Config, log *zerolog.Logger) []iface.Source {
	var sources []iface.Source
	if config.Listener.Enabled {
		sources = append(sources, &iface.TCPListener{
			Address:        config.Listener.Address,
			MaxMessageSize: config.Listener.MaxMessageSize,
			ReadTimeout:    config.Listener.ReadTimeout,
			Log:            log,
		})
	}
	if config.TUN.Enabled {
		sources = append(sources, &iface.TUN{Log: log})
	}
	return sources
}
