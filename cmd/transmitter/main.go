package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"Soundmodem/cmd/transmitter/config"
	"Soundmodem/pkg/async"
	"Soundmodem/pkg/iface"
	"Soundmodem/pkg/transmitter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config", "c", "config.yml", "path to the configuration file")
	mode := pflag.StringP("mode", "m", "", "play through the audio device or save to a wav file (play|save)")
	output := pflag.StringP("output", "o", "", "wav file written in save mode")
	level := pflag.String("log-level", "", "log level (debug|info|warn|error)")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if errors.Is(err, os.ErrNotExist) && !pflag.CommandLine.Changed("config") {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Str("file", *configFile).Msg("loading config")
	}
	if *mode != "" {
		cfg.Transmission.Mode = *mode
	}
	if *output != "" {
		cfg.Transmission.OutputFile = *output
	}
	if *level != "" {
		cfg.Log.Level = *level
	}

	log, err := config.NewLogger(cfg)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("invalid configuration")
	}

	tx, err := config.CreateTransmitter(cfg, &log, prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal().Err(err).Msg("creating transmitter")
	}

	if cfg.Metrics.Address != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			log.Info().Str("address", cfg.Metrics.Address).Msg("serving metrics")
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources := config.CreateSources(cfg, &log)
	if len(sources) == 0 {
		log.Fatal().Msg("no message source enabled")
	}
	inputs := make([]<-chan iface.Message, len(sources))
	for i, source := range sources {
		if err := source.Open(); err != nil {
			log.Fatal().Err(err).Msg("opening message source")
		}
		defer source.Close()
		inputs[i] = source.Messages()
	}

	log.Info().Str("mode", cfg.Transmission.Mode).Msg("transmitter started, use ^C to exit")

	for msg := range async.Merge(ctx, inputs...) {
		log.Info().Str("source", msg.Source).Bytes("message", msg.Payload).Msg("processing message")
		if err := handle(tx, cfg, msg); err != nil {
			log.Error().Err(err).Str("source", msg.Source).Msg("transmission failed")
		}
	}

	log.Info().Msg("exiting")
}

func handle(tx *transmitter.Transmitter, cfg *config.Config, msg iface.Message) error {
	if cfg.Transmission.Mode == config.ModePlay {
		return tx.Send(msg.Payload, msg.Source)
	}
	return tx.Save(msg.Payload, msg.Source, cfg.Transmission.OutputFile)
}
