package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/service/chunker"
	"github.com/minutia-lab/minutia/pkg/usecase"
)

// App holds pipeline tuning, loaded from an optional TOML file
type App struct {
	configPath string

	Pipeline PipelineConfig `toml:"pipeline"`
	Ffmpeg   FfmpegConfig   `toml:"ffmpeg"`
}

// PipelineConfig tunes transcript chunking and retrieval depth
type PipelineConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	Overlap      int `toml:"overlap"`
	ContextLimit int `toml:"context_limit"`
}

// FfmpegConfig tunes the audio extraction stage
type FfmpegConfig struct {
	Path           string `toml:"path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Flags returns CLI flags for application configuration
func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML configuration file",
			Sources:     cli.EnvVars("MINUTIA_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// LogAttrs returns log attributes for the application configuration
func (x *App) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("config_path", x.configPath),
		slog.Int("chunk_size", x.Pipeline.ChunkSize),
		slog.Int("overlap", x.Pipeline.Overlap),
		slog.Int("context_limit", x.Pipeline.ContextLimit),
	}
}

// Configure loads the TOML file when one is given and fills defaults
func (x *App) Configure() error {
	x.Pipeline = PipelineConfig{
		ChunkSize:    chunker.DefaultChunkSize,
		Overlap:      chunker.DefaultOverlap,
		ContextLimit: usecase.DefaultContextLimit,
	}
	x.Ffmpeg = FfmpegConfig{
		Path:           "ffmpeg",
		TimeoutSeconds: 300,
	}

	if x.configPath != "" {
		if err := x.loadFile(x.configPath); err != nil {
			return err
		}
	}

	return x.validate()
}

func (x *App) loadFile(path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V("path", path))
		}
		return goerr.Wrap(err, "failed to open config file", goerr.V("path", path))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(x); err != nil {
		return goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	return nil
}

func (x *App) validate() error {
	p := x.Pipeline
	if p.ChunkSize < 1 {
		return goerr.Wrap(ErrInvalidConfig, "pipeline.chunk_size must be positive",
			goerr.V("chunk_size", p.ChunkSize))
	}
	if p.Overlap < 0 || p.Overlap >= p.ChunkSize {
		return goerr.Wrap(ErrInvalidConfig, "pipeline.overlap must be in [0, chunk_size)",
			goerr.V("overlap", p.Overlap), goerr.V("chunk_size", p.ChunkSize))
	}
	if p.ContextLimit < 1 || p.ContextLimit > 20 {
		return goerr.Wrap(ErrInvalidConfig, "pipeline.context_limit must be in [1, 20]",
			goerr.V("context_limit", p.ContextLimit))
	}
	if x.Ffmpeg.TimeoutSeconds < 1 {
		return goerr.Wrap(ErrInvalidConfig, "ffmpeg.timeout_seconds must be positive",
			goerr.V("timeout_seconds", x.Ffmpeg.TimeoutSeconds))
	}
	return nil
}

// FfmpegTimeout returns the extraction timeout as a duration
func (x *App) FfmpegTimeout() time.Duration {
	return time.Duration(x.Ffmpeg.TimeoutSeconds) * time.Second
}
