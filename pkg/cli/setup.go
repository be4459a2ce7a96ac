package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/cli/config"
	"github.com/minutia-lab/minutia/pkg/service/audio"
	"github.com/minutia-lab/minutia/pkg/service/index"
	"github.com/minutia-lab/minutia/pkg/service/summary"
	"github.com/minutia-lab/minutia/pkg/usecase"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

// services bundles the configuration every pipeline-facing command needs
type services struct {
	gemini  config.Gemini
	whisper config.Whisper
	index   config.Index
	app     config.App
}

func (s *services) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, s.gemini.Flags()...)
	flags = append(flags, s.whisper.Flags()...)
	flags = append(flags, s.index.Flags()...)
	flags = append(flags, s.app.Flags()...)
	return flags
}

// build wires all services into a UseCases instance. The returned closer
// releases the chunk index backend.
func (s *services) build(ctx context.Context) (*usecase.UseCases, func(), error) {
	if err := s.app.Configure(); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load application config")
	}

	llmClient, err := s.gemini.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to configure LLM client")
	}

	transcriber, err := s.whisper.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to configure transcription client")
	}

	summarizer, err := summary.New(llmClient)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to configure summarizer")
	}

	store, err := s.index.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open chunk index")
	}
	closer := func() {
		if err := store.Close(); err != nil {
			logging.Default().Error("failed to close chunk index", "error", err.Error())
		}
	}

	meetingIndex, err := index.New(llmClient, store)
	if err != nil {
		closer()
		return nil, nil, goerr.Wrap(err, "failed to configure meeting index")
	}

	extractor := audio.New(
		audio.WithFFmpegPath(s.app.Ffmpeg.Path),
		audio.WithTimeout(s.app.FfmpegTimeout()),
	)

	uc := usecase.New(extractor, transcriber, summarizer, meetingIndex, llmClient,
		usecase.WithChunking(s.app.Pipeline.ChunkSize, s.app.Pipeline.Overlap),
		usecase.WithContextLimit(s.app.Pipeline.ContextLimit),
		usecase.WithAnswerModel(s.gemini.AnswerModel()),
	)

	logging.Default().LogAttrs(ctx, slog.LevelInfo, "Services configured",
		slog.Attr{Key: "gemini", Value: slog.GroupValue(s.gemini.LogAttrs()...)},
		slog.Attr{Key: "whisper", Value: slog.GroupValue(s.whisper.LogAttrs()...)},
		slog.Attr{Key: "index", Value: slog.GroupValue(s.index.LogAttrs()...)},
		slog.Attr{Key: "app", Value: slog.GroupValue(s.app.LogAttrs()...)},
	)

	return uc, closer, nil
}
