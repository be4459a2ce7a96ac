package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/service/audio"
	"github.com/minutia-lab/minutia/pkg/service/chunker"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
	"github.com/minutia-lab/minutia/pkg/utils/safe"
)

// ProcessInput describes one media file to run through the pipeline.
// MeetingID, Title and Date are optional; missing values are derived from
// the file name and the current date. SourceName carries the original file
// name when MediaPath points at a temporary copy (e.g. an HTTP upload) so
// that the default title stays meaningful.
type ProcessInput struct {
	MediaPath  string
	SourceName string
	MeetingID  types.MeetingID
	Title      string
	Date       string
	Language   string
}

func (x *ProcessInput) fillDefaults() {
	if x.MeetingID == "" {
		x.MeetingID = types.NewMeetingID()
	}
	if x.Title == "" {
		name := x.SourceName
		if name == "" {
			name = x.MediaPath
		}
		base := filepath.Base(name)
		x.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if x.Date == "" {
		x.Date = time.Now().Format("2006-01-02")
	}
}

// Process runs the full pipeline for one media file: audio extraction (when
// the input is not already audio), transcription, summarization, chunking
// and indexing. Nothing is indexed unless every stage succeeds.
func (uc *UseCases) Process(ctx context.Context, input ProcessInput) (*model.ProcessResult, error) {
	if strings.TrimSpace(input.MediaPath) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "media path is required")
	}
	if _, err := os.Stat(input.MediaPath); err != nil {
		return nil, goerr.Wrap(model.ErrNotFound, "media file not found", goerr.V("path", input.MediaPath))
	}

	input.fillDefaults()
	if err := input.MeetingID.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidInput, "invalid meeting ID", goerr.V("cause", err.Error()))
	}

	logger := logging.From(ctx)
	logger.Info("pipeline started",
		"meetingID", input.MeetingID, "title", input.Title, "path", input.MediaPath)

	transcript, err := uc.transcribeMedia(ctx, input)
	if err != nil {
		return nil, err
	}

	summaryContext := fmt.Sprintf("Meeting: %s, Date: %s", input.Title, input.Date)
	summary, err := uc.summarizer.Summarize(ctx, transcript.Text, summaryContext)
	if err != nil {
		return nil, goerr.Wrap(err, "summarization stage failed", goerr.V("meetingID", input.MeetingID))
	}

	chunks, err := chunker.Split(transcript.Text, uc.chunkSize, uc.overlap)
	if err != nil {
		return nil, goerr.Wrap(err, "chunking stage failed", goerr.V("meetingID", input.MeetingID))
	}

	ref := &model.MeetingRef{ID: input.MeetingID, Title: input.Title, Date: input.Date}
	stored, err := uc.meetingIndex.AddMeeting(ctx, ref, chunks)
	if err != nil {
		return nil, goerr.Wrap(err, "indexing stage failed", goerr.V("meetingID", input.MeetingID))
	}

	logger.Info("pipeline complete", "meetingID", input.MeetingID, "chunks", stored)

	return &model.ProcessResult{
		MeetingID:    input.MeetingID,
		Title:        input.Title,
		Date:         input.Date,
		Transcript:   transcript.Text,
		Summary:      *summary,
		ChunksStored: stored,
	}, nil
}

// transcribeMedia extracts audio when needed and transcribes it. An
// extracted intermediate file is removed on every exit path.
func (uc *UseCases) transcribeMedia(ctx context.Context, input ProcessInput) (*model.Transcript, error) {
	audioPath := input.MediaPath

	if !audio.IsAudioFile(input.MediaPath) {
		extracted, err := uc.extractor.Extract(ctx, input.MediaPath)
		if err != nil {
			return nil, goerr.Wrap(err, "extraction stage failed", goerr.V("meetingID", input.MeetingID))
		}
		defer safe.Remove(ctx, extracted)
		audioPath = extracted
	}

	transcript, err := uc.transcriber.Transcribe(ctx, audioPath, input.Language)
	if err != nil {
		return nil, goerr.Wrap(err, "transcription stage failed", goerr.V("meetingID", input.MeetingID))
	}

	return transcript, nil
}
