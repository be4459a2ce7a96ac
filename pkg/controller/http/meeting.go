package http

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/usecase"
	"github.com/minutia-lab/minutia/pkg/utils/errutil"
	"github.com/minutia-lab/minutia/pkg/utils/safe"
)

// maxUploadBytes caps one multipart upload (512 MB covers long recordings)
const maxUploadBytes = 512 << 20

// handleProcess accepts a multipart media upload and runs the full pipeline.
// Form fields: file (required), meeting_id, title, date, language (optional).
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		errutil.HandleHTTP(ctx, w,
			goerr.Wrap(model.ErrInvalidInput, "invalid multipart form", goerr.V("cause", err.Error())),
			http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errutil.HandleHTTP(ctx, w,
			goerr.Wrap(model.ErrInvalidInput, "file field is required"),
			http.StatusBadRequest)
		return
	}
	defer safe.Close(ctx, file)

	// Keep the original extension so audio inputs skip extraction
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".wav"
	}

	tmp, err := os.CreateTemp("", "minutia-upload-*"+ext)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to create upload file"),
			http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer safe.Remove(ctx, tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		safe.Close(ctx, tmp)
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to store upload"),
			http.StatusInternalServerError)
		return
	}
	safe.Close(ctx, tmp)

	result, err := s.uc.Process(ctx, usecase.ProcessInput{
		MediaPath:  tmpPath,
		SourceName: header.Filename,
		MeetingID:  types.MeetingID(r.FormValue("meeting_id")),
		Title:      r.FormValue("title"),
		Date:       r.FormValue("date"),
		Language:   r.FormValue("language"),
	})
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, errutil.StatusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	refs, err := s.uc.ListMeetings(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusOf(err))
		return
	}
	respondJSON(w, http.StatusOK, refs)
}

func (s *Server) handleDeleteMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID := types.MeetingID(chi.URLParam(r, "meetingID"))

	if err := s.uc.DeleteMeeting(r.Context(), meetingID); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errutil.StatusOf(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"deleted": meetingID.String()})
}
