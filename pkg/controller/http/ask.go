package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/utils/errutil"
)

type askRequest struct {
	Question string `json:"question"`
	NContext int    `json:"n_context"`
}

// handleAsk answers a question across all indexed meetings
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	s.answer(w, r, "")
}

// handleAskMeeting answers a question scoped to one meeting
func (s *Server) handleAskMeeting(w http.ResponseWriter, r *http.Request) {
	s.answer(w, r, types.MeetingID(chi.URLParam(r, "meetingID")))
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request, meetingID types.MeetingID) {
	ctx := r.Context()

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w,
			goerr.Wrap(model.ErrInvalidInput, "invalid request body", goerr.V("cause", err.Error())),
			http.StatusUnprocessableEntity)
		return
	}

	answer, err := s.uc.Ask(ctx, req.Question, req.NContext, meetingID)
	if err != nil {
		// Ask bodies report validation failures as 422
		status := errutil.StatusOf(err)
		if errors.Is(err, model.ErrInvalidInput) {
			status = http.StatusUnprocessableEntity
		}
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	respondJSON(w, http.StatusOK, answer)
}
