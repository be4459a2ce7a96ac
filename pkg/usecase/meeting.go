package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/minutia-lab/minutia/pkg/domain/model"
	"github.com/minutia-lab/minutia/pkg/domain/types"
)

// ListMeetings returns all indexed meetings in first-seen order
func (uc *UseCases) ListMeetings(ctx context.Context) ([]*model.MeetingRef, error) {
	refs, err := uc.meetingIndex.ListMeetings(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list meetings")
	}
	if refs == nil {
		refs = []*model.MeetingRef{}
	}
	return refs, nil
}

// DeleteMeeting removes all indexed data of the meeting. Deleting an
// unknown meeting is a no-op.
func (uc *UseCases) DeleteMeeting(ctx context.Context, meetingID types.MeetingID) error {
	if err := meetingID.Validate(); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "invalid meeting ID", goerr.V("cause", err.Error()))
	}
	return uc.meetingIndex.DeleteMeeting(ctx, meetingID)
}
