package types

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MeetingID identifies one processed recording. It is caller-supplied or
// auto-generated, and must not be blank.
type MeetingID string

// NewMeetingID generates a short random meeting ID (e.g. "m-1a2b3c4d")
func NewMeetingID() MeetingID {
	return MeetingID("m-" + uuid.New().String()[:8])
}

// Validate checks that the MeetingID is usable as an index key
func (x MeetingID) Validate() error {
	if strings.TrimSpace(string(x)) == "" {
		return goerr.New("meeting ID must not be empty")
	}
	return nil
}

func (x MeetingID) String() string {
	return string(x)
}
