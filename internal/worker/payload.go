package worker

import (
	"encoding/json"
	"fmt"
)

// SubmissionPayload is the JSON body of an audio-submitted queue message.
type SubmissionPayload struct {
	SubmissionID string `json:"submissionId"`
	ChildID      string `json:"childId"`
	BlobURL      string `json:"blobUrl"`
}

// ParsePayload decodes and validates a raw message body. All three fields
// are required — a message missing any of them can never be processed and
// should be abandoned rather than retried.
func ParsePayload(body []byte) (SubmissionPayload, error) {
	var p SubmissionPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return p, fmt.Errorf("parse payload: %w", err)
	}
	if p.SubmissionID == "" {
		return p, fmt.Errorf("parse payload: missing submissionId")
	}
	if p.ChildID == "" {
		return p, fmt.Errorf("parse payload: missing childId")
	}
	if p.BlobURL == "" {
		return p, fmt.Errorf("parse payload: missing blobUrl")
	}
	return p, nil
}
