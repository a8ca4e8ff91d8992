package domain

import "time"

// Run is the recorded outcome of a completed operation sequence.
type Run struct {
	ID        string    `json:"id"`
	Job       string    `json:"job,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	State     *State    `json:"state"`
}

// Clone returns a copy whose State shares no mutable containers with r.
func (r *Run) Clone() *Run {
	if r == nil {
		return nil
	}
	out := *r
	out.State = r.State.Clone()
	return &out
}
