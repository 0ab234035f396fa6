package todo

import "time"

// Update is a partial-update document. Nil fields are left untouched by the
// service; only set fields are transmitted.
type Update struct {
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Payload     *Payload   `json:"payload,omitempty"`
}

// IsZero returns true when the update would change nothing.
func (u Update) IsZero() bool {
	return u.Description == nil && u.DueDate == nil && u.Completed == nil && u.Payload == nil
}

// SetDescription marks the description for replacement.
func (u *Update) SetDescription(value string) {
	u.Description = &value
}

// SetDueDate marks the due date for replacement.
func (u *Update) SetDueDate(value time.Time) {
	u.DueDate = &value
}

// SetCompleted marks the completed flag for replacement.
func (u *Update) SetCompleted(value bool) {
	u.Completed = &value
}

// SetPayload marks the payload for replacement. Empty payloads are ignored
// so that a blank edit form never clobbers existing structured data.
func (u *Update) SetPayload(payload Payload) {
	if payload.IsEmpty() {
		return
	}
	u.Payload = &payload
}

// Toggle builds an update that flips only the completed flag.
func Toggle(item Todo) Update {
	var update Update
	update.SetCompleted(!item.Completed)
	return update
}
