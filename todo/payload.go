package todo

import (
	"encoding/json"
	"strings"
)

// Payload is the open mapping attached to a todo. Four keys are recognized
// by the client; anything else round-trips through Extra untouched. The
// service stores the mapping opaquely and never interprets it.
type Payload struct {
	// Tags is an ordered list of short labels.
	Tags []string

	// Priority is one of low, medium, high.
	Priority Priority

	// Attachments is an ordered list of filename-like strings.
	Attachments []string

	// Notes is free text, rendered as markdown where possible.
	Notes string

	// Extra holds unrecognized keys verbatim.
	Extra map[string]json.RawMessage
}

// IsEmpty returns true when no recognized field and no extra key is set.
// Empty payloads are omitted from requests entirely rather than sent as
// empty objects.
func (p Payload) IsEmpty() bool {
	return len(p.Tags) == 0 &&
		p.Priority == "" &&
		len(p.Attachments) == 0 &&
		p.Notes == "" &&
		len(p.Extra) == 0
}

// MarshalJSON emits the recognized keys that are set, then the extras.
func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, 4+len(p.Extra))
	for key, raw := range p.Extra {
		out[key] = raw
	}
	if len(p.Tags) > 0 {
		raw, err := json.Marshal(p.Tags)
		if err != nil {
			return nil, err
		}
		out["tags"] = raw
	}
	if p.Priority != "" {
		raw, err := json.Marshal(p.Priority)
		if err != nil {
			return nil, err
		}
		out["priority"] = raw
	}
	if len(p.Attachments) > 0 {
		raw, err := json.Marshal(p.Attachments)
		if err != nil {
			return nil, err
		}
		out["attachments"] = raw
	}
	if p.Notes != "" {
		raw, err := json.Marshal(p.Notes)
		if err != nil {
			return nil, err
		}
		out["notes"] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON tolerates an absent or null payload and recognized keys of
// the wrong shape. A key that does not decode into its typed field is kept
// in Extra instead of being dropped.
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = Payload{}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for key, raw := range fields {
		switch key {
		case "tags":
			var tags []string
			if err := json.Unmarshal(raw, &tags); err == nil {
				p.Tags = tags
				continue
			}
		case "priority":
			var priority Priority
			if err := json.Unmarshal(raw, &priority); err == nil {
				p.Priority = priority
				continue
			}
		case "attachments":
			var attachments []string
			if err := json.Unmarshal(raw, &attachments); err == nil {
				p.Attachments = attachments
				continue
			}
		case "notes":
			var notes string
			if err := json.Unmarshal(raw, &notes); err == nil {
				p.Notes = notes
				continue
			}
		}
		if p.Extra == nil {
			p.Extra = make(map[string]json.RawMessage)
		}
		p.Extra[key] = raw
	}

	return nil
}

// PayloadFromForm assembles a payload from free-form inputs. Tags and
// attachments are comma-separated; blank inputs contribute nothing, so a
// form left entirely blank composes an empty payload.
func PayloadFromForm(tagsCSV, priority, attachmentsCSV, notes string) (Payload, error) {
	var payload Payload

	payload.Tags = SplitList(tagsCSV)
	payload.Attachments = SplitList(attachmentsCSV)
	payload.Notes = strings.TrimSpace(notes)

	if trimmed := strings.TrimSpace(priority); trimmed != "" {
		value := Priority(trimmed)
		if !value.IsValid() {
			return Payload{}, ErrInvalidPriority
		}
		payload.Priority = value
	}

	return payload, nil
}

// SplitList splits comma-separated input into trimmed, non-empty tokens.
func SplitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

// JoinList formats values back into comma-separated text for editing.
func JoinList(values []string) string {
	return strings.Join(values, ", ")
}
