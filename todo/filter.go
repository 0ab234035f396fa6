package todo

import "net/url"

// Filter narrows a todo listing. Zero values apply no criterion. The
// description criterion is a substring match; the payload criterion is a
// match expression whose semantics are owned by the service.
type Filter struct {
	Description string
	Payload     string
}

// IsZero returns true when the filter applies no criteria.
func (f Filter) IsZero() bool {
	return f.Description == "" && f.Payload == ""
}

// Values encodes the filter as listing query parameters.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Description != "" {
		values.Set("desc_search", f.Description)
	}
	if f.Payload != "" {
		values.Set("payload_search", f.Payload)
	}
	return values
}
