package record

import "time"

// Header is a record's public, unencrypted metadata. It is stored and
// cached even by layers that never gain access to the body, so search
// stays cheap.
//
// No secret information may ever be stored in a header.
type Header struct {
	// Name identifies the record vault-wide.
	Name string `json:"name"`
	// Category is the primary grouping of the record.
	Category string `json:"category"`
	// Tags is a collection of custom labels.
	Tags []string `json:"tags"`
	// Fields holds custom cleartext fields to query by.
	Fields map[string]Payload `json:"fields,omitempty"`
	// DateCreated is when the record was first added.
	DateCreated time.Time `json:"date_created"`
	// DateUpdated tracks the last body mutation.
	DateUpdated time.Time `json:"date_updated"`
}

// Record is a vault entry: a cleartext header plus a body. The body is
// nil when it has not been pulled from the backend yet, or when the
// running composition has no crypto capability to open it with.
type Record struct {
	Header Header `json:"header"`
	Body   Body   `json:"-"`
}

// New creates an empty record with a fresh first body generation.
func New(name, category string, tags []string) *Record {
	now := time.Now()
	if tags == nil {
		tags = []string{}
	}
	return &Record{
		Header: Header{
			Name:        name,
			Category:    category,
			Tags:        tags,
			DateCreated: now,
			DateUpdated: now,
		},
		Body: NewDataBody(),
	}
}

// AddData sets a field in the record's newest generation, overwriting any
// existing value for that key. It reports false when no body is loaded or
// the body is still sealed; the update stamp only moves on a stored write.
func (r *Record) AddData(key string, value Payload) bool {
	if r.Body == nil || !r.Body.SetField(key, value) {
		return false
	}
	r.Header.DateUpdated = time.Now()
	return true
}

// GetData returns the latest value of a body field. Absence is a normal
// outcome, reported via the second return.
func (r *Record) GetData(key string) (Payload, bool) {
	if r.Body == nil {
		return Payload{}, false
	}
	return r.Body.GetField(key)
}
