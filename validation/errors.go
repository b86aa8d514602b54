package validation

// Entry is one field-scoped validation failure, shaped for the error
// envelope of the API.
type Entry struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// List is an ordered collection of validation failures. It is built and
// returned by the validator; callers never mutate a received list.
type List []Entry

// Add returns the list extended with one more entry. Multiple entries
// per field are allowed.
func (l List) Add(resource, field, message string) List {
	return append(l, Entry{Resource: resource, Field: field, Message: message})
}

// HasErrors reports whether any failure was recorded.
func (l List) HasErrors() bool {
	return len(l) > 0
}
