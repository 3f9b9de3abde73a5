package form

import "sort"

// Banner is shown above a form that failed validation.
const Banner = "Please fix the validation errors before submitting."

// Errors maps a field key to the message shown beside it. An empty map means
// the input is valid.
type Errors map[string]string

// OK reports whether there are no field errors.
func (e Errors) OK() bool {
	return len(e) == 0
}

// Get returns the message for field, or "".
func (e Errors) Get(field string) string {
	if e == nil {
		return ""
	}
	return e[field]
}

// Clear removes field's message; editing a field clears its error.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// Fields lists the failing field keys in order.
func (e Errors) Fields() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
