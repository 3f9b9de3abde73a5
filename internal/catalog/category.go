package catalog

import "strings"

// Category is a catalog label.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Provisional reports whether the category was invented locally and has not
// been persisted yet.
func (c Category) Provisional() bool {
	return c.ID < 0
}

// Categories is the option list offered by the movie form.
type Categories []Category

// Names returns the category names in order.
func (cs Categories) Names() []string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return names
}

// Find looks a category up by name, ignoring case.
func (cs Categories) Find(name string) (Category, bool) {
	trimmed := strings.TrimSpace(name)
	for _, c := range cs {
		if strings.EqualFold(c.Name, trimmed) {
			return c, true
		}
	}
	return Category{}, false
}

// AddProvisional appends name with the next unused negative ID and returns
// the updated list and the new entry. A blank name is ignored; an existing
// name is returned as-is.
func (cs Categories) AddProvisional(name string) (Categories, Category, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return cs, Category{}, false
	}
	if existing, ok := cs.Find(trimmed); ok {
		return cs, existing, true
	}
	next := int64(-1)
	for _, c := range cs {
		if c.ID <= next {
			next = c.ID - 1
		}
	}
	created := Category{ID: next, Name: trimmed}
	out := make(Categories, 0, len(cs)+1)
	out = append(out, cs...)
	out = append(out, created)
	return out, created, true
}

// KeepProvisional returns cs with the provisional entries of prev appended,
// skipping names cs already holds.
func (cs Categories) KeepProvisional(prev Categories) Categories {
	out := cs
	for _, c := range prev {
		if !c.Provisional() {
			continue
		}
		if _, ok := out.Find(c.Name); ok {
			continue
		}
		out = append(out[:len(out):len(out)], c)
	}
	return out
}
