// Package knowledge describes the data layout on the DWD Climate Data
// Center (CDC) server: which measurement categories exist, which field
// schema each (resolution, category) pair has, and how timestamps are
// formatted per resolution.
package knowledge

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// FieldType is the closed set of column types appearing in CDC records.
type FieldType int

const (
	Int FieldType = iota
	Real
	Bool
	Text
	Timestamp
)

// SQL returns the column type used when creating the cache tables.
// Timestamps are stored as integers in the resolution's layout.
func (t FieldType) SQL() string {
	switch t {
	case Int:
		return "int"
	case Real:
		return "real"
	case Bool:
		return "bool"
	case Text:
		return "text"
	case Timestamp:
		return "int"
	}
	return "text"
}

type Field struct {
	Name string
	Type FieldType
}

// Category is one measurement type published by the CDC server.
// Folder overrides the remote subdirectory when it differs from Name.
type Category struct {
	Key    string
	Name   string
	Folder string
}

// Dir returns the remote subdirectory for this category.
func (c Category) Dir() string {
	if c.Folder != "" {
		return c.Folder
	}
	return c.Name
}

// Resolution holds the schema set for one temporal resolution of the
// climate observations, together with its integer timestamp layout.
type Resolution struct {
	Name string
	// Go time layout of the integer timestamps, e.g. "2006010215" for hourly
	TimestampLayout string
	// Ordered field lists per category name, matching the source column
	// order after the leading station id and timestamp columns
	Categories map[string][]Field
}

// Schema returns the ordered field list for a category, if the category
// is implemented for this resolution.
func (r *Resolution) Schema(category string) ([]Field, bool) {
	fields, ok := r.Categories[category]
	return fields, ok
}

// CategoryNames returns the implemented category names in sorted order.
func (r *Resolution) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatTimestamp converts a point in time to the integer form stored
// in the cache, e.g. 2020-06-01T08 -> 2020060108 for hourly.
func (r *Resolution) FormatTimestamp(t time.Time) int64 {
	v, _ := strconv.ParseInt(t.Format(r.TimestampLayout), 10, 64)
	return v
}

// ParseTimestamp is the inverse of FormatTimestamp.
func (r *Resolution) ParseTimestamp(v int64) (time.Time, error) {
	return time.Parse(r.TimestampLayout, strconv.FormatInt(v, 10))
}

// Registry is the full knowledge base, built once at startup by Init.
type Registry struct {
	resolutions map[string]*Resolution
}

// Resolution looks up a resolution by name. Unknown names are an error;
// callers treat this as fatal since no work can proceed without a schema.
func (k *Registry) Resolution(name string) (*Resolution, error) {
	res, ok := k.resolutions[name]
	if !ok {
		return nil, fmt.Errorf("no schema information for resolution %q in the knowledge base", name)
	}
	return res, nil
}

// ResolutionNames returns all known resolution identifiers, sorted.
func (k *Registry) ResolutionNames() []string {
	names := make([]string, 0, len(k.resolutions))
	for name := range k.resolutions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryNames returns the names of all measurement categories on the
// server, in publication order.
func CategoryNames() []string {
	names := make([]string, len(Measurements))
	for i, c := range Measurements {
		names[i] = c.Name
	}
	return names
}

// FindCategories resolves category names to descriptors, keeping the
// publication order. An empty selection means all categories.
func FindCategories(names []string) []Category {
	if len(names) == 0 {
		return Measurements
	}
	var out []Category
	for _, c := range Measurements {
		for _, name := range names {
			if c.Name == name {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
