package domain

import (
	"strings"
	"time"
)

// Department is an academic department as persisted in the store.
// ID is assigned by the store adapter (ObjectID hex for MongoDB, UUID for PostgreSQL).
type Department struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
}

// Matches reports whether d and other collide under the uniqueness rule:
// case-insensitively equal name OR case-insensitively equal code.
// A name match alone is sufficient.
func (d Department) Matches(other Department) bool {
	if n := FoldKey(d.Name); n != "" && n == FoldKey(other.Name) {
		return true
	}
	if c := FoldKey(d.Code); c != "" && c == FoldKey(other.Code) {
		return true
	}
	return false
}

// Validate checks that both name and code are present.
func (d Department) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	}
	if strings.TrimSpace(d.Code) == "" {
		errs = append(errs, FieldError{Field: "code", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// DepartmentIndex answers membership queries against a set of departments
// using the same rule as Department.Matches.
type DepartmentIndex struct {
	names map[string]Department
	codes map[string]Department
}

// NewDepartmentIndex builds an index over the given departments.
func NewDepartmentIndex(depts []Department) *DepartmentIndex {
	idx := &DepartmentIndex{
		names: make(map[string]Department, len(depts)),
		codes: make(map[string]Department, len(depts)),
	}
	for _, d := range depts {
		idx.Add(d)
	}
	return idx
}

// Add inserts d into the index. Existing keys are kept.
func (idx *DepartmentIndex) Add(d Department) {
	if n := FoldKey(d.Name); n != "" {
		if _, ok := idx.names[n]; !ok {
			idx.names[n] = d
		}
	}
	if c := FoldKey(d.Code); c != "" {
		if _, ok := idx.codes[c]; !ok {
			idx.codes[c] = d
		}
	}
}

// Find returns the indexed department colliding with d, checking name first.
func (idx *DepartmentIndex) Find(d Department) (Department, bool) {
	if existing, ok := idx.names[FoldKey(d.Name)]; ok {
		return existing, true
	}
	if existing, ok := idx.codes[FoldKey(d.Code)]; ok {
		return existing, true
	}
	return Department{}, false
}

// Len returns the number of distinct names in the index.
func (idx *DepartmentIndex) Len() int {
	return len(idx.names)
}
