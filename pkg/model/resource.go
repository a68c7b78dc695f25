package model

import (
	"regexp"
	"strconv"
	"strings"
)

// NamedResource is the upstream API's lightweight reference to another
// entity. The numeric ID lives in the last path segment of URL.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

var trailingID = regexp.MustCompile(`/(\d+)/?$`)

// ID returns the numeric ID encoded in the URL, or 0 if there is none.
func (res NamedResource) ID() int {
	m := trailingID.FindStringSubmatch(res.URL)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}

// Ref selects an entity by one of three explicit forms.
type Ref interface {
	isRef()
}

type ByID int

type ByIdentifier string

// ByInline is an entity already partially known to the caller, e.g. a
// NamedResource embedded in another payload.
type ByInline struct {
	ID         int
	Identifier string
	Names      Names
}

func (ByID) isRef()         {}
func (ByIdentifier) isRef() {}
func (ByInline) isRef()     {}

// ParseRef reads a path parameter: decimal digits select by ID, anything
// else is treated as an identifier.
func ParseRef(s string) Ref {
	s = strings.ToLower(strings.TrimSpace(s))
	if id, err := strconv.Atoi(s); err == nil && id > 0 {
		return ByID(id)
	}
	return ByIdentifier(s)
}

// InlineRef converts an embedded NamedResource.
func InlineRef(res NamedResource) ByInline {
	return ByInline{ID: res.ID(), Identifier: res.Name}
}
