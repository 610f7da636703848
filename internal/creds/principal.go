package creds

import (
	"math"
	"strconv"
	"strings"
)

// Principal names a user or a group either by name or by numeric id.
type Principal struct {
	Name string
	ID   int
	// byID distinguishes ByID(0) from the zero Principal.
	byID bool
}

func ByName(name string) Principal { return Principal{Name: name} }

func ByID(id int) Principal { return Principal{ID: id, byID: true} }

// ParsePrincipal treats an all-digit argument that fits a 32-bit uid_t/gid_t
// (and an int) as an id and anything else as a name.
func ParsePrincipal(s string) Principal {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 32); err == nil && n <= math.MaxInt {
		return ByID(int(n))
	}
	return ByName(s)
}

func (p Principal) IsID() bool { return p.byID }

func (p Principal) String() string {
	if p.byID {
		return strconv.Itoa(p.ID)
	}
	return p.Name
}
