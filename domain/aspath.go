package domain

import (
	"strconv"
	"strings"
)

// ASPath is an ordered sequence of AS numbers, origin-first (the AS
// that originated the route comes last when walking away from the
// origin; callers building a path while tracing from origin outward
// should append in that direction and reverse once at the end, as
// EBGPPropagation.get_as_path does in the original encoder).
type ASPath []int

// Key returns the canonical, comparable identity of this AS path used
// to key the ASPATH enum sort: identical AS sequences, including
// repeats, must map to the same enum value.
func (p ASPath) Key() string {
	parts := make([]string, len(p))
	for i, as := range p {
		parts[i] = strconv.Itoa(as)
	}
	return strings.Join(parts, "_")
}

// Len returns the number of AS entries in p. It is not the decision
// ladder's as_path_len: PropagatedInfo.ASPathLen is computed separately
// by the propagation package.
func (p ASPath) Len() int {
	return len(p)
}

// Append returns a new path with the trailing AS dropped when it
// repeats the last entry of p (AS-path contraction across iBGP hops
// within the same AS), or the AS appended otherwise.
func (p ASPath) Append(as int) ASPath {
	if len(p) > 0 && p[len(p)-1] == as {
		return p
	}
	out := make(ASPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, as)
}

// Reversed returns a copy of p with elements in reverse order.
func (p ASPath) Reversed() ASPath {
	out := make(ASPath, len(p))
	for i, as := range p {
		out[len(p)-1-i] = as
	}
	return out
}

// Concat appends extra's elements onto the end of p without
// contraction, used to splice an origin's own advertised AS path onto
// the end of a traced path (new_bgp.py's `as_path += tuple(ann.as_path)`).
func (p ASPath) Concat(extra ASPath) ASPath {
	out := make(ASPath, 0, len(p)+len(extra))
	out = append(out, p...)
	out = append(out, extra...)
	return out
}
