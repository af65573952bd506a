package topology

import (
	"net/netip"

	"github.com/gaissmai/bart"
)

// PrefixIndex answers exact prefix-list membership in O(1) amortized
// instead of a linear scan over a prefix-list's entries, backed by a
// BART (Balanced Routing Table) trie. Route-Map Encoder builds one per
// distinct MatchIPPrefixList it evaluates.
type PrefixIndex struct {
	table *bart.Table[bool]
}

// NewPrefixIndex builds an index over prefixes, which must be valid
// CIDR strings (e.g. "128.0.0.0/24"). Malformed entries are skipped —
// the sketch validator (synetconfig) is responsible for rejecting bad
// CIDR strings before synthesis starts.
func NewPrefixIndex(prefixes []string) *PrefixIndex {
	t := &bart.Table[bool]{}
	for _, p := range prefixes {
		pfx, err := netip.ParsePrefix(p)
		if err != nil {
			continue
		}
		t.Insert(pfx, true)
	}
	return &PrefixIndex{table: t}
}

// Contains reports whether prefix is an exact member of the index
// (a route-map prefix-list match is an exact-prefix match, not a
// longest-prefix-match over subnets, so this checks Get rather than
// Lookup).
func (idx *PrefixIndex) Contains(prefix string) bool {
	pfx, err := netip.ParsePrefix(prefix)
	if err != nil {
		return false
	}
	_, ok := idx.table.Get(pfx)
	return ok
}
