package smtctx

import (
	"strings"

	"github.com/grapefruit0/synet-plus/domain"
)

// Announcement is the symbolic form of a BGP UPDATE's path attributes
// (spec.md §3): one Var per attribute, a community submapping, and a
// back-reference to the announcement it was derived from by the last
// route-map line. Announcement values are never mutated after
// creation — a route-map line produces a new Announcement linked via
// Prev instead (spec.md §3, Lifecycle).
type Announcement struct {
	Prefix     *Var
	Peer       *Var
	Origin     *Var
	ASPath     *Var
	ASPathLen  *Var
	NextHop    *Var
	LocalPref  *Var
	Med        *Var
	Permitted  *Var
	Communities map[domain.Community]*Var

	Prev *Announcement
}

// FixedAttrs carries the attributes a caller wants concretely fixed
// when creating a new Announcement; any field left at its zero value
// (empty string or nil pointer) is a fresh symbolic variable.
// Communities fixes the flag of each registered community it has an
// entry for; the other communities stay symbolic.
type FixedAttrs struct {
	Prefix      string
	Peer        string
	Origin      string
	ASPathKey   string
	ASPathLen   *int
	NextHop     string
	LocalPref   *int
	Med         *int
	Permitted   *bool
	Communities map[domain.Community]bool
}

// NewAnnouncement allocates one fresh Var per BGP attribute plus one
// per registered community, fixing whichever attributes `fixed`
// specifies. This mirrors new_bgp.py's create_sym_ann: every attribute
// is always represented by a Var, concrete or not, so downstream code
// never special-cases "this attribute doesn't exist yet".
func (c *SolverContext) NewAnnouncement(fixed FixedAttrs, namePrefix string) *Announcement {
	prefixSort := c.DeclareEnum(PrefixSort, nil)
	peerSort := c.DeclareEnum(PeerSort, nil)
	originSort := c.DeclareEnum(OriginSort, OriginSymbols)
	asPathSort := c.DeclareEnum(ASPathSort, nil)
	nextHopSort := c.DeclareEnum(NextHopSort, nil)

	ann := &Announcement{Communities: map[domain.Community]*Var{}}

	valueOrNil := func(s string) interface{} {
		if s == "" {
			return nil
		}
		return s
	}

	ann.Prefix = c.FreshVar(prefixSort, valueOrNil(fixed.Prefix), namePrefix+"_prefix")
	ann.Peer = c.FreshVar(peerSort, valueOrNil(fixed.Peer), namePrefix+"_peer")
	ann.Origin = c.FreshVar(originSort, valueOrNil(fixed.Origin), namePrefix+"_origin")
	ann.ASPath = c.FreshVar(asPathSort, valueOrNil(fixed.ASPathKey), namePrefix+"_as_path")
	ann.NextHop = c.FreshVar(nextHopSort, valueOrNil(fixed.NextHop), namePrefix+"_next_hop")

	var aslenVal interface{}
	if fixed.ASPathLen != nil {
		aslenVal = *fixed.ASPathLen
	}
	ann.ASPathLen = c.FreshVar(IntSort{}, aslenVal, namePrefix+"_as_path_len")

	var lpVal interface{}
	if fixed.LocalPref != nil {
		lpVal = *fixed.LocalPref
	}
	ann.LocalPref = c.FreshVar(IntSort{}, lpVal, namePrefix+"_local_pref")

	var medVal interface{}
	if fixed.Med != nil {
		medVal = *fixed.Med
	}
	ann.Med = c.FreshVar(IntSort{}, medVal, namePrefix+"_med")

	var permVal interface{}
	if fixed.Permitted != nil {
		permVal = *fixed.Permitted
	}
	ann.Permitted = c.FreshVar(BoolSort{}, permVal, namePrefix+"_permitted")

	for _, community := range c.communities {
		var commVal interface{}
		if fixed.Communities != nil {
			if v, ok := fixed.Communities[community]; ok {
				commVal = v
			}
		}
		cname := namePrefix + "_comm_" + strings.ReplaceAll(string(community), ":", "_")
		ann.Communities[community] = c.FreshVar(BoolSort{}, commVal, cname)
	}
	return ann
}

// ShallowCopy returns a new Announcement whose fields are copied from
// ann (new_bgp.py's `copy.copy(ann)` in compute_imported_routes, used
// before rewriting next_hop on import so the original exported
// Announcement is left untouched).
func (ann *Announcement) ShallowCopy() *Announcement {
	out := &Announcement{
		Prefix:      ann.Prefix,
		Peer:        ann.Peer,
		Origin:      ann.Origin,
		ASPath:      ann.ASPath,
		ASPathLen:   ann.ASPathLen,
		NextHop:     ann.NextHop,
		LocalPref:   ann.LocalPref,
		Med:         ann.Med,
		Permitted:   ann.Permitted,
		Communities: make(map[domain.Community]*Var, len(ann.Communities)),
		Prev:        ann.Prev,
	}
	for k, v := range ann.Communities {
		out.Communities[k] = v
	}
	return out
}

// AssertOrder reports whether old appears somewhere on new's Prev
// chain (spec.md §4.2: `assert_order(old, new)` must hold after a
// route-map line is applied).
func AssertOrder(old, cur *Announcement) bool {
	for cur != nil {
		if cur == old {
			return true
		}
		cur = cur.Prev
	}
	return false
}
