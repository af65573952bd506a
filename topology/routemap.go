package topology

import "github.com/grapefruit0/synet-plus/domain"

// Access is a RouteMapLine's permit/deny/hole marker (glossary).
type Access int

// The three access values a RouteMapLine can carry; Hole means the
// solver must pick between AccessPermit and AccessDeny.
const (
	AccessPermit Access = iota
	AccessDeny
	AccessHole
)

// Match is implemented by every route-map match predicate. A Match
// may itself contain holes (e.g. which prefix-list entries apply);
// the Route-Map Encoder is responsible for turning one into a
// symbolic boolean.
type Match interface {
	isMatch()
}

// MatchAll always matches; used for a route-map line with no filter
// that exists purely to apply actions or to flip a HOLE access.
type MatchAll struct{}

func (MatchAll) isMatch() {}

// MatchNextHop matches on an announcement's concrete or symbolic
// next-hop.
type MatchNextHop struct {
	NextHop Sketch[string]
}

func (MatchNextHop) isMatch() {}

// MatchCommunitiesList matches when an announcement carries every
// community named in List.
type MatchCommunitiesList struct {
	ListName string
	List     []domain.Community
}

func (MatchCommunitiesList) isMatch() {}

// MatchIPPrefixList matches when an announcement's prefix is a member
// of List (looked up via a bart-backed PrefixIndex rather than a
// linear scan — see prefixindex.go).
type MatchIPPrefixList struct {
	ListName string
	List     []string
}

func (MatchIPPrefixList) isMatch() {}

// Action is implemented by every route-map action. Like Match, an
// Action's operand may be a hole.
type Action interface {
	isAction()
}

// ActionSetLocalPref sets local_pref on a permitted announcement.
type ActionSetLocalPref struct {
	Value Sketch[int]
}

func (ActionSetLocalPref) isAction() {}

// ActionSetMED sets med on a permitted announcement.
type ActionSetMED struct {
	Value Sketch[int]
}

func (ActionSetMED) isAction() {}

// ActionSetNextHop sets next_hop on a permitted announcement.
type ActionSetNextHop struct {
	Value Sketch[string]
}

func (ActionSetNextHop) isAction() {}

// ActionSetCommunity sets one community flag on a permitted
// announcement.
type ActionSetCommunity struct {
	Community domain.Community
	Value     Sketch[bool]
}

func (ActionSetCommunity) isAction() {}

// RouteMapLine is one ordered (lineno, access, matches, actions)
// entry. Line order governs first-match semantics (spec.md §3).
type RouteMapLine struct {
	LineNo  int
	Access  Sketch[Access]
	Matches []Match
	Actions []Action
}

// RouteMap is an ordered list of RouteMapLine, keyed by Name for
// attachment to a router's import/export slots.
type RouteMap struct {
	Name  string
	Lines []RouteMapLine
}

// SortedLines returns Lines sorted by ascending LineNo, the order
// first-match evaluation must follow (spec.md §4.2).
func (r *RouteMap) SortedLines() []RouteMapLine {
	out := append([]RouteMapLine(nil), r.Lines...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].LineNo > out[j].LineNo; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// PrefixList and CommunityList are concrete named lists attached to a
// router in the NetworkGraph. Materialization after a solve does not
// change them.
type PrefixList struct {
	Name     string
	Prefixes []string
}

// CommunityList is the community analogue of PrefixList.
type CommunityList struct {
	Name        string
	Communities []domain.Community
}
