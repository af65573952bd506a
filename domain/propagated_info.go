package domain

import "strings"

// PropagatedInfo records one reason a router may hold an announcement
// for a prefix: it reaches this router via Path, heard from Peer, with
// AS path ASPath. Two PropagatedInfo values differing only in Path are
// distinct, so Path (joined) is part of its identity.
type PropagatedInfo struct {
	AnnName      string // destination prefix (or OSPF traffic class)
	Path         []string
	ASPath       ASPath
	ASPathLen    int
	Peer         string // upstream BGP neighbor this router heard it from
	Egress       string // last router in Path that first crossed into a foreign AS
	ExternalPeer string // the neighbor at that crossing
	Prev         *PropagatedInfo
}

// Key identifies a PropagatedInfo for use as a map key: two
// PropagatedInfo differing only in Path are distinct, so the key must
// include the full path, not just the owning node.
func (p *PropagatedInfo) Key() string {
	return p.AnnName + "|" + strings.Join(p.Path, ",") + "|" + p.Peer
}

// Node returns the router that owns this PropagatedInfo: the last hop
// of Path.
func (p *PropagatedInfo) Node() string {
	if len(p.Path) == 0 {
		return ""
	}
	return p.Path[len(p.Path)-1]
}

// SelfOriginated reports whether this PropagatedInfo describes a
// self-originated advertisement (path length 1): its owner is also
// the origin.
func (p *PropagatedInfo) SelfOriginated() bool {
	return len(p.Path) == 1
}

// PrevNode returns the router one hop closer to the origin, or "" if
// this is a self-originated PropagatedInfo.
func (p *PropagatedInfo) PrevNode() string {
	if len(p.Path) < 2 {
		return ""
	}
	return p.Path[len(p.Path)-2]
}
