package synetconfig

import (
	"fmt"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/topology"
)

func buildGraph(sk *Sketch) (*topology.NetworkGraph, error) {
	g := topology.New()

	for _, r := range sk.Routers {
		g.AddRouter(r.Name, r.ASN)
		g.SetLoopback(r.Name, r.Loopback)
		if rid := r.RouterID.toSketch(); !rid.IsAbsent() {
			g.SetBGPRouterID(r.Name, rid)
		}
	}
	for _, p := range sk.Peers {
		g.AddPeer(p.Name, p.ASN)
		g.SetLoopback(p.Name, p.Loopback)
		for _, ann := range p.Advertise {
			ea, err := buildAnnouncement(ann)
			if err != nil {
				return nil, fmt.Errorf("synetconfig: peer %s: %w", p.Name, err)
			}
			ea.Peer = p.Name
			g.AddBGPAdvertise(p.Name, ea)
		}
	}

	for _, r := range sk.Routers {
		for _, n := range r.Neighbors {
			g.AddBGPNeighbor(r.Name, n)
		}
		for peer, name := range r.ImportMap {
			g.SetBGPImportRouteMap(r.Name, peer, name)
		}
		for peer, name := range r.ExportMap {
			g.SetBGPExportRouteMap(r.Name, peer, name)
		}
		for _, rm := range r.RouteMaps {
			g.AddRouteMap(r.Name, buildRouteMap(rm))
		}
		for _, pl := range r.PrefixLists {
			g.AddIPPrefixList(r.Name, &topology.PrefixList{Name: pl.Name, Prefixes: pl.Prefixes})
		}
		for _, cl := range r.CommunityLists {
			g.AddCommunityList(r.Name, &topology.CommunityList{Name: cl.Name, Communities: buildCommunities(cl.Communities)})
		}
	}
	for _, p := range sk.Peers {
		for _, n := range p.Neighbors {
			g.AddBGPNeighbor(p.Name, n)
		}
	}

	for _, e := range sk.Edges {
		g.SetEdge(e.A, e.B, e.Cost.toSketch())
	}

	return g, nil
}

func buildCommunities(names []string) []domain.Community {
	out := make([]domain.Community, len(names))
	for i, n := range names {
		out[i] = domain.Community(n)
	}
	return out
}

func buildAnnouncement(a externalAnnouncementSketch) (domain.ExternalAnnouncement, error) {
	origin, err := parseOrigin(a.Origin)
	if err != nil {
		return domain.ExternalAnnouncement{}, err
	}
	comms := map[domain.Community]bool{}
	for _, c := range a.Communities {
		comms[domain.Community(c)] = true
	}
	return domain.ExternalAnnouncement{
		Prefix:      a.Prefix,
		Origin:      origin,
		ASPath:      domain.ASPath(a.ASPath),
		ASPathLen:   len(a.ASPath),
		NextHop:     a.NextHop,
		LocalPref:   a.LocalPref,
		MED:         a.MED,
		Communities: comms,
		Permitted:   a.Permitted,
	}, nil
}

func parseOrigin(s string) (domain.Origin, error) {
	switch s {
	case "IGP":
		return domain.OriginIGP, nil
	case "EBGP":
		return domain.OriginEBGP, nil
	case "INCOMPLETE", "":
		return domain.OriginIncomplete, nil
	default:
		return 0, fmt.Errorf("synetconfig: unknown origin %q", s)
	}
}

func buildRouteMap(rm routeMapSketch) *topology.RouteMap {
	lines := make([]topology.RouteMapLine, len(rm.Lines))
	for i, l := range rm.Lines {
		lines[i] = topology.RouteMapLine{
			LineNo:  l.LineNo,
			Access:  l.Access.toSketch(),
			Matches: buildMatches(l.Matches),
			Actions: buildActions(l.Actions),
		}
	}
	return &topology.RouteMap{Name: rm.Name, Lines: lines}
}

func buildMatches(ms []matchSketch) []topology.Match {
	var out []topology.Match
	for _, m := range ms {
		switch {
		case m.NextHop != nil:
			out = append(out, topology.MatchNextHop{NextHop: m.NextHop.toSketch()})
		case m.CommunitiesList != "":
			out = append(out, topology.MatchCommunitiesList{ListName: m.CommunitiesList})
		case m.IPPrefixList != "":
			out = append(out, topology.MatchIPPrefixList{ListName: m.IPPrefixList})
		default:
			out = append(out, topology.MatchAll{})
		}
	}
	if len(out) == 0 {
		out = append(out, topology.MatchAll{})
	}
	return out
}

func buildActions(as []actionSketch) []topology.Action {
	var out []topology.Action
	for _, a := range as {
		switch {
		case a.SetLocalPref != nil:
			out = append(out, topology.ActionSetLocalPref{Value: a.SetLocalPref.toSketch()})
		case a.SetMED != nil:
			out = append(out, topology.ActionSetMED{Value: a.SetMED.toSketch()})
		case a.SetNextHop != nil:
			out = append(out, topology.ActionSetNextHop{Value: a.SetNextHop.toSketch()})
		case a.SetCommunity != "":
			v := topology.Sketch[bool]{}
			if a.CommunityValue != nil {
				v = a.CommunityValue.toSketch()
			}
			out = append(out, topology.ActionSetCommunity{Community: domain.Community(a.SetCommunity), Value: v})
		}
	}
	return out
}

func buildReq(r reqSketch) domain.Req {
	proto := domain.BGP
	if r.Protocol == "OSPF" {
		proto = domain.OSPF
	}
	switch r.Kind {
	case "order":
		children := make([]domain.Req, len(r.Children))
		for i, c := range r.Children {
			children[i] = buildReq(c)
		}
		return &domain.PathOrderReq{Protocol: proto, Dst: r.Dst, Children: children, Strict: r.Strict}
	case "kconnected":
		children := make([]domain.Req, len(r.Children))
		for i, c := range r.Children {
			children[i] = buildReq(c)
		}
		return &domain.KConnectedPathsReq{Protocol: proto, Dst: r.Dst, Children: children, Strict: r.Strict}
	default:
		return &domain.PathReq{Protocol: proto, Dst: r.Dst, Path: r.Path, Strict: r.Strict}
	}
}
