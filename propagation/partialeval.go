package propagation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/topology"
)

// ErrMissingOriginAnnouncement reports a path whose first hop has no
// matching advertisement for the destination prefix (spec.md §7,
// MissingOriginAnnouncement — fatal, a sketch authoring error).
var ErrMissingOriginAnnouncement = errors.New("propagation: missing origin announcement")

// chainBuilder builds domain.PropagatedInfo chains for one destination
// prefix, caching by path so two paths sharing a common prefix share
// the same Prev objects (spec.md invariant: "prev resides on path[-2]").
type chainBuilder struct {
	net   string
	g     *topology.NetworkGraph
	cache map[string]*domain.PropagatedInfo
}

func newChainBuilder(net string, g *topology.NetworkGraph) *chainBuilder {
	return &chainBuilder{net: net, g: g, cache: map[string]*domain.PropagatedInfo{}}
}

func (cb *chainBuilder) build(path Path) (*domain.PropagatedInfo, error) {
	key := path.key()
	if info, ok := cb.cache[key]; ok {
		return info, nil
	}
	var prev *domain.PropagatedInfo
	if len(path) > 1 {
		var err error
		prev, err = cb.build(path[:len(path)-1])
		if err != nil {
			return nil, err
		}
	}

	originAnn, err := cb.originAnnouncement(path[0])
	if err != nil {
		return nil, err
	}

	asLevel := asLevelPath(path, cb.g)
	asNums := make([]int, len(asLevel))
	for i, s := range asLevel {
		n, _ := strconv.Atoi(s)
		asNums[i] = n
	}
	fullASPath := domain.ASPath(asNums).Concat(originAnn.ASPath)
	egress, externalPeer := findCrossing(path, cb.g)

	info := &domain.PropagatedInfo{
		AnnName:      cb.net,
		Path:         append(Path(nil), path...),
		ASPath:       fullASPath,
		Egress:       egress,
		ExternalPeer: externalPeer,
		Prev:         prev,
	}
	if len(path) == 1 {
		info.ASPathLen = originAnn.ASPathLen
	} else {
		info.Peer = path[len(path)-2]
		info.ASPathLen = len(fullASPath) - 1
	}
	cb.cache[key] = info
	return info, nil
}

func (cb *chainBuilder) originAnnouncement(origin string) (domain.ExternalAnnouncement, error) {
	for _, ann := range cb.g.BGPAdvertise(origin) {
		if ann.Prefix == cb.net {
			return ann, nil
		}
	}
	return domain.ExternalAnnouncement{}, fmt.Errorf("%w: %s has no advertisement for %s", ErrMissingOriginAnnouncement, origin, cb.net)
}

// findCrossing locates the first AS-boundary crossing along path,
// returning the router-side and foreign-side node names, or ("","") if
// path never leaves its origin AS.
func findCrossing(path Path, g *topology.NetworkGraph) (egress, externalPeer string) {
	for i := 1; i < len(path); i++ {
		if g.ASNum(path[i]) != g.ASNum(path[i-1]) {
			return path[i], path[i-1]
		}
	}
	return "", ""
}

// partialEvaluate fills PathsInfo, BlockInfo, OrderInfo, and Origins on
// every router node of dag (spec.md §4.1, "Partial evaluation of
// PropagatedInfo"). Only internal routers get entries — external peers
// never hold a symbolic Announcement of their own.
func partialEvaluate(net string, dag *DAG, g *topology.NetworkGraph) error {
	cb := newChainBuilder(net, g)
	for _, nodeName := range sortedDagNodes(dag) {
		if !g.IsRouter(nodeName) {
			continue
		}
		n := dag.node(nodeName)

		for _, p := range sortedPaths(n.Paths) {
			info, err := cb.build(p)
			if err != nil {
				return err
			}
			n.PathsInfo = append(n.PathsInfo, info)
		}
		for _, p := range sortedPaths(n.Block) {
			info, err := cb.build(p)
			if err != nil {
				return err
			}
			n.BlockInfo = append(n.BlockInfo, info)
		}
		for _, layer := range n.Order {
			var infos []*domain.PropagatedInfo
			for _, p := range layer {
				info, err := cb.build(p)
				if err != nil {
					return err
				}
				infos = append(infos, info)
			}
			n.OrderInfo = append(n.OrderInfo, infos)
		}
	}

	for _, info := range cb.cache {
		if info.Prev == nil {
			continue
		}
		ownerNode, ok := dag.Nodes[info.Node()]
		if !ok {
			continue
		}
		if ownerNode.Origins == nil {
			ownerNode.Origins = map[string]*domain.PropagatedInfo{}
		}
		ownerNode.Origins[info.Key()] = info.Prev
	}
	return nil
}

func sortedPaths(m map[string]Path) []Path {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Path, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
