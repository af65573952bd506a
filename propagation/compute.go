package propagation

import "sort"

// computePropagation traces layers of required paths outward, marking
// every visited node-prefix allowed, then expands to a fixed point:
// any BGP-reachable extension of an already-marked path that isn't
// itself allowed is marked blocked (spec.md §4.1 steps 3 and 5, applied
// uniformly to both the AS-level and router-level views via the
// abstract neighbors function).
func computePropagation(layers [][]Path, neighbors func(string) []string) *DAG {
	dag := newDAG()

	type prefixLayer struct {
		layerIdx int
		prefix   Path
	}
	perNode := map[string][]prefixLayer{}

	for layerIdx, layer := range layers {
		for _, path := range layer {
			for i := range path {
				node := path[i]
				prefix := append(Path(nil), path[:i+1]...)
				dag.node(node).addPath(prefix)
				perNode[node] = append(perNode[node], prefixLayer{layerIdx, prefix})
			}
		}
	}

	for node, entries := range perNode {
		n := dag.node(node)
		byLayer := map[int][]Path{}
		maxLayer := -1
		for _, e := range entries {
			byLayer[e.layerIdx] = append(byLayer[e.layerIdx], e.prefix)
			if e.layerIdx > maxLayer {
				maxLayer = e.layerIdx
			}
		}
		for i := 0; i <= maxLayer; i++ {
			if ps, ok := byLayer[i]; ok {
				n.Order = append(n.Order, dedupePaths(ps))
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, nodeName := range sortedDagNodes(dag) {
			n := dag.node(nodeName)
			candidates := make([]Path, 0, len(n.Paths)+len(n.Block))
			for _, p := range n.Paths {
				candidates = append(candidates, p)
			}
			for _, p := range n.Block {
				candidates = append(candidates, p)
			}
			for _, p := range candidates {
				for _, neigh := range neighbors(nodeName) {
					if containsNode(p, neigh) {
						continue
					}
					extended := append(append(Path(nil), p...), neigh)
					target := dag.node(neigh)
					if target.hasPath(extended) {
						continue
					}
					if _, blocked := target.Block[extended.key()]; blocked {
						continue
					}
					target.addBlock(extended)
					changed = true
				}
			}
		}
	}

	return dag
}

func sortedDagNodes(d *DAG) []string {
	out := make([]string, 0, len(d.Nodes))
	for name := range d.Nodes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func containsNode(p Path, node string) bool {
	for _, n := range p {
		if n == node {
			return true
		}
	}
	return false
}

func dedupePaths(paths []Path) []Path {
	seen := map[string]bool{}
	var out []Path
	for _, p := range paths {
		k := p.key()
		if !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}
	return out
}
