package propagation

// UnmatchingOrder is one AS-level preference contradiction: two
// requirements disagree about which path should be preferred at Node
// (spec.md §7, UnrealizableOrder).
type UnmatchingOrder struct {
	Net  string
	Node string
	PathA Path
	PathB Path
}

// checkRealizability rejects a node's Order layering when the same
// AS-level path is assigned to more than one preference tier — two
// requirements demanding contradictory relative rankings for it
// (spec.md §4.1 step 4).
func checkRealizability(net string, asDAG *DAG) []UnmatchingOrder {
	var out []UnmatchingOrder
	for _, nodeName := range sortedDagNodes(asDAG) {
		n := asDAG.node(nodeName)
		firstSeenLayer := map[string]int{}
		firstSeenPath := map[string]Path{}
		for layerIdx, layer := range n.Order {
			for _, p := range layer {
				k := p.key()
				if prevLayer, ok := firstSeenLayer[k]; ok {
					if prevLayer != layerIdx {
						out = append(out, UnmatchingOrder{Net: net, Node: nodeName, PathA: firstSeenPath[k], PathB: p})
					}
					continue
				}
				firstSeenLayer[k] = layerIdx
				firstSeenPath[k] = p
			}
		}
	}
	return out
}
