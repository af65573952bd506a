// Package propagation implements the Propagation Builder (C3): turning
// path requirements into per-prefix DAGs of allowed, blocked, and
// ordered router paths, then partially evaluating those paths into
// PropagatedInfo records the BGP Router Encoder consumes.
package propagation

import (
	"strings"

	"github.com/grapefruit0/synet-plus/domain"
)

// Path is an ordered router (or AS-number, stringified) sequence from
// origin to destination.
type Path []string

func (p Path) key() string { return strings.Join(p, ">") }

// Node holds one DAG node's three labeled path sets (spec.md §3,
// "Propagation DAG (per prefix)").
type Node struct {
	Name  string
	Paths map[string]Path // allowed: traffic must be able to follow these
	Block map[string]Path // blocked: traffic must NOT follow these
	Order [][]Path        // layered preference: Order[0] preferred over Order[1], etc.

	PathsInfo []*domain.PropagatedInfo
	BlockInfo []*domain.PropagatedInfo
	OrderInfo [][]*domain.PropagatedInfo

	// Origins maps a PropagatedInfo's Key() at this node to the
	// PropagatedInfo one hop closer to the origin it derives from
	// (spec.md §4.1, "origins mapping").
	Origins map[string]*domain.PropagatedInfo
}

func newNode(name string) *Node {
	return &Node{Name: name, Paths: map[string]Path{}, Block: map[string]Path{}}
}

func (n *Node) addPath(p Path) {
	n.Paths[p.key()] = p
}

func (n *Node) addBlock(p Path) {
	if _, ok := n.Paths[p.key()]; ok {
		return // a node never blocks a path it also allows
	}
	n.Block[p.key()] = p
}

func (n *Node) hasPath(p Path) bool {
	_, ok := n.Paths[p.key()]
	return ok
}

// DAG is one destination prefix's propagation graph: every node the
// traffic class touches, each annotated with its path sets.
type DAG struct {
	Nodes map[string]*Node
}

func newDAG() *DAG {
	return &DAG{Nodes: map[string]*Node{}}
}

func (d *DAG) node(name string) *Node {
	n, ok := d.Nodes[name]
	if !ok {
		n = newNode(name)
		d.Nodes[name] = n
	}
	return n
}
