package routemap

import (
	"fmt"

	"github.com/grapefruit0/synet-plus/topology"
)

// Materialize walks rmap's lines and returns a copy with every HOLE
// access and action resolved to the concrete value recovered from this
// Encoder's cached line-scoped Vars. Matches are copied unchanged.
// A hole never exercised by any announcement this run
// encoded keeps its HOLE marker — nothing constrained it, so nothing in
// the solved model says what it should be.
func (e *Encoder) Materialize(rmap *topology.RouteMap) *topology.RouteMap {
	out := &topology.RouteMap{Name: rmap.Name, Lines: make([]topology.RouteMapLine, len(rmap.Lines))}
	for i, line := range rmap.Lines {
		out.Lines[i] = e.materializeLine(rmap.Name, line)
	}
	return out
}

func (e *Encoder) materializeLine(rmapName string, line topology.RouteMapLine) topology.RouteMapLine {
	lineKey := fmt.Sprintf("%s_line%d", rmapName, line.LineNo)
	out := line

	if line.Access.IsHole() {
		if v, ok := e.lineHoles[lineKey+"_access_hole"]; ok && v.Resolved != nil {
			if v.BoolValue() {
				out.Access = topology.ConcreteValue(topology.AccessPermit)
			} else {
				out.Access = topology.ConcreteValue(topology.AccessDeny)
			}
		}
	}

	if len(line.Actions) > 0 {
		out.Actions = make([]topology.Action, len(line.Actions))
		for i, a := range line.Actions {
			out.Actions[i] = e.materializeAction(a, lineKey)
		}
	}
	return out
}

func (e *Encoder) materializeAction(a topology.Action, lineKey string) topology.Action {
	switch action := a.(type) {
	case topology.ActionSetLocalPref:
		if !action.Value.IsHole() {
			return a
		}
		if v, ok := e.lineHoles[lineKey+"_set_local_pref"]; ok && v.Resolved != nil {
			return topology.ActionSetLocalPref{Value: topology.ConcreteValue(v.IntValue())}
		}
	case topology.ActionSetMED:
		if !action.Value.IsHole() {
			return a
		}
		if v, ok := e.lineHoles[lineKey+"_set_med"]; ok && v.Resolved != nil {
			return topology.ActionSetMED{Value: topology.ConcreteValue(v.IntValue())}
		}
	case topology.ActionSetNextHop:
		if !action.Value.IsHole() {
			return a
		}
		if v, ok := e.lineHoles[lineKey+"_set_next_hop"]; ok && v.Resolved != nil {
			return topology.ActionSetNextHop{Value: topology.ConcreteValue(v.EnumValue())}
		}
	case topology.ActionSetCommunity:
		if !action.Value.IsHole() {
			return a
		}
		key := lineKey + "_set_comm_" + string(action.Community)
		if v, ok := e.lineHoles[key]; ok && v.Resolved != nil {
			return topology.ActionSetCommunity{Community: action.Community, Value: topology.ConcreteValue(v.BoolValue())}
		}
	}
	return a
}
