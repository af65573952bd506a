// Package synetconfig loads an operator's topology, requirement, and
// external-announcement sketch from YAML into the types the rest of
// the pipeline consumes (topology.NetworkGraph, domain.Req,
// domain.ExternalAnnouncement), validating the decoded structs before
// any encoding begins (spec.md §6, "Input configuration").
package synetconfig

import "github.com/grapefruit0/synet-plus/topology"

// hole is the YAML sentinel an operator writes in place of a value to
// mark a field as a synthesis hole (glossary: VALUENOTSET). In a
// string field any other string is read as concrete; int and bool
// fields reject any other string.
const hole = "HOLE"

// intSketch decodes either a concrete integer or the hole sentinel.
// YAML numbers and the string "HOLE" both unmarshal into this via
// UnmarshalYAML below.
type intSketch struct {
	set   bool
	isHole bool
	val   int
}

func (s *intSketch) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	s.set = true
	switch v := raw.(type) {
	case string:
		if v == hole {
			s.isHole = true
			return nil
		}
		return errBadSketch("int", v)
	case int:
		s.val = v
	default:
		return errBadSketch("int", raw)
	}
	return nil
}

func (s intSketch) toSketch() topology.Sketch[int] {
	switch {
	case !s.set:
		return topology.Sketch[int]{}
	case s.isHole:
		return topology.HoleValue[int]()
	default:
		return topology.ConcreteValue(s.val)
	}
}

// stringSketch is the string analogue of intSketch, used for
// next-hop and similar string-valued holes.
type stringSketch struct {
	set    bool
	isHole bool
	val    string
}

func (s *stringSketch) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	s.set = true
	if raw == hole {
		s.isHole = true
		return nil
	}
	s.val = raw
	return nil
}

func (s stringSketch) toSketch() topology.Sketch[string] {
	switch {
	case !s.set:
		return topology.Sketch[string]{}
	case s.isHole:
		return topology.HoleValue[string]()
	default:
		return topology.ConcreteValue(s.val)
	}
}

// accessSketch decodes "permit", "deny", or "HOLE" into a
// topology.Sketch[topology.Access].
type accessSketch struct {
	set    bool
	isHole bool
	val    topology.Access
}

func (s *accessSketch) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	s.set = true
	switch raw {
	case hole:
		s.isHole = true
	case "permit":
		s.val = topology.AccessPermit
	case "deny":
		s.val = topology.AccessDeny
	default:
		return errBadSketch("access", raw)
	}
	return nil
}

func (s accessSketch) toSketch() topology.Sketch[topology.Access] {
	switch {
	case !s.set:
		return topology.Sketch[topology.Access]{}
	case s.isHole:
		return topology.HoleValue[topology.Access]()
	default:
		return topology.ConcreteValue(s.val)
	}
}

// boolSketch is the boolean analogue, used for community flags.
type boolSketch struct {
	set    bool
	isHole bool
	val    bool
}

func (s *boolSketch) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	s.set = true
	switch v := raw.(type) {
	case string:
		if v != hole {
			return errBadSketch("bool", v)
		}
		s.isHole = true
	case bool:
		s.val = v
	default:
		return errBadSketch("bool", raw)
	}
	return nil
}

func (s boolSketch) toSketch() topology.Sketch[bool] {
	switch {
	case !s.set:
		return topology.Sketch[bool]{}
	case s.isHole:
		return topology.HoleValue[bool]()
	default:
		return topology.ConcreteValue(s.val)
	}
}
