package smtctx

// Var is a symbolic variable owned by a SolverContext. A Var created
// with a known Value is concrete for the lifetime of the context;
// otherwise it is a hole the backend must assign during solving.
// Variables are never mutated once created — a route-map line that
// "changes" an attribute produces a brand new Var equated to the old
// one via a registered constraint (spec.md §3, Lifecycle).
type Var struct {
	Name     string
	Sort     Sort
	Value    interface{} // nil if symbolic; else bool, int, or string (enum member)
	Resolved interface{} // filled in by SolverContext.Resolve after a model is read
}

// IsConcrete reports whether this Var was created with a fixed value
// and therefore never needs solving.
func (v *Var) IsConcrete() bool {
	return v.Value != nil
}

// Ref returns an Expr referring to this variable.
func (v *Var) Ref() Expr { return VarRef{V: v} }

// BoolValue returns the resolved or concrete boolean value of v, or
// false when v has neither. Used once a model has been read.
func (v *Var) BoolValue() bool {
	if b, ok := v.Resolved.(bool); ok {
		return b
	}
	if b, ok := v.Value.(bool); ok {
		return b
	}
	return false
}

// IntValue returns the concrete integer value of v.
func (v *Var) IntValue() int {
	if i, ok := v.Resolved.(int); ok {
		return i
	}
	if i, ok := v.Value.(int); ok {
		return i
	}
	return 0
}

// EnumValue returns the concrete enum member name of v.
func (v *Var) EnumValue() string {
	if s, ok := v.Resolved.(string); ok {
		return s
	}
	if s, ok := v.Value.(string); ok {
		return s
	}
	return ""
}
