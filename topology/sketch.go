package topology

// Kind distinguishes a sketch field that was never set by the operator
// from one pinned to a concrete value and from one explicitly marked
// as a synthesis hole (glossary: Hole / VALUENOTSET).
type Kind int

const (
	// Absent means the sketch never mentions this field: OSPF is
	// disabled on the edge, or no router-ID scheme was configured.
	Absent Kind = iota
	// ConcreteKind means the operator pinned a known value.
	ConcreteKind
	// HoleKind means the operator explicitly asked the solver to pick
	// a value.
	HoleKind
)

// Sketch holds one topology field that may be concrete, a hole, or
// entirely absent, mirroring the three-way absent/symbolic/concrete
// split spec.md §6 requires for router IDs, OSPF costs, and route-map
// line access.
type Sketch[T any] struct {
	Kind Kind
	Val  T
}

// ConcreteValue builds a pinned Sketch.
func ConcreteValue[T any](v T) Sketch[T] { return Sketch[T]{Kind: ConcreteKind, Val: v} }

// HoleValue builds a Sketch explicitly marked as a hole for the
// solver to fill in.
func HoleValue[T any]() Sketch[T] { return Sketch[T]{Kind: HoleKind} }

// IsAbsent reports whether the sketch field was never set.
func (s Sketch[T]) IsAbsent() bool { return s.Kind == Absent }

// IsHole reports whether the sketch field is a synthesis hole.
func (s Sketch[T]) IsHole() bool { return s.Kind == HoleKind }

// IsConcrete reports whether the sketch field is a pinned value.
func (s Sketch[T]) IsConcrete() bool { return s.Kind == ConcreteKind }
