package smtctx

// AnnouncementsContext is an ordered list of symbolic Announcements —
// the Route-Map Encoder's unit of input and output (spec.md §4.2).
// Order is significant: it is how a route-map's output is paired back
// up with the PropagatedInfo each input announcement represents.
type AnnouncementsContext struct {
	Anns []*Announcement
}

// NewAnnouncementsContext wraps anns, preserving order.
func NewAnnouncementsContext(anns []*Announcement) *AnnouncementsContext {
	return &AnnouncementsContext{Anns: anns}
}

// Len returns the number of announcements in this context.
func (a *AnnouncementsContext) Len() int { return len(a.Anns) }
