package bgpencoder

import (
	"fmt"
	"sort"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/smtctx"
)

// CreateAnnouncements allocates one symbolic Announcement per
// PropagatedInfo this router holds (phase 1 of the two-phase
// orchestration design — spec.md §4.3 step 1, §9). Must run for every
// router before any router's WireImports runs.
func (e *Encoder) CreateAnnouncements() {
	for _, key := range e.sortedInfoKeys() {
		info := e.info[key]
		e.anns[key] = e.createOne(info)
	}
}

func (e *Encoder) createOne(info *domain.PropagatedInfo) *smtctx.Announcement {
	fixed := smtctx.FixedAttrs{
		Prefix:    info.AnnName,
		Peer:      info.Peer,
		Origin:    "EBGP",
		ASPathKey: info.ASPath.Key(),
		ASPathLen: intPtr(info.ASPathLen),
	}

	if info.SelfOriginated() {
		// Every registered community starts false; the operator's
		// announcement, when there is one, overrides its own entries.
		comms := map[domain.Community]bool{}
		for _, c := range e.ctx.Communities() {
			comms[c] = false
		}
		fixed.Communities = comms
		if ann, ok := e.originAnnouncement(info.AnnName); ok {
			fixed.LocalPref = intPtr(ann.LocalPref)
			fixed.Med = intPtr(ann.MED)
			for c, v := range ann.Communities {
				comms[c] = v
			}
			switch ann.Origin {
			case domain.OriginIGP:
				fixed.Origin = "IGP"
			case domain.OriginIncomplete:
				fixed.Origin = "INCOMPLETE"
			default:
				fixed.Origin = "EBGP"
			}
		}
	}

	name := fmt.Sprintf("%s_%s_%s", e.Router, info.AnnName, info.Key())
	return e.ctx.NewAnnouncement(fixed, name)
}

func (e *Encoder) originAnnouncement(net string) (domain.ExternalAnnouncement, bool) {
	for _, ann := range e.graph.BGPAdvertise(e.Router) {
		if ann.Prefix == net {
			return ann, true
		}
	}
	return domain.ExternalAnnouncement{}, false
}

func (e *Encoder) sortedInfoKeys() []string {
	keys := make([]string, 0, len(e.info))
	for k := range e.info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func intPtr(i int) *int { return &i }
