package synetconfig

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/grapefruit0/synet-plus/domain"
	"github.com/grapefruit0/synet-plus/topology"
)

func errBadSketch(kind string, v interface{}) error {
	return fmt.Errorf("synetconfig: %v is not a valid %s sketch (want a concrete value or %q)", v, kind, hole)
}

// Sketch is the root of an operator's YAML input: the network
// topology, the requirements to synthesize against, and any
// external-announcement overrides.
type Sketch struct {
	Communities []string        `yaml:"communities" description:"every community this topology may reference"`
	Routers     []routerSketch  `yaml:"routers" validate:"required,dive"`
	Peers       []peerSketch    `yaml:"peers" validate:"dive"`
	Edges       []edgeSketch    `yaml:"edges" validate:"dive"`
	Requirements []reqSketch    `yaml:"requirements" validate:"dive"`
}

type routerSketch struct {
	Name       string            `yaml:"name" validate:"required"`
	ASN        int               `yaml:"asn" validate:"required"`
	Loopback   string            `yaml:"loopback" validate:"required,ip"`
	RouterID   intSketch         `yaml:"router_id"`
	Neighbors  []string          `yaml:"neighbors"`
	ImportMap  map[string]string `yaml:"import_route_maps"`
	ExportMap  map[string]string `yaml:"export_route_maps"`
	RouteMaps  []routeMapSketch  `yaml:"route_maps" validate:"dive"`
	PrefixLists    []prefixListSketch    `yaml:"prefix_lists" validate:"dive"`
	CommunityLists []communityListSketch `yaml:"community_lists" validate:"dive"`
}

type peerSketch struct {
	Name      string                        `yaml:"name" validate:"required"`
	ASN       int                           `yaml:"asn" validate:"required"`
	Loopback  string                        `yaml:"loopback" validate:"required,ip"`
	Neighbors []string                      `yaml:"neighbors"`
	Advertise []externalAnnouncementSketch  `yaml:"advertise" validate:"dive"`
}

type edgeSketch struct {
	A    string    `yaml:"a" validate:"required"`
	B    string    `yaml:"b" validate:"required"`
	Cost intSketch `yaml:"cost"`
}

type externalAnnouncementSketch struct {
	Prefix      string          `yaml:"prefix" validate:"required,cidr"`
	Origin      string          `yaml:"origin" default:"INCOMPLETE"`
	ASPath      []int           `yaml:"as_path"`
	NextHop     string          `yaml:"next_hop"`
	LocalPref   int             `yaml:"local_pref" default:"100"`
	MED         int             `yaml:"med"`
	Communities []string        `yaml:"communities"`
	Permitted   bool            `yaml:"permitted" default:"true"`
}

type routeMapSketch struct {
	Name  string          `yaml:"name" validate:"required"`
	Lines []routeMapLineSketch `yaml:"lines" validate:"dive"`
}

type routeMapLineSketch struct {
	LineNo  int            `yaml:"line" validate:"required"`
	Access  accessSketch   `yaml:"access"`
	Matches []matchSketch  `yaml:"matches" validate:"dive"`
	Actions []actionSketch `yaml:"actions" validate:"dive"`
}

type matchSketch struct {
	NextHop           *stringSketch `yaml:"next_hop"`
	CommunitiesList   string        `yaml:"communities_list"`
	IPPrefixList      string        `yaml:"ip_prefix_list"`
}

type actionSketch struct {
	SetLocalPref *intSketch    `yaml:"set_local_pref"`
	SetMED       *intSketch    `yaml:"set_med"`
	SetNextHop   *stringSketch `yaml:"set_next_hop"`
	SetCommunity string        `yaml:"set_community"`
	CommunityValue *boolSketch `yaml:"community_value"`
}

type prefixListSketch struct {
	Name     string   `yaml:"name" validate:"required"`
	Prefixes []string `yaml:"prefixes"`
}

type communityListSketch struct {
	Name        string   `yaml:"name" validate:"required"`
	Communities []string `yaml:"communities"`
}

type reqSketch struct {
	Kind     string      `yaml:"kind" validate:"required,oneof=path order kconnected"`
	Protocol string      `yaml:"protocol" default:"BGP" validate:"oneof=BGP OSPF"`
	Dst      string      `yaml:"dst" validate:"required"`
	Strict   bool        `yaml:"strict"`
	Path     []string    `yaml:"path"`
	Children []reqSketch `yaml:"children" validate:"dive"`
}

// Load reads, defaults, validates, and decodes path into a Sketch,
// then converts it into a NetworkGraph (external announcements
// included) plus the requirement and community lists the orchestrator
// needs. Validation
// failures are returned before any graph construction happens, so a
// malformed sketch fails fast with field-level errors instead of a
// panic mid-encode.
func Load(path string) (*topology.NetworkGraph, []domain.Req, []domain.Community, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("synetconfig: reading %s: %w", path, err)
	}

	var sk Sketch
	if err := yaml.Unmarshal(raw, &sk); err != nil {
		return nil, nil, nil, fmt.Errorf("synetconfig: parsing %s: %w", path, err)
	}
	if err := defaults.Set(&sk); err != nil {
		return nil, nil, nil, fmt.Errorf("synetconfig: applying defaults: %w", err)
	}
	if err := validator.New().Struct(&sk); err != nil {
		return nil, nil, nil, fmt.Errorf("synetconfig: validating %s: %w", path, err)
	}

	graph, err := buildGraph(&sk)
	if err != nil {
		return nil, nil, nil, err
	}

	reqs := make([]domain.Req, 0, len(sk.Requirements))
	for _, r := range sk.Requirements {
		reqs = append(reqs, buildReq(r))
	}

	communities := make([]domain.Community, 0, len(sk.Communities))
	for _, c := range sk.Communities {
		communities = append(communities, domain.Community(c))
	}

	return graph, reqs, communities, nil
}
