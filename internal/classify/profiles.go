// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"
)

// Built-in profile names.
const (
	ProfileCore     = "core"
	ProfileExtended = "extended"
)

// Area labels used by the built-in profiles.
const (
	AreaArchitecture = "Computer Architecture"
	AreaMLSystems    = "Machine Learning Systems"
	AreaAgents       = "Autonomous Agents"
	AreaMobile       = "Mobile Computing"
	AreaSystems      = "Systems & Software"
	AreaSecurity     = "Security & Privacy"
	AreaNetworking   = "Networking"
)

var (
	architectureVenues = []string{"isca", "micro", "hpca", "asplos"}
	mlVenues           = []string{"mlsys", "neurips", "icml"}
)

// Core is the three-area scheme used by the publications and research pages.
func Core() *Taxonomy {
	return &Taxonomy{
		Name: ProfileCore,
		Areas: []Area{
			{Name: AreaArchitecture, Keywords: []string{
				"architecture", "processor", "cpu", "gpu", "hardware", "memory", "cache",
				"accelerator", "chip", "silicon", "fpga", "asic", "microarchitecture",
				"performance", "energy", "power", "multicore", "parallel", "embedded",
				"mobile", "iot", "edge computing",
			}},
			{Name: AreaMLSystems, Keywords: []string{
				"machine learning", "ml", "deep learning", "neural", "ai", "artificial intelligence",
				"tinyml", "inference", "training", "model", "benchmark", "mlperf",
				"distributed learning", "framework", "system", "edge ai", "dataset",
			}},
			{Name: AreaAgents, Keywords: []string{
				"autonomous", "robot", "robotics", "agent", "uav", "drone", "control",
				"navigation", "planning", "safety", "fault", "real-time", "multi-agent",
				"coordination", "decision making", "embodied", "ros",
			}},
		},
		VenueFallbacks: []VenueRule{
			{Area: AreaArchitecture, Venues: architectureVenues},
			{Area: AreaMLSystems, Venues: mlVenues},
			{Area: AreaAgents, Venues: []string{"icra", "iros", "aamas"}},
		},
		Default: AreaMLSystems,
	}
}

// Extended is the seven-area scheme applied when publications are ingested.
func Extended() *Taxonomy {
	return &Taxonomy{
		Name: ProfileExtended,
		Areas: []Area{
			{Name: AreaMLSystems, Keywords: []string{
				"machine learning", "ml", "deep learning", "neural network", "tinyml", "tiny ml",
				"inference", "training", "model", "mlperf", "benchmark", "ai", "artificial intelligence",
				"federated learning", "distributed learning", "edge ai", "neural", "cnn", "rnn", "transformer",
			}},
			{Name: AreaArchitecture, Keywords: []string{
				"architecture", "processor", "cpu", "gpu", "accelerator", "hardware", "memory",
				"cache", "pipeline", "microarchitecture", "performance", "energy", "power",
				"chip", "silicon", "fpga", "asic", "multicore", "parallel",
			}},
			{Name: AreaAgents, Keywords: []string{
				"autonomous", "robot", "robotics", "agent", "uav", "drone", "vehicle", "navigation",
				"control", "sensing", "perception", "planning", "ros", "operating system",
				"fault", "safety", "reliability", "real-time", "multi-agent", "coordination",
				"decision making", "embodied", "generative", "co-design", "safety-critical",
				"adaptation", "physical interaction", "runtime", "feedback loop",
			}},
			{Name: AreaMobile, Keywords: []string{
				"mobile", "smartphone", "android", "ios", "wireless", "cellular", "wifi",
				"battery", "energy efficient", "low power", "embedded", "iot", "wearable",
				"sensor", "ubiquitous",
			}},
			{Name: AreaSystems, Keywords: []string{
				"system", "software", "operating system", "compiler", "runtime", "framework",
				"distributed", "cloud", "virtualization", "container", "scalability",
				"fault tolerance", "debugging", "testing",
			}},
			{Name: AreaSecurity, Keywords: []string{
				"security", "privacy", "encryption", "attack", "vulnerability", "threat",
				"authentication", "authorization", "cryptography", "secure", "protection",
			}},
			{Name: AreaNetworking, Keywords: []string{
				"network", "networking", "protocol", "communication", "internet", "tcp",
				"udp", "routing", "congestion", "bandwidth", "latency", "wireless network",
			}},
		},
		VenueFallbacks: []VenueRule{
			{Area: AreaArchitecture, Venues: architectureVenues},
			{Area: AreaMLSystems, Venues: mlVenues},
			{Area: AreaMobile, Venues: []string{"mobicom", "mobisys", "sensys"}},
			{Area: AreaSystems, Venues: []string{"sosp", "osdi", "usenix"}},
		},
		Default: AreaSystems,
	}
}

// Registry holds taxonomy profiles by name.
type Registry struct {
	profiles map[string]*Taxonomy
}

// NewRegistry returns a registry preloaded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Taxonomy)}
	r.Add(Core())
	r.Add(Extended())
	return r
}

// Add registers t, replacing any profile with the same name.
func (r *Registry) Add(t *Taxonomy) {
	r.profiles[t.Name] = t
}

// Profile returns the taxonomy registered under name.
func (r *Registry) Profile(name string) (*Taxonomy, error) {
	t, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown taxonomy profile %q (available: %v)", name, r.Names())
	}
	return t, nil
}

// Names returns the registered profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// taxonomyFile is the on-disk form of additional profiles.
type taxonomyFile struct {
	Profiles []Taxonomy `yaml:"profiles"`
}

// LoadFile reads profiles from a YAML file and registers them. A profile
// named like a built-in one replaces it.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading taxonomy file: %w", err)
	}
	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parsing taxonomy file: %w", err)
	}
	for i := range tf.Profiles {
		t := tf.Profiles[i]
		if err := t.Validate(); err != nil {
			return fmt.Errorf("taxonomy file %s: %w", path, err)
		}
		r.Add(&t)
	}
	return nil
}

// Validate checks that the taxonomy is usable: it has a name, at least one
// area, a default, and fallback rules that name known areas.
func (t *Taxonomy) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(t.Areas) == 0 {
		return fmt.Errorf("profile %q has no areas", t.Name)
	}
	if t.Default == "" {
		return fmt.Errorf("profile %q has no default area", t.Name)
	}
	known := make(map[string]bool, len(t.Areas))
	for _, a := range t.Areas {
		known[a.Name] = true
	}
	for _, rule := range t.VenueFallbacks {
		if !known[rule.Area] {
			return fmt.Errorf("profile %q: venue fallback names unknown area %q", t.Name, rule.Area)
		}
	}
	return nil
}
