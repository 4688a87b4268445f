package naive

import (
	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boolscc/symbolic"
)

func init() {
	symbolic.DecodeSCV = Decode
}

// wirePair is pair's YAML wire shape.
type wirePair struct {
	State uint64 `yaml:"state"`
	Color uint64 `yaml:"color"`
}

// wireSCV is SCV's YAML wire shape.
type wireSCV struct {
	Members   []wirePair `yaml:"members"`
	ColorOnly bool       `yaml:"color_only"`
}

// MarshalYAML implements yaml.Marshaler.
func (s SCV) MarshalYAML() (interface{}, error) {
	w := wireSCV{ColorOnly: s.colorOnly, Members: make([]wirePair, 0, s.members.Cardinality())}
	s.members.Each(func(p pair) bool {
		w.Members = append(w.Members, wirePair{State: p.state, Color: p.color})
		return false
	})
	return w, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SCV) UnmarshalYAML(value *yaml.Node) error {
	var w wireSCV
	if err := value.Decode(&w); err != nil {
		return err
	}
	members := mapset.NewThreadUnsafeSet[pair]()
	for _, p := range w.Members {
		members.Add(pair{state: p.State, color: p.Color})
	}
	*s = newSCV(members, w.ColorOnly)
	return nil
}

// Decode parses YAML bytes produced by SCV.MarshalYAML back into a
// symbolic.SCV. It is registered as symbolic.DecodeSCV by this package's
// init function.
func Decode(data []byte) (symbolic.SCV, error) {
	var s SCV
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}
