package semi

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// The compiled form flattens property constraints to [name, value] pairs
// so declaration order survives the round trip.

type yamlSemI struct {
	Variables  map[string]yamlVariable  `yaml:"variables,omitempty"`
	Properties map[string]yamlProperty  `yaml:"properties,omitempty"`
	Roles      map[string]yamlRole      `yaml:"roles,omitempty"`
	Predicates map[string]yamlPredicate `yaml:"predicates,omitempty"`
}

type yamlVariable struct {
	Parents    []string   `yaml:"parents,omitempty"`
	Properties [][]string `yaml:"properties,omitempty"`
}

type yamlProperty struct {
	Parents []string `yaml:"parents,omitempty"`
}

type yamlRole struct {
	Value string `yaml:"value"`
}

type yamlPredicate struct {
	Parents  []string         `yaml:"parents,omitempty"`
	Synopses [][]yamlSynopsis `yaml:"synopses,omitempty"`
}

type yamlSynopsis struct {
	Role       string     `yaml:"role"`
	Value      string     `yaml:"value"`
	Properties [][]string `yaml:"properties,omitempty"`
	Optional   bool       `yaml:"optional,omitempty"`
}

// EncodeYAML renders the compiled form of s.
func EncodeYAML(s *SemI) ([]byte, error) {
	out := yamlSemI{
		Variables:  make(map[string]yamlVariable, len(s.Variables)),
		Properties: make(map[string]yamlProperty, len(s.Properties)),
		Roles:      make(map[string]yamlRole, len(s.Roles)),
		Predicates: make(map[string]yamlPredicate, len(s.Predicates)),
	}
	for name, v := range s.Variables {
		out.Variables[name] = yamlVariable{Parents: v.Parents, Properties: pairs(v.Properties)}
	}
	for name, p := range s.Properties {
		out.Properties[name] = yamlProperty{Parents: p.Parents}
	}
	for name, r := range s.Roles {
		out.Roles[name] = yamlRole{Value: r.Value}
	}
	for name, p := range s.Predicates {
		yp := yamlPredicate{Parents: p.Parents}
		for _, syn := range p.Synopses {
			var ys []yamlSynopsis
			for _, slot := range syn {
				ys = append(ys, yamlSynopsis{
					Role:       slot.Role,
					Value:      slot.Value,
					Properties: pairs(slot.Properties),
					Optional:   slot.Optional,
				})
			}
			yp.Synopses = append(yp.Synopses, ys)
		}
		out.Predicates[name] = yp
	}
	return yaml.Marshal(out)
}

// DecodeYAML rebuilds a SemI from its compiled form.
func DecodeYAML(data []byte) (*SemI, error) {
	var in yamlSemI
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	s := &SemI{
		Variables:  make(map[string]Variable, len(in.Variables)),
		Properties: make(map[string]Property, len(in.Properties)),
		Roles:      make(map[string]Role, len(in.Roles)),
		Predicates: make(map[string]Predicate, len(in.Predicates)),
	}
	for name, v := range in.Variables {
		props, err := unpairs(v.Properties)
		if err != nil {
			return nil, err
		}
		s.Variables[name] = Variable{Parents: v.Parents, Properties: props}
	}
	for name, p := range in.Properties {
		s.Properties[name] = Property{Parents: p.Parents}
	}
	for name, r := range in.Roles {
		s.Roles[name] = Role{Value: r.Value}
	}
	for name, p := range in.Predicates {
		entry := Predicate{Parents: p.Parents}
		for _, ys := range p.Synopses {
			var syn Synopsis
			for _, slot := range ys {
				props, err := unpairs(slot.Properties)
				if err != nil {
					return nil, err
				}
				syn = append(syn, SynopsisRole{
					Role:       slot.Role,
					Value:      slot.Value,
					Properties: props,
					Optional:   slot.Optional,
				})
			}
			entry.Synopses = append(entry.Synopses, syn)
		}
		s.Predicates[name] = entry
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

func pairs(props []PropertyConstraint) [][]string {
	var out [][]string
	for _, p := range props {
		out = append(out, []string{p.Name, p.Value})
	}
	return out
}

func unpairs(raw [][]string) ([]PropertyConstraint, error) {
	var props []PropertyConstraint
	for _, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: property pair %v", ErrDecode, pair)
		}
		props = append(props, PropertyConstraint{Name: pair[0], Value: pair[1]})
	}
	return props, nil
}
