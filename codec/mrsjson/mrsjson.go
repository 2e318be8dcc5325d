// Package mrsjson maps scoped structures onto the dictionary schema with
// relations, constraints, and variables sections.
package mrsjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/semkit/semkit/mrs"
	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/variable"
)

// ErrDecode reports malformed input.
var ErrDecode = errors.New("mrsjson: decode error")

// Option adjusts encoding.
type Option func(*config)

type config struct {
	properties bool
	indent     bool
}

// WithIndent pretty-prints with two-space indentation.
func WithIndent() Option { return func(c *config) { c.indent = true } }

// WithoutProperties suppresses variable properties.
func WithoutProperties() Option { return func(c *config) { c.properties = false } }

type jsonLnk struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type jsonEP struct {
	Label     string            `json:"label"`
	Predicate string            `json:"predicate"`
	Arguments map[string]string `json:"arguments"`
	Lnk       *jsonLnk          `json:"lnk,omitempty"`
	Surface   string            `json:"surface,omitempty"`
	Base      string            `json:"base,omitempty"`
}

// jsonConstraint carries both handle and individual constraints; the
// high/low pair marks the former, left/right the latter.
type jsonConstraint struct {
	Relation string `json:"relation"`
	High     string `json:"high,omitempty"`
	Low      string `json:"low,omitempty"`
	Left     string `json:"left,omitempty"`
	Right    string `json:"right,omitempty"`
}

type jsonVariable struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

type jsonMRS struct {
	Top         string                  `json:"top,omitempty"`
	Index       string                  `json:"index,omitempty"`
	XArg        string                  `json:"xarg,omitempty"`
	Relations   []jsonEP                `json:"relations"`
	Constraints []jsonConstraint        `json:"constraints"`
	Variables   map[string]jsonVariable `json:"variables"`
	Lnk         *jsonLnk                `json:"lnk,omitempty"`
	Surface     string                  `json:"surface,omitempty"`
	Identifier  string                  `json:"identifier,omitempty"`
}

func lnkOut(l sem.Lnk) *jsonLnk {
	if l.IsZero() {
		return nil
	}
	return &jsonLnk{From: l.Cfrom(), To: l.Cto()}
}

func lnkIn(l *jsonLnk) sem.Lnk {
	if l == nil {
		return sem.Lnk{}
	}
	return sem.CharSpan(l.From, l.To)
}

// Encode renders m as JSON.
func Encode(m *mrs.MRS, opts ...Option) ([]byte, error) {
	cfg := config{properties: true}
	for _, o := range opts {
		o(&cfg)
	}

	out := jsonMRS{
		Top:        m.Top,
		Index:      m.Index,
		XArg:       m.XArg,
		Relations:  make([]jsonEP, 0, len(m.Rels)),
		Variables:  make(map[string]jsonVariable, len(m.Variables)),
		Lnk:        lnkOut(m.Lnk),
		Surface:    m.Surface,
		Identifier: m.Identifier,
	}
	for _, ep := range m.Rels {
		args := make(map[string]string, len(ep.Args)+1)
		for role, v := range ep.Args {
			args[role] = v
		}
		if ep.Carg != "" {
			args[sem.ConstantRole] = ep.Carg
		}
		out.Relations = append(out.Relations, jsonEP{
			Label:     ep.Label,
			Predicate: ep.Predicate.Short(),
			Arguments: args,
			Lnk:       lnkOut(ep.Lnk),
			Surface:   ep.Surface,
			Base:      ep.Base,
		})
	}
	out.Constraints = make([]jsonConstraint, 0, len(m.HCons)+len(m.ICons))
	for _, hc := range m.HCons {
		out.Constraints = append(out.Constraints,
			jsonConstraint{Relation: hc.Relation, High: hc.Hi, Low: hc.Lo})
	}
	for _, ic := range m.ICons {
		out.Constraints = append(out.Constraints,
			jsonConstraint{Relation: ic.Relation, Left: ic.Left, Right: ic.Right})
	}
	for v := range m.Variables {
		sort, err := variable.Sort(v)
		if err != nil {
			sort = variable.UnknownSort
		}
		jv := jsonVariable{Type: sort}
		if cfg.properties {
			if props := m.Properties(v); len(props) > 0 {
				jv.Properties = props
			}
		}
		out.Variables[v] = jv
	}

	if cfg.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// Decode parses the dictionary schema.
func Decode(data []byte) (*mrs.MRS, error) {
	var in jsonMRS
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	m := &mrs.MRS{
		Top:        in.Top,
		Index:      in.Index,
		XArg:       in.XArg,
		Variables:  make(map[string]map[string]string, len(in.Variables)),
		Lnk:        lnkIn(in.Lnk),
		Surface:    in.Surface,
		Identifier: in.Identifier,
	}
	for _, rel := range in.Relations {
		ep := mrs.EP{
			Predicate: sem.SurfaceOrAbstract(rel.Predicate),
			Label:     rel.Label,
			Args:      make(map[string]string, len(rel.Arguments)),
			Lnk:       lnkIn(rel.Lnk),
			Surface:   rel.Surface,
			Base:      rel.Base,
		}
		for role, v := range rel.Arguments {
			if role == sem.ConstantRole {
				ep.Carg = v
				continue
			}
			ep.Args[role] = v
		}
		m.Rels = append(m.Rels, ep)
	}
	for _, c := range in.Constraints {
		switch {
		case c.High != "":
			m.HCons = append(m.HCons, mrs.HCons{Hi: c.High, Relation: c.Relation, Lo: c.Low})
		case c.Left != "":
			m.ICons = append(m.ICons, mrs.ICons{Left: c.Left, Relation: c.Relation, Right: c.Right})
		default:
			return nil, fmt.Errorf("%w: constraint with neither high nor left", ErrDecode)
		}
	}
	for v, jv := range in.Variables {
		if jv.Properties != nil {
			m.Variables[v] = jv.Properties
		} else {
			m.Variables[v] = map[string]string{}
		}
	}
	return m, nil
}
