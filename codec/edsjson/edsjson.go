// Package edsjson maps bare dependency graphs onto the dictionary schema
// with a top id and a nodes object keyed by node id.
package edsjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/semkit/semkit/eds"
	"github.com/semkit/semkit/sem"
)

// ErrDecode reports malformed input.
var ErrDecode = errors.New("edsjson: decode error")

// Option adjusts encoding.
type Option func(*config)

type config struct {
	properties bool
	indent     bool
}

// WithIndent pretty-prints with two-space indentation.
func WithIndent() Option { return func(c *config) { c.indent = true } }

// WithoutProperties suppresses node type and properties.
func WithoutProperties() Option { return func(c *config) { c.properties = false } }

type jsonLnk struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type jsonNode struct {
	Label      string            `json:"label"`
	Edges      map[string]string `json:"edges"`
	Lnk        *jsonLnk          `json:"lnk,omitempty"`
	Type       string            `json:"type,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Carg       string            `json:"carg,omitempty"`
}

type jsonEDS struct {
	Top   string              `json:"top"`
	Nodes map[string]jsonNode `json:"nodes"`
}

// Encode renders e as JSON.
func Encode(e *eds.EDS, opts ...Option) ([]byte, error) {
	cfg := config{properties: true}
	for _, o := range opts {
		o(&cfg)
	}
	out := jsonEDS{Top: e.Top, Nodes: make(map[string]jsonNode, len(e.Nodes))}
	for _, n := range e.Nodes {
		jn := jsonNode{
			Label: n.Predicate.Short(),
			Edges: n.Edges,
			Carg:  n.Carg,
		}
		if !n.Lnk.IsZero() {
			jn.Lnk = &jsonLnk{From: n.Lnk.Cfrom(), To: n.Lnk.Cto()}
		}
		if cfg.properties {
			jn.Type = n.Type
			if len(n.Properties) > 0 {
				jn.Properties = n.Properties
			}
		}
		if jn.Edges == nil {
			jn.Edges = map[string]string{}
		}
		out.Nodes[n.ID] = jn
	}
	if cfg.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// Decode parses the dictionary schema. Nodes are ordered by alignment
// start, then by descending span length, as the object form has no order
// of its own.
func Decode(data []byte) (*eds.EDS, error) {
	var in jsonEDS
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	e := &eds.EDS{Top: in.Top}
	for id, jn := range in.Nodes {
		n := eds.Node{
			ID:         id,
			Predicate:  sem.SurfaceOrAbstract(jn.Label),
			Edges:      jn.Edges,
			Type:       jn.Type,
			Properties: jn.Properties,
			Carg:       jn.Carg,
		}
		if n.Edges == nil {
			n.Edges = map[string]string{}
		}
		if jn.Lnk != nil {
			n.Lnk = sem.CharSpan(jn.Lnk.From, jn.Lnk.To)
		}
		e.Nodes = append(e.Nodes, n)
	}
	sort.SliceStable(e.Nodes, func(i, j int) bool {
		a, b := e.Nodes[i], e.Nodes[j]
		if a.Lnk.Cfrom() != b.Lnk.Cfrom() {
			return a.Lnk.Cfrom() < b.Lnk.Cfrom()
		}
		if a.Lnk.Cto() != b.Lnk.Cto() {
			return a.Lnk.Cto() > b.Lnk.Cto()
		}
		return a.ID < b.ID
	})
	return e, nil
}
