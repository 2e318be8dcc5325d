// Package dmrsjson maps dependency graphs onto the dictionary schema with
// nodes and links sections; link roles use the rargname key and the node
// type travels inside sortinfo under cvarsort.
package dmrsjson

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/sem"
)

// ErrDecode reports malformed input.
var ErrDecode = errors.New("dmrsjson: decode error")

// Option adjusts encoding.
type Option func(*config)

type config struct {
	properties bool
	indent     bool
}

// WithIndent pretty-prints with two-space indentation.
func WithIndent() Option { return func(c *config) { c.indent = true } }

// WithoutProperties suppresses node properties (cvarsort stays).
func WithoutProperties() Option { return func(c *config) { c.properties = false } }

type jsonLnk struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type jsonNode struct {
	NodeID    int               `json:"nodeid"`
	Predicate string            `json:"predicate"`
	Lnk       *jsonLnk          `json:"lnk,omitempty"`
	SortInfo  map[string]string `json:"sortinfo,omitempty"`
	Surface   string            `json:"surface,omitempty"`
	Base      string            `json:"base,omitempty"`
	Carg      string            `json:"carg,omitempty"`
}

type jsonLink struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	RargName string `json:"rargname"`
	Post     string `json:"post"`
}

type jsonDMRS struct {
	Top        int        `json:"top,omitempty"`
	Index      int        `json:"index,omitempty"`
	Nodes      []jsonNode `json:"nodes"`
	Links      []jsonLink `json:"links"`
	Lnk        *jsonLnk   `json:"lnk,omitempty"`
	Surface    string     `json:"surface,omitempty"`
	Identifier string     `json:"identifier,omitempty"`
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

// Encode renders d as JSON.
func Encode(d *dmrs.DMRS, opts ...Option) ([]byte, error) {
	cfg := config{properties: true}
	for _, o := range opts {
		o(&cfg)
	}
	out := jsonDMRS{
		Top:        d.Top,
		Index:      d.Index,
		Nodes:      make([]jsonNode, 0, len(d.Nodes)),
		Links:      make([]jsonLink, 0, len(d.Links)),
		Lnk:        lnkOut(d.Lnk),
		Surface:    d.Surface,
		Identifier: d.Identifier,
	}
	for _, n := range d.Nodes {
		jn := jsonNode{
			NodeID:    n.ID,
			Predicate: n.Predicate.Short(),
			Lnk:       lnkOut(n.Lnk),
			Surface:   n.Surface,
			Base:      n.Base,
			Carg:      n.Carg,
		}
		sortinfo := map[string]string{}
		if n.Type != "" {
			sortinfo[dmrs.CvarSort] = n.Type
		}
		if cfg.properties {
			for k, v := range n.Properties {
				sortinfo[k] = v
			}
		}
		if len(sortinfo) > 0 {
			jn.SortInfo = sortinfo
		}
		out.Nodes = append(out.Nodes, jn)
	}
	for _, l := range d.Links {
		out.Links = append(out.Links, jsonLink{
			From: l.Start, To: l.End, RargName: l.Role, Post: l.Post,
		})
	}
	if cfg.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

// Decode parses the dictionary schema.
func Decode(data []byte) (*dmrs.DMRS, error) {
	var in jsonDMRS
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	d := &dmrs.DMRS{
		Top:        in.Top,
		Index:      in.Index,
		Lnk:        lnkIn(in.Lnk),
		Surface:    in.Surface,
		Identifier: in.Identifier,
	}
	for _, jn := range in.Nodes {
		n := dmrs.Node{
			ID:         jn.NodeID,
			Predicate:  sem.SurfaceOrAbstract(jn.Predicate),
			Properties: map[string]string{},
			Lnk:        lnkIn(jn.Lnk),
			Surface:    jn.Surface,
			Base:       jn.Base,
			Carg:       jn.Carg,
		}
		for k, v := range jn.SortInfo {
			if k == dmrs.CvarSort {
				n.Type = v
				continue
			}
			n.Properties[k] = v
		}
		d.Nodes = append(d.Nodes, n)
	}
	for _, jl := range in.Links {
		d.Links = append(d.Links, dmrs.Link{
			Start: jl.From, End: jl.To, Role: jl.RargName, Post: jl.Post,
		})
	}
	return d, nil
}
