// Package simpledmrs renders dependency graphs in the line-oriented
// dmrs { ... } notation. The format is for inspection and interchange
// convenience; there is no decoder.
package simpledmrs

import (
	"fmt"
	"strings"

	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/sem"
)

// Option adjusts encoding.
type Option func(*encoder)

// WithIndent places each node and link on its own line.
func WithIndent() Option {
	return func(e *encoder) { e.indent = true }
}

// WithoutProperties suppresses node properties (the type stays).
func WithoutProperties() Option {
	return func(e *encoder) { e.properties = false }
}

type encoder struct {
	properties bool
	indent     bool
}

// Encode renders d in the dmrs { ... } notation.
func Encode(d *dmrs.DMRS, opts ...Option) string {
	e := &encoder{properties: true}
	for _, o := range opts {
		o(e)
	}
	delim, end := " ", " }"
	if e.indent {
		delim, end = "\n  ", "\n}"
	}
	parts := []string{"dmrs {"}
	if attrs := attributes(d); attrs != "" {
		parts = append(parts, attrs)
	}
	for _, n := range d.Nodes {
		parts = append(parts, e.node(n))
	}
	for _, l := range d.Links {
		parts = append(parts, link(l))
	}
	return strings.Join(parts, delim) + end
}

func attributes(d *dmrs.DMRS) string {
	var attrs []string
	if d.Top != 0 {
		attrs = append(attrs, fmt.Sprintf("top=%d", d.Top))
	}
	if d.Index != 0 {
		attrs = append(attrs, fmt.Sprintf("index=%d", d.Index))
	}
	if !d.Lnk.IsZero() {
		attrs = append(attrs, "lnk="+d.Lnk.String())
	}
	if d.Surface != "" {
		attrs = append(attrs, fmt.Sprintf("surface=%q", d.Surface))
	}
	if len(attrs) == 0 {
		return ""
	}
	return "[" + strings.Join(attrs, " ") + "]"
}

func (e *encoder) node(n dmrs.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d [%s", n.ID, n.Predicate)
	if !n.Lnk.IsZero() {
		b.WriteString(n.Lnk.String())
	}
	if n.Carg != "" {
		fmt.Fprintf(&b, "(%q)", n.Carg)
	}
	var sortinfo []string
	if n.Type != "" {
		sortinfo = append(sortinfo, n.Type)
	}
	if e.properties {
		for _, k := range sem.SortedProperties(n.Properties) {
			sortinfo = append(sortinfo, k+"="+n.Properties[k])
		}
	}
	if len(sortinfo) > 0 {
		b.WriteString(" " + strings.Join(sortinfo, " "))
	}
	b.WriteString("];")
	return b.String()
}

func link(l dmrs.Link) string {
	arrow := "->"
	if l.Role == sem.BareEqRole && l.Post == dmrs.EQPost {
		arrow = "--"
	}
	role := l.Role
	if role == sem.BareEqRole {
		role = ""
	}
	return fmt.Sprintf("%d:%s/%s %s %d;", l.Start, role, l.Post, arrow, l.End)
}
