package main

import (
	"bytes"
	"fmt"

	"github.com/semkit/semkit"
	"github.com/semkit/semkit/codec/dmrsjson"
	"github.com/semkit/semkit/codec/dmrx"
	"github.com/semkit/semkit/codec/edsjson"
	"github.com/semkit/semkit/codec/edsnative"
	"github.com/semkit/semkit/codec/indexedmrs"
	"github.com/semkit/semkit/codec/mrsjson"
	"github.com/semkit/semkit/codec/simpledmrs"
	"github.com/semkit/semkit/codec/simplemrs"
	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/eds"
	"github.com/semkit/semkit/mrs"
	"github.com/semkit/semkit/sem"
	"github.com/semkit/semkit/semi"
)

type encodeOpts struct {
	indent     bool
	properties bool
	modifiers  bool
}

// format binds a codec to the canonical scoped graph. A nil decode means
// the format cannot be a conversion source (the bare-dependency formats
// are lossy one-way projections); a nil encode means it cannot be a
// target. check is the syntax-only pass the validate command uses.
type format struct {
	extension string
	decode    func(data []byte, si *semi.SemI) ([]*sem.ScopedGraph, error)
	encode    func(gs []*sem.ScopedGraph, si *semi.SemI, o encodeOpts) ([]byte, error)
	check     func(data []byte, si *semi.SemI) error
}

var formats = map[string]*format{
	"simplemrs": {
		extension: ".mrs",
		decode: func(data []byte, _ *semi.SemI) ([]*sem.ScopedGraph, error) {
			ms, err := simplemrs.DecodeAll(string(data))
			if err != nil {
				return nil, err
			}
			return scopeMRS(ms)
		},
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			ms, err := unscopeMRS(gs)
			if err != nil {
				return nil, err
			}
			return []byte(simplemrs.EncodeAll(ms, simplemrsOptions(o)...)), nil
		},
	},
	"indexedmrs": {
		extension: ".imrs",
		decode: func(data []byte, si *semi.SemI) ([]*sem.ScopedGraph, error) {
			if si == nil {
				return nil, errNoSemI
			}
			ms, err := indexedmrs.DecodeAll(string(data), si)
			if err != nil {
				return nil, err
			}
			return scopeMRS(ms)
		},
		encode: func(gs []*sem.ScopedGraph, si *semi.SemI, o encodeOpts) ([]byte, error) {
			if si == nil {
				return nil, errNoSemI
			}
			ms, err := unscopeMRS(gs)
			if err != nil {
				return nil, err
			}
			s, err := indexedmrs.EncodeAll(ms, si, indexedmrsOptions(o)...)
			if err != nil {
				return nil, err
			}
			return []byte(s), nil
		},
	},
	"mrsjson": {
		extension: ".mrs.json",
		decode: func(data []byte, _ *semi.SemI) ([]*sem.ScopedGraph, error) {
			m, err := mrsjson.Decode(data)
			if err != nil {
				return nil, err
			}
			return scopeMRS([]*mrs.MRS{m})
		},
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			ms, err := unscopeMRS(gs)
			if err != nil {
				return nil, err
			}
			var docs [][]byte
			for _, m := range ms {
				doc, err := mrsjson.Encode(m, mrsjsonOptions(o)...)
				if err != nil {
					return nil, err
				}
				docs = append(docs, doc)
			}
			return bytes.Join(docs, []byte("\n")), nil
		},
	},
	"dmrsjson": {
		extension: ".dmrs.json",
		decode: func(data []byte, _ *semi.SemI) ([]*sem.ScopedGraph, error) {
			d, err := dmrsjson.Decode(data)
			if err != nil {
				return nil, err
			}
			return scopeDMRS([]*dmrs.DMRS{d})
		},
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			ds, err := unscopeDMRS(gs)
			if err != nil {
				return nil, err
			}
			var docs [][]byte
			for _, d := range ds {
				doc, err := dmrsjson.Encode(d, dmrsjsonOptions(o)...)
				if err != nil {
					return nil, err
				}
				docs = append(docs, doc)
			}
			return bytes.Join(docs, []byte("\n")), nil
		},
	},
	"dmrx": {
		extension: ".dmrx",
		decode: func(data []byte, _ *semi.SemI) ([]*sem.ScopedGraph, error) {
			if ds, err := dmrx.DecodeList(data); err == nil {
				return scopeDMRS(ds)
			}
			d, err := dmrx.Decode(data)
			if err != nil {
				return nil, err
			}
			return scopeDMRS([]*dmrs.DMRS{d})
		},
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			ds, err := unscopeDMRS(gs)
			if err != nil {
				return nil, err
			}
			if len(ds) == 1 {
				return dmrx.Encode(ds[0])
			}
			return dmrx.EncodeList(ds)
		},
	},
	"simpledmrs": {
		extension: ".dmrs",
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			ds, err := unscopeDMRS(gs)
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			for i, d := range ds {
				if i > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(simpledmrs.Encode(d, simpledmrsOptions(o)...))
			}
			return buf.Bytes(), nil
		},
	},
	"edsjson": {
		extension: ".eds.json",
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			es, err := edsFromScoped(gs, o)
			if err != nil {
				return nil, err
			}
			var docs [][]byte
			for _, e := range es {
				doc, err := edsjson.Encode(e, edsjsonOptions(o)...)
				if err != nil {
					return nil, err
				}
				docs = append(docs, doc)
			}
			return bytes.Join(docs, []byte("\n")), nil
		},
		check: func(data []byte, _ *semi.SemI) error {
			_, err := edsjson.Decode(data)
			return err
		},
	},
	"edsnative": {
		extension: ".eds",
		encode: func(gs []*sem.ScopedGraph, _ *semi.SemI, o encodeOpts) ([]byte, error) {
			es, err := edsFromScoped(gs, o)
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			for i, e := range es {
				if i > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(edsnative.Encode(e, edsnativeOptions(o)...))
			}
			return buf.Bytes(), nil
		},
		check: func(data []byte, _ *semi.SemI) error {
			_, err := edsnative.Decode(string(data))
			return err
		},
	},
}

var errNoSemI = fmt.Errorf("the indexedmrs format needs a grammar interface (--semi)")

// checkFor returns the validation pass of a format: its explicit check,
// else a full decode with the result discarded.
func (f *format) checkFor() func(data []byte, si *semi.SemI) error {
	switch {
	case f.check != nil:
		return f.check
	case f.decode != nil:
		return func(data []byte, si *semi.SemI) error {
			_, err := f.decode(data, si)
			return err
		}
	default:
		return func([]byte, *semi.SemI) error {
			return fmt.Errorf("format is write-only")
		}
	}
}

func formatNames(need func(*format) bool) []string {
	var names []string
	for name, f := range formats {
		if need(f) {
			names = append(names, name)
		}
	}
	return names
}

func scopeMRS(ms []*mrs.MRS) ([]*sem.ScopedGraph, error) {
	gs := make([]*sem.ScopedGraph, 0, len(ms))
	for _, m := range ms {
		g, err := mrs.ToScoped(m)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	return gs, nil
}

func unscopeMRS(gs []*sem.ScopedGraph) ([]*mrs.MRS, error) {
	ms := make([]*mrs.MRS, 0, len(gs))
	for _, g := range gs {
		m, err := mrs.FromScoped(g)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func scopeDMRS(ds []*dmrs.DMRS) ([]*sem.ScopedGraph, error) {
	gs := make([]*sem.ScopedGraph, 0, len(ds))
	for _, d := range ds {
		g, err := semkit.Scoped(d)
		if err != nil {
			return nil, err
		}
		gs = append(gs, g)
	}
	return gs, nil
}

func unscopeDMRS(gs []*sem.ScopedGraph) ([]*dmrs.DMRS, error) {
	ds := make([]*dmrs.DMRS, 0, len(gs))
	for _, g := range gs {
		d, err := semkit.Dependency(g)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func edsFromScoped(gs []*sem.ScopedGraph, o encodeOpts) ([]*eds.EDS, error) {
	var opts []eds.Option
	if o.modifiers {
		opts = append(opts, eds.WithPredicateModifiers())
	}
	es := make([]*eds.EDS, 0, len(gs))
	for _, g := range gs {
		e, err := semkit.Bare(g, opts...)
		if err != nil {
			return nil, err
		}
		es = append(es, e)
	}
	return es, nil
}

func simplemrsOptions(o encodeOpts) (opts []simplemrs.Option) {
	if o.indent {
		opts = append(opts, simplemrs.WithIndent())
	}
	if !o.properties {
		opts = append(opts, simplemrs.WithoutProperties())
	}
	return opts
}

func indexedmrsOptions(o encodeOpts) (opts []indexedmrs.Option) {
	if o.indent {
		opts = append(opts, indexedmrs.WithIndent())
	}
	if !o.properties {
		opts = append(opts, indexedmrs.WithoutProperties())
	}
	return opts
}

func mrsjsonOptions(o encodeOpts) (opts []mrsjson.Option) {
	if o.indent {
		opts = append(opts, mrsjson.WithIndent())
	}
	if !o.properties {
		opts = append(opts, mrsjson.WithoutProperties())
	}
	return opts
}

func dmrsjsonOptions(o encodeOpts) (opts []dmrsjson.Option) {
	if o.indent {
		opts = append(opts, dmrsjson.WithIndent())
	}
	if !o.properties {
		opts = append(opts, dmrsjson.WithoutProperties())
	}
	return opts
}

func simpledmrsOptions(o encodeOpts) (opts []simpledmrs.Option) {
	if o.indent {
		opts = append(opts, simpledmrs.WithIndent())
	}
	if !o.properties {
		opts = append(opts, simpledmrs.WithoutProperties())
	}
	return opts
}

func edsjsonOptions(o encodeOpts) (opts []edsjson.Option) {
	if o.indent {
		opts = append(opts, edsjson.WithIndent())
	}
	if !o.properties {
		opts = append(opts, edsjson.WithoutProperties())
	}
	return opts
}

func edsnativeOptions(o encodeOpts) (opts []edsnative.Option) {
	if !o.properties {
		opts = append(opts, edsnative.WithoutProperties())
	}
	return opts
}
