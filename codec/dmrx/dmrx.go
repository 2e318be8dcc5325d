// Package dmrx reads and writes the <dmrs> XML schema: node elements with
// realpred or gpred children and a sortinfo attribute list, link elements
// with rargname and post children.
package dmrx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/sem"
)

// ErrDecode reports malformed input.
var ErrDecode = errors.New("dmrx: decode error")

type xmlRealPred struct {
	Lemma string `xml:"lemma,attr"`
	Pos   string `xml:"pos,attr"`
	Sense string `xml:"sense,attr,omitempty"`
}

type xmlSortInfo struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlNode struct {
	NodeID   int          `xml:"nodeid,attr"`
	Cfrom    int          `xml:"cfrom,attr"`
	Cto      int          `xml:"cto,attr"`
	Surface  string       `xml:"surface,attr,omitempty"`
	Base     string       `xml:"base,attr,omitempty"`
	Carg     string       `xml:"carg,attr,omitempty"`
	RealPred *xmlRealPred `xml:"realpred"`
	GPred    string       `xml:"gpred"`
	SortInfo xmlSortInfo  `xml:"sortinfo"`
}

type xmlLink struct {
	From     int    `xml:"from,attr"`
	To       int    `xml:"to,attr"`
	RargName string `xml:"rargname"`
	Post     string `xml:"post"`
}

type xmlDMRS struct {
	XMLName xml.Name  `xml:"dmrs"`
	Cfrom   int       `xml:"cfrom,attr"`
	Cto     int       `xml:"cto,attr"`
	Surface string    `xml:"surface,attr,omitempty"`
	Ident   string    `xml:"ident,attr,omitempty"`
	Top     int       `xml:"top,attr,omitempty"`
	Index   int       `xml:"index,attr,omitempty"`
	Nodes   []xmlNode `xml:"node"`
	Links   []xmlLink `xml:"link"`
}

type xmlList struct {
	XMLName xml.Name  `xml:"dmrs-list"`
	DMRSs   []xmlDMRS `xml:"dmrs"`
}

// Encode renders d as a <dmrs> element.
func Encode(d *dmrs.DMRS) ([]byte, error) {
	return xml.MarshalIndent(toXML(d), "", "  ")
}

// EncodeList renders several graphs inside a <dmrs-list> element.
func EncodeList(ds []*dmrs.DMRS) ([]byte, error) {
	list := xmlList{}
	for _, d := range ds {
		list.DMRSs = append(list.DMRSs, toXML(d))
	}
	return xml.MarshalIndent(list, "", "  ")
}

// Decode parses a single <dmrs> element.
func Decode(data []byte) (*dmrs.DMRS, error) {
	var x xmlDMRS
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return fromXML(x)
}

// DecodeList parses a <dmrs-list> element.
func DecodeList(data []byte) ([]*dmrs.DMRS, error) {
	var list xmlList
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	ds := make([]*dmrs.DMRS, 0, len(list.DMRSs))
	for _, x := range list.DMRSs {
		d, err := fromXML(x)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func toXML(d *dmrs.DMRS) xmlDMRS {
	x := xmlDMRS{
		Cfrom:   d.Lnk.Cfrom(),
		Cto:     d.Lnk.Cto(),
		Surface: d.Surface,
		Ident:   d.Identifier,
		Top:     d.Top,
		Index:   d.Index,
	}
	for _, n := range d.Nodes {
		xn := xmlNode{
			NodeID:  n.ID,
			Cfrom:   n.Lnk.Cfrom(),
			Cto:     n.Lnk.Cto(),
			Surface: n.Surface,
			Base:    n.Base,
			Carg:    n.Carg,
		}
		if n.Predicate.Kind != sem.AbstractPred {
			xn.RealPred = &xmlRealPred{
				Lemma: n.Predicate.Lemma,
				Pos:   n.Predicate.Pos,
				Sense: n.Predicate.Sense,
			}
		} else {
			xn.GPred = n.Predicate.Short()
		}
		// Quantifiers carry an empty sortinfo.
		if !isQuantifierPred(n.Predicate) {
			if n.Type != "" {
				xn.SortInfo.Attrs = append(xn.SortInfo.Attrs, xml.Attr{
					Name: xml.Name{Local: dmrs.CvarSort}, Value: n.Type,
				})
			}
			for _, k := range sem.SortedProperties(n.Properties) {
				xn.SortInfo.Attrs = append(xn.SortInfo.Attrs, xml.Attr{
					Name: xml.Name{Local: strings.ToLower(k)}, Value: n.Properties[k],
				})
			}
		}
		x.Nodes = append(x.Nodes, xn)
	}
	for _, l := range d.Links {
		x.Links = append(x.Links, xmlLink{
			From: l.Start, To: l.End, RargName: l.Role, Post: l.Post,
		})
	}
	return x
}

func isQuantifierPred(p sem.Predicate) bool {
	return p.Pos == "q"
}

func fromXML(x xmlDMRS) (*dmrs.DMRS, error) {
	d := &dmrs.DMRS{
		Top:        x.Top,
		Index:      x.Index,
		Surface:    x.Surface,
		Identifier: x.Ident,
	}
	if x.Cfrom != -1 || x.Cto != -1 {
		d.Lnk = sem.CharSpan(x.Cfrom, x.Cto)
	}
	for _, xn := range x.Nodes {
		n := dmrs.Node{
			ID:         xn.NodeID,
			Properties: map[string]string{},
			Surface:    xn.Surface,
			Base:       xn.Base,
			Carg:       xn.Carg,
		}
		switch {
		case xn.RealPred != nil:
			n.Predicate = sem.NewRealPred(xn.RealPred.Lemma, xn.RealPred.Pos, xn.RealPred.Sense)
		case xn.GPred != "":
			n.Predicate = sem.Abstract(xn.GPred)
		default:
			return nil, fmt.Errorf("%w: node %d has no predicate", ErrDecode, xn.NodeID)
		}
		if xn.Cfrom != -1 || xn.Cto != -1 {
			n.Lnk = sem.CharSpan(xn.Cfrom, xn.Cto)
		}
		for _, attr := range xn.SortInfo.Attrs {
			if attr.Name.Local == dmrs.CvarSort {
				n.Type = attr.Value
				continue
			}
			n.Properties[strings.ToUpper(attr.Name.Local)] = attr.Value
		}
		d.Nodes = append(d.Nodes, n)
	}
	for _, xl := range x.Links {
		d.Links = append(d.Links, dmrs.Link{
			Start: xl.From, End: xl.To, Role: xl.RargName, Post: xl.Post,
		})
	}
	return d, nil
}
