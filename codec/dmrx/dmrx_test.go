package dmrx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semkit/semkit/codec/dmrx"
	"github.com/semkit/semkit/dmrs"
	"github.com/semkit/semkit/sem"
)

func sample() *dmrs.DMRS {
	return &dmrs.DMRS{
		Top:   10002,
		Index: 10002,
		Nodes: []dmrs.Node{
			{
				ID:        10000,
				Predicate: sem.SurfaceOrAbstract("_every_q"),
				Type:      "x",
				Lnk:       sem.CharSpan(0, 5),
			},
			{
				ID:         10001,
				Predicate:  sem.SurfaceOrAbstract("_dog_n_1"),
				Type:       "x",
				Properties: map[string]string{"NUM": "sg"},
				Lnk:        sem.CharSpan(6, 9),
			},
			{
				ID:        10002,
				Predicate: sem.SurfaceOrAbstract("udef_q"),
				Carg:      "Abrams",
			},
		},
		Links: []dmrs.Link{
			{Start: 10000, End: 10001, Role: "RSTR", Post: dmrs.HPost},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := dmrx.Encode(sample())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `<realpred lemma="dog" pos="n" sense="1">`)
	assert.Contains(t, s, "<gpred>udef_q</gpred>")
	assert.Contains(t, s, "<rargname>RSTR</rargname>")
	assert.Contains(t, s, "<post>H</post>")

	d, err := dmrx.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 10002, d.Top)
	require.Len(t, d.Nodes, 3)
	assert.Equal(t, "_dog_n_1", d.Nodes[1].Predicate.Short())
	assert.Equal(t, "x", d.Nodes[1].Type)
	assert.Equal(t, "sg", d.Nodes[1].Properties["NUM"])
	assert.Equal(t, sem.CharSpan(6, 9), d.Nodes[1].Lnk)
	assert.Equal(t, "udef_q", d.Nodes[2].Predicate.Short())
	assert.Equal(t, "Abrams", d.Nodes[2].Carg)

	require.Len(t, d.Links, 1)
	assert.Equal(t, sample().Links[0], d.Links[0])
}

func TestQuantifierSortinfo(t *testing.T) {
	d := &dmrs.DMRS{
		Nodes: []dmrs.Node{
			{ID: 10000, Predicate: sem.SurfaceOrAbstract("_every_q"), Type: "x"},
		},
	}
	data, err := dmrx.Encode(d)
	require.NoError(t, err)
	// Quantifiers carry an empty sortinfo element.
	assert.NotContains(t, string(data), "cvarsort")
}

func TestList(t *testing.T) {
	data, err := dmrx.EncodeList([]*dmrs.DMRS{sample(), sample()})
	require.NoError(t, err)
	assert.Contains(t, string(data), "<dmrs-list>")

	ds, err := dmrx.DecodeList(data)
	require.NoError(t, err)
	assert.Len(t, ds, 2)
}

func TestDecode_Error(t *testing.T) {
	_, err := dmrx.Decode([]byte("<dmrs"))
	assert.ErrorIs(t, err, dmrx.ErrDecode)
}
