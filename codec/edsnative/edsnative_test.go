package edsnative_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semkit/semkit/codec/edsnative"
	"github.com/semkit/semkit/sem"
)

const everyDogBarks = `{e2:
 _1:_every_q<0:5>[BV x3]
 x3:_dog_n_1<6:9>{x NUM sg}[]
 e2:_bark_v_1<10:16>{e TENSE pres}[ARG1 x3]
}`

func TestDecode(t *testing.T) {
	e, err := edsnative.Decode(everyDogBarks)
	require.NoError(t, err)

	assert.Equal(t, "e2", e.Top)
	require.Len(t, e.Nodes, 3)

	q := e.Nodes[0]
	assert.Equal(t, "_1", q.ID)
	assert.Equal(t, "_every_q", q.Predicate.Short())
	assert.Equal(t, sem.CharSpan(0, 5), q.Lnk)
	assert.Equal(t, map[string]string{"BV": "x3"}, q.Edges)

	n := e.Nodes[1]
	assert.Equal(t, "x", n.Type)
	assert.Equal(t, "sg", n.Properties["NUM"])
	assert.Empty(t, n.Edges)
}

func TestDecode_FragmentedStatus(t *testing.T) {
	// Status markers are informational: nothing may be dropped.
	s := `{e2: (fragmented)
 e2:_bark_v_1<10:16>{e}[]
 x9:_cat_n_1<0:3>{x}[]
}`
	e, err := edsnative.Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "e2", e.Top)
	assert.Len(t, e.Nodes, 2)
	assert.True(t, e.Fragmented())
}

func TestDecode_Carg(t *testing.T) {
	s := `{x5:
 x5:named<0:6>("Abrams"){x}[]
}`
	e, err := edsnative.Decode(s)
	require.NoError(t, err)
	require.Len(t, e.Nodes, 1)
	assert.Equal(t, "Abrams", e.Nodes[0].Carg)
	assert.Equal(t, "named", e.Nodes[0].Predicate.Short())
}

func TestDecode_Errors(t *testing.T) {
	for _, bad := range []string{
		"",
		"{e2:",
		"{e2:\n not a node line at all ][\n}",
	} {
		_, err := edsnative.Decode(bad)
		assert.ErrorIs(t, err, edsnative.ErrDecode, "input %q", bad)
	}
}

func TestRoundTrip(t *testing.T) {
	e, err := edsnative.Decode(everyDogBarks)
	require.NoError(t, err)

	out := edsnative.Encode(e)
	e2, err := edsnative.Decode(out)
	require.NoError(t, err, "re-decoding %q", out)

	assert.Equal(t, e.Top, e2.Top)
	require.Len(t, e2.Nodes, 3)
	for i := range e.Nodes {
		assert.Equal(t, e.Nodes[i].ID, e2.Nodes[i].ID)
		assert.Equal(t, e.Nodes[i].Predicate.Short(), e2.Nodes[i].Predicate.Short())
		assert.Equal(t, e.Nodes[i].Edges, e2.Nodes[i].Edges)
		assert.Equal(t, e.Nodes[i].Properties, e2.Nodes[i].Properties)
	}
}

func TestEncode_PropertyBlock(t *testing.T) {
	// The type joins the property list with a plain space; commas only
	// separate the name/value pairs.
	e, err := edsnative.Decode(everyDogBarks)
	require.NoError(t, err)

	out := edsnative.Encode(e)
	assert.Contains(t, out, "{x NUM sg}")
	assert.Contains(t, out, "{e TENSE pres}")
	assert.NotContains(t, out, "{x,")
	assert.NotContains(t, out, "{e,")
}

func TestEncode_CyclicMarker(t *testing.T) {
	s := `{e2:
 e2:_chase_v_1<0:5>{e}[ARG1 e2]
}`
	e, err := edsnative.Decode(s)
	require.NoError(t, err)
	out := edsnative.Encode(e)
	assert.Contains(t, out, "(cyclic)")
}
