package mrsjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semkit/semkit/codec/mrsjson"
	"github.com/semkit/semkit/mrs"
	"github.com/semkit/semkit/sem"
)

func sample() *mrs.MRS {
	return &mrs.MRS{
		Top:   "h0",
		Index: "e2",
		Rels: []mrs.EP{
			{
				Predicate: sem.SurfaceOrAbstract("_dog_n_1"),
				Label:     "h7",
				Args:      map[string]string{"ARG0": "x3"},
				Lnk:       sem.CharSpan(6, 9),
			},
			{
				Predicate: sem.SurfaceOrAbstract("named"),
				Label:     "h8",
				Args:      map[string]string{"ARG0": "x9"},
				Carg:      "Abrams",
			},
		},
		HCons: []mrs.HCons{mrs.Qeq("h0", "h7")},
		ICons: []mrs.ICons{{Left: "e2", Relation: "focus", Right: "x3"}},
		Variables: map[string]map[string]string{
			"x3": {"NUM": "sg"},
			"e2": {},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := mrsjson.Encode(sample())
	require.NoError(t, err)

	m, err := mrsjson.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "h0", m.Top)
	assert.Equal(t, "e2", m.Index)
	require.Len(t, m.Rels, 2)
	assert.Equal(t, "_dog_n_1", m.Rels[0].Predicate.Short())
	assert.Equal(t, sem.CharSpan(6, 9), m.Rels[0].Lnk)
	assert.Equal(t, "Abrams", m.Rels[1].Carg)
	_, hasCarg := m.Rels[1].Args[sem.ConstantRole]
	assert.False(t, hasCarg, "the constant travels in arguments but decodes back out")

	require.Len(t, m.HCons, 1)
	assert.Equal(t, mrs.Qeq("h0", "h7"), m.HCons[0])
	require.Len(t, m.ICons, 1)
	assert.Equal(t, "focus", m.ICons[0].Relation)

	assert.Equal(t, map[string]string{"NUM": "sg"}, m.Variables["x3"])
}

func TestEncode_WithoutProperties(t *testing.T) {
	data, err := mrsjson.Encode(sample(), mrsjson.WithoutProperties())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "NUM")
	assert.Contains(t, string(data), `"variables"`)
}

func TestDecode_Error(t *testing.T) {
	_, err := mrsjson.Decode([]byte("{"))
	assert.ErrorIs(t, err, mrsjson.ErrDecode)
}
