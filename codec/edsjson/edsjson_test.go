package edsjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semkit/semkit/codec/edsjson"
	"github.com/semkit/semkit/eds"
	"github.com/semkit/semkit/sem"
)

func sample() *eds.EDS {
	return &eds.EDS{
		Top: "e2",
		Nodes: []eds.Node{
			{
				ID:        "_1",
				Predicate: sem.SurfaceOrAbstract("_every_q"),
				Edges:     map[string]string{"BV": "x3"},
				Lnk:       sem.CharSpan(0, 5),
			},
			{
				ID:         "x3",
				Predicate:  sem.SurfaceOrAbstract("_dog_n_1"),
				Type:       "x",
				Properties: map[string]string{"NUM": "sg"},
				Edges:      map[string]string{},
				Lnk:        sem.CharSpan(6, 9),
			},
			{
				ID:        "e2",
				Predicate: sem.SurfaceOrAbstract("_bark_v_1"),
				Type:      "e",
				Edges:     map[string]string{"ARG1": "x3"},
				Lnk:       sem.CharSpan(10, 16),
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := edsjson.Encode(sample())
	require.NoError(t, err)

	e, err := edsjson.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "e2", e.Top)
	require.Len(t, e.Nodes, 3)

	// Alignment order: the quantifier opens the sentence.
	assert.Equal(t, "_1", e.Nodes[0].ID)
	assert.Equal(t, "x3", e.Nodes[1].ID)
	assert.Equal(t, "e2", e.Nodes[2].ID)

	v, ok := e.Node("e2")
	require.True(t, ok)
	assert.Equal(t, "x3", v.Edges["ARG1"])
	n, _ := e.Node("x3")
	assert.Equal(t, "sg", n.Properties["NUM"])
}

func TestEncode_WithoutProperties(t *testing.T) {
	data, err := edsjson.Encode(sample(), edsjson.WithoutProperties())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "NUM")
	assert.NotContains(t, string(data), `"type"`)
}

func TestDecode_Error(t *testing.T) {
	_, err := edsjson.Decode([]byte("["))
	assert.ErrorIs(t, err, edsjson.ErrDecode)
}
