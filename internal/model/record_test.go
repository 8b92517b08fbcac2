package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecodeDatasetKeepsKeyOrder(t *testing.T) {
	data, err := DecodeDataset([]byte(`[{"zeta": 1, "alpha": 2.5, "mid": "m"}, {"zeta": 3, "alpha": 4, "mid": null}]`))
	require.NoError(t, err)
	require.Len(t, data, 2)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, data[0].Keys())

	v, ok := data[0].Get("zeta")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, _ = data[0].Get("alpha")
	assert.Equal(t, 2.5, v)

	v, ok = data[1].Get("mid")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestDecodeDatasetSingleObject(t *testing.T) {
	data, err := DecodeDataset([]byte(`{"x": "a", "y": 1}`))
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, []string{"x", "y"}, data[0].Keys())
}

func TestDecodeDatasetRejectsNested(t *testing.T) {
	tests := map[string]string{
		"nested object": `[{"x": {"a": 1}}]`,
		"nested array":  `[{"x": [1, 2]}]`,
		"scalar root":   `42`,
		"array of ints": `[1, 2]`,
		"trailing data": `[{"x": 1}] [{"x": 2}]`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDataset([]byte(input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
		})
	}
}

func TestRecordSetKeepsPosition(t *testing.T) {
	r := NewRecord("x", "a", "y", 1)
	r.Set("y", int64(5))
	r.Set("z", true)

	assert.Equal(t, []string{"x", "y", "z"}, r.Keys())
	v, _ := r.Get("y")
	assert.Equal(t, int64(5), v)
}

func TestRecordJSONRoundTrip(t *testing.T) {
	r := NewRecord("b", 1, "a", "two", "c", nil)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":"two","c":null}`, string(raw))

	var back Record
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, r.Keys(), back.Keys())
	assert.Equal(t, r.Map(), back.Map())
}

func TestRecordYAMLKeepsOrder(t *testing.T) {
	r := NewRecord("beta", 2, "alpha", "label")

	raw, err := yaml.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, "beta: 2\nalpha: label\n", string(raw))
}

func TestRecordSameShape(t *testing.T) {
	a := NewRecord("x", 1, "y", 2)
	b := NewRecord("y", 3, "x", 4)
	c := NewRecord("x", 1, "z", 2)

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
	assert.False(t, a.SameShape(NewRecord("x", 1)))
}

func TestDatasetCloneIsDeep(t *testing.T) {
	orig := Dataset{NewRecord("x", 1)}
	cp := orig.Clone()
	cp[0].Set("x", int64(99))

	v, _ := orig[0].Get("x")
	assert.Equal(t, int64(1), v)
}
