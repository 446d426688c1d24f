package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshalKeepsOrderAndKinds(t *testing.T) {
	var r Record
	payload := `{"z":"last-name-first","a":null,"n":15000000,"b":false,"o":{"url":"x"},"s":""}`
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	names := make([]string, 0, r.Len())
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"z", "a", "n", "b", "o", "s"}, names)

	a, _ := r.Get("a")
	assert.Equal(t, ValueNull, a.Kind)
	assert.Nil(t, a.Ptr())
	assert.True(t, a.Falsy())

	n, _ := r.Get("n")
	assert.Equal(t, ValueNumber, n.Kind)
	assert.Equal(t, "15000000", n.Value)
	assert.False(t, n.Falsy())

	b, _ := r.Get("b")
	assert.True(t, b.Falsy())

	o, _ := r.Get("o")
	assert.Equal(t, `{"url":"x"}`, o.Value)

	s, _ := r.Get("s")
	assert.True(t, s.Falsy())
	require.NotNil(t, s.Ptr())
}

func TestRecordUnmarshalNullIsEmpty(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.Equal(t, 0, r.Len())
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &r))
}

func TestRecordDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1","b":"2","a":"3"}`), &r))
	require.Equal(t, 2, r.Len())
	assert.Equal(t, "a", r.Fields[0].Name)
	assert.Equal(t, "3", r.Fields[0].Value)
}

func TestRecordMarshalRoundTripPreservesOrder(t *testing.T) {
	var r Record
	payload := `{"Valor del contrato":"15000000","NIT proveedor":null,"n":3,"o":[1,2]}`
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, payload, string(out))
}

func TestNewRecordBuildsStringFields(t *testing.T) {
	r := NewRecord("a", "1", "b", "2", "dangling")
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "2", *r.Value("b"))
	assert.Nil(t, r.Value("missing"))
}
