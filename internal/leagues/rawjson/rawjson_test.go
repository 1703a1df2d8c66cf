package rawjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords(t *testing.T) {
	got, err := Records([]any{map[string]any{"event": "shot"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "shot", got[0]["event"])

	_, err = Records(map[string]any{"event": "shot"})
	assert.Error(t, err)

	_, err = Records([]any{"not an object"})
	assert.Error(t, err)
}

func TestNumericCoercion(t *testing.T) {
	m := map[string]any{
		"float":  float64(12.5),
		"strnum": "754",
		"strbad": "abc",
		"bigid":  "9007199254740993",
	}

	require.NotNil(t, Float(m, "float"))
	assert.Equal(t, 12.5, *Float(m, "float"))
	require.NotNil(t, Int(m, "strnum"))
	assert.Equal(t, 754, *Int(m, "strnum"))
	assert.Nil(t, Int(m, "strbad"))
	assert.Nil(t, Int(m, "missing"))

	require.NotNil(t, Int64(m, "bigid"))
	assert.Equal(t, int64(9007199254740993), *Int64(m, "bigid"))
}

func TestStrPreservesEmpty(t *testing.T) {
	m := map[string]any{"empty": "", "num": float64(1)}

	require.NotNil(t, Str(m, "empty"))
	assert.Equal(t, "", *Str(m, "empty"))
	assert.Nil(t, Str(m, "num"))
	assert.Nil(t, Str(m, "missing"))
}

func TestBool(t *testing.T) {
	m := map[string]any{
		"b": true, "one": float64(1), "zero": float64(0),
		"st": "True", "sf": "0", "bad": "maybe",
	}

	assert.True(t, *Bool(m, "b"))
	assert.True(t, *Bool(m, "one"))
	assert.False(t, *Bool(m, "zero"))
	assert.True(t, *Bool(m, "st"))
	assert.False(t, *Bool(m, "sf"))
	assert.Nil(t, Bool(m, "bad"))
	assert.Nil(t, Bool(m, "missing"))
}

func TestMapAndList(t *testing.T) {
	m := map[string]any{
		"obj":  map[string]any{"id": float64(1)},
		"list": []any{"a"},
	}

	assert.NotNil(t, Map(m, "obj"))
	assert.Nil(t, Map(m, "list"))
	assert.Len(t, List(m, "list"), 1)
	assert.Nil(t, List(m, "obj"))
}
