package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesKeyOrderIndependent(t *testing.T) {
	fields1 := map[string]interface{}{
		"id":   "test-1",
		"data": "hello",
	}
	fields2 := map[string]interface{}{
		"data": "hello",
		"id":   "test-1",
	}

	b1, err := Bytes(fields1)
	require.NoError(t, err)
	b2, err := Bytes(fields2)
	require.NoError(t, err)
	require.Equal(t, string(b1), string(b2), "canonical bytes must not depend on map iteration order")
}

func TestBytesOmitsNullKeys(t *testing.T) {
	fields := map[string]interface{}{
		"present": "value",
		"absent":  nil,
	}
	b, err := Bytes(fields)
	require.NoError(t, err)
	require.Equal(t, `{"present":"value"}`, string(b))
}

func TestBytesPreservesNullArrayElements(t *testing.T) {
	fields := map[string]interface{}{
		"items": []interface{}{"a", nil, "b"},
	}
	b, err := Bytes(fields)
	require.NoError(t, err)
	require.Equal(t, `{"items":["a",null,"b"]}`, string(b))
}

func TestBytesCompactSeparators(t *testing.T) {
	fields := map[string]interface{}{"a": 1, "b": 2}
	b, err := Bytes(fields)
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":2}`, string(b))
}
