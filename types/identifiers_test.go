package types

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BytesToBytes32(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		id, err := BytesToBytes32(nil)
		require.Zero(t, id)
		require.EqualError(t, err, `expected 32 bytes, got 0 bytes`)

		id, err = BytesToBytes32(make([]byte, 31))
		require.Zero(t, id)
		require.EqualError(t, err, `expected 32 bytes, got 31 bytes`)

		id, err = BytesToBytes32(make([]byte, 33))
		require.Zero(t, id)
		require.EqualError(t, err, `expected 32 bytes, got 33 bytes`)
	})

	t.Run("valid input", func(t *testing.T) {
		src := bytes.Repeat([]byte{7}, 32)
		id, err := BytesToBytes32(src)
		require.NoError(t, err)
		require.Equal(t, src, id.Bytes())
		require.False(t, id.IsZero())
		require.True(t, Bytes32{}.IsZero())
	})
}

func Test_Bytes32_Compare(t *testing.T) {
	a := Bytes32{1}
	b := Bytes32{2}
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
}

func Test_Bytes32_JSON(t *testing.T) {
	id := Bytes32{0xab, 0xcd}
	buf, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"0xabcd000000000000000000000000000000000000000000000000000000000000"`, string(buf))

	var res Bytes32
	require.NoError(t, json.Unmarshal(buf, &res))
	require.Equal(t, id, res)

	require.ErrorContains(t, json.Unmarshal([]byte(`"0xabcd"`), &res), `expected 32 bytes, got 2 bytes`)
	require.Error(t, json.Unmarshal([]byte(`"abcd"`), &res))
	require.Equal(t, "abcd000000000000000000000000000000000000000000000000000000000000", id.String())
}
