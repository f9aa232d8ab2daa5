package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayCountDecodesNumberAndString(t *testing.T) {
	var items []ContentItem
	body := `[{"bookId":"1","playCount":1234},{"bookId":"2","playCount":"56.7K"},{"bookId":"3","playCount":null},{"bookId":"4"}]`
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 4)

	assert.Equal(t, PlayCount{Raw: "1234"}, items[0].PlayCount)
	assert.Equal(t, PlayCount{Raw: "56.7K", Quoted: true}, items[1].PlayCount)
	assert.True(t, items[2].PlayCount.IsZero())
	assert.True(t, items[3].PlayCount.IsZero())

	v, ok := items[0].PlayCount.Float()
	assert.True(t, ok)
	assert.Equal(t, 1234.0, v)

	_, ok = items[1].PlayCount.Float()
	assert.False(t, ok, "non-numeric string must not parse")
}

func TestPlayCountKeepsUpstreamForm(t *testing.T) {
	for _, in := range []string{`1234`, `"1234"`, `null`, `1.5e3`} {
		var p PlayCount
		require.NoError(t, json.Unmarshal([]byte(in), &p), in)
		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}
}

func TestPlayCountRejectsObjects(t *testing.T) {
	var p PlayCount
	assert.Error(t, json.Unmarshal([]byte(`{"n":1}`), &p))
}
