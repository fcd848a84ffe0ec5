package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 3, meta.TotalPages)
	assert.EqualValues(t, 25, meta.Total)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestGetMetaEdges(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	// Exact multiple does not round up
	meta = GetMeta(&Params{Page: 3, Limit: 10}, 30)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	resp := NewResponse(data, &Params{Page: 1, Limit: 2}, 4)

	assert.Equal(t, data, resp.Data)
	assert.Equal(t, 2, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
}
