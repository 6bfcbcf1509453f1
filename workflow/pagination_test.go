package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	// 25 rows, limit 10, page 3 -> last partial page.
	p := Paginate(25, 3, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.TotalCount)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)

	p = Paginate(25, 1, 10)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPreviousPage)

	p = Paginate(0, 1, 10)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPreviousPage)
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultLimit, limit)

	page, limit = NormalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(-1, 10))
}
