package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		page, take int
		offset     int
		limit      int
	}{
		{name: "first page", page: 1, take: 10, offset: 0, limit: 10},
		{name: "second page", page: 2, take: 10, offset: 10, limit: 10},
		{name: "zero page", page: 0, take: 5, offset: 0, limit: 5},
		{name: "take too large", page: 3, take: 500, offset: 20, limit: 10},
		{name: "take zero", page: 1, take: 0, offset: 0, limit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := Calculate(tt.page, tt.take)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.EqualValues(t, 3, PageCount(25, 10))
	assert.EqualValues(t, 2, PageCount(20, 10))
	assert.EqualValues(t, 0, PageCount(0, 10))
	assert.EqualValues(t, 1, PageCount(1, 100))
}

func TestMaxPage_OffsetFitsInt32(t *testing.T) {
	offset, _ := Calculate(MaxPage, MaxTake)
	assert.Positive(t, offset)
	assert.LessOrEqual(t, int64(offset), int64(math.MaxInt32))
}
