package util

import "math"

const (
	DefaultPage = 1
	DefaultTake = 10
	MaxTake     = 100
	// MaxPage keeps (page-1)*take inside a 32-bit int.
	MaxPage = math.MaxInt32 / MaxTake
)

func Calculate(page, take int) (offset, limit int) {
	if page < 1 {
		page = DefaultPage
	}
	if take <= 0 || take > MaxTake {
		take = DefaultTake
	}
	offset = (page - 1) * take
	return offset, take
}

func PageCount(total int64, take int) int64 {
	if take <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(take) - 1) / int64(take)
}
