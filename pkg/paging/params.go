package paging

import (
	"math"
)

// MaxPageNumber is the highest page number a request can ask for. It leaves
// room to link to the next page and keeps offsets within a SQL integer.
const MaxPageNumber = math.MaxInt32

// Clamp normalizes a requested page. Page numbers start at 1 and stop at
// MaxPageNumber. A missing or non-positive size falls back to defaultSize and
// sizes above maxSize are cut down to it. Out of range values are never an
// error.
func Clamp(pageNumber, pageSize, defaultSize, maxSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > MaxPageNumber {
		pageNumber = MaxPageNumber
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return pageNumber, pageSize
}
