package paging

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) Slice[int] {
	s := make(Slice[int], n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	t.Run("last partial page", func(tt *testing.T) {
		p := Paginate[int](numbers(25), 3, 10)
		assert.Equal(tt, []int{21, 22, 23, 24, 25}, p.Items)
		assert.Equal(tt, 25, p.TotalCount)
		assert.Equal(tt, 3, p.TotalPages)
		assert.Equal(tt, 3, p.CurrentPage)
		assert.Equal(tt, 10, p.PageSize)
		assert.True(tt, p.HasPrevious())
		assert.False(tt, p.HasNext())
	})

	t.Run("first page", func(tt *testing.T) {
		p := Paginate[int](numbers(25), 1, 10)
		assert.Len(tt, p.Items, 10)
		assert.Equal(tt, 1, p.Items[0])
		assert.False(tt, p.HasPrevious())
		assert.True(tt, p.HasNext())
	})

	t.Run("empty source", func(tt *testing.T) {
		p := Paginate[int](numbers(0), 1, 10)
		assert.Empty(tt, p.Items)
		assert.NotNil(tt, p.Items)
		assert.Equal(tt, 0, p.TotalPages)
		assert.False(tt, p.HasPrevious())
		assert.False(tt, p.HasNext())
	})

	t.Run("page past the end is empty, not an error", func(tt *testing.T) {
		p := Paginate[int](numbers(5), 4, 2)
		assert.Empty(tt, p.Items)
		assert.Equal(tt, 3, p.TotalPages)
		assert.False(tt, p.HasNext())
		assert.True(tt, p.HasPrevious())
	})
}

func TestPaginate_ItemCount(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 23; n++ {
		for size := 1; size <= 7; size++ {
			for page := 1; page <= 6; page++ {
				p := Paginate[int](numbers(n), page, size)

				expected := n - (page-1)*size
				if expected < 0 {
					expected = 0
				}
				if expected > size {
					expected = size
				}
				name := fmt.Sprintf("n=%d size=%d page=%d", n, size, page)
				require.Len(t, p.Items, expected, name)
				assert.Equal(t, (n+size-1)/size, p.TotalPages, name)
				assert.Equal(t, page < p.TotalPages, p.HasNext(), name)
				assert.Equal(t, page > 1, p.HasPrevious(), name)
			}
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	p := New[string](nil, 11, 2, 5)
	assert.NotNil(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
}

func TestOffset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
}

func TestMap(t *testing.T) {
	t.Parallel()

	p := Paginate[int](numbers(7), 2, 3)
	labels := Map(p, func(i int) string { return fmt.Sprintf("#%d", i) })
	assert.Equal(t, []string{"#4", "#5", "#6"}, labels.Items)
	assert.Equal(t, p.TotalCount, labels.TotalCount)
	assert.Equal(t, p.TotalPages, labels.TotalPages)
	assert.Equal(t, p.CurrentPage, labels.CurrentPage)
	assert.Equal(t, p.PageSize, labels.PageSize)
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	t.Run("without links", func(tt *testing.T) {
		p := Paginate[int](numbers(25), 3, 10)
		header, err := MetadataFor(p, "", "").Header()
		require.NoError(tt, err)
		assert.JSONEq(tt, `{"total_count":25,"page_size":10,"current_page":3,"total_pages":3}`, header)
	})

	t.Run("with links", func(tt *testing.T) {
		p := Paginate[int](numbers(25), 2, 10)
		m := MetadataFor(p, "http://x/api/authors?page_number=1", "http://x/api/authors?page_number=3")
		require.NotNil(tt, m.PreviousPageLink)
		require.NotNil(tt, m.NextPageLink)
		assert.Equal(tt, "http://x/api/authors?page_number=3", *m.NextPageLink)

		header, err := m.Header()
		require.NoError(tt, err)
		assert.Contains(tt, header, `"previous_page_link":"http://x/api/authors?page_number=1"`)
	})
}

func TestClamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 500, 2, 20},
		{4, 20, 4, 20},
		{4, 1, 4, 1},
		{math.MaxInt, 20, MaxPageNumber, 20},
	}
	for _, tc := range cases {
		page, size := Clamp(tc.page, tc.size, 10, 20)
		assert.Equal(t, tc.wantPage, page, "page for %+v", tc)
		assert.Equal(t, tc.wantSize, size, "size for %+v", tc)
	}
}

func TestOffset_Saturates(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 0, Offset(0, 20))
	assert.Equal(t, math.MaxInt, Offset(461168601842738792, 20))
	assert.Equal(t, math.MaxInt, Offset(math.MaxInt, 2))
}

func TestPaginate_HugePageNumber(t *testing.T) {
	t.Parallel()

	src := Slice[int]{1, 2, 3}
	for _, n := range []int{461168601842738792, math.MaxInt, MaxPageNumber} {
		p := Paginate[int](src, n, 20)
		assert.Empty(t, p.Items, "page %d", n)
		assert.Equal(t, 3, p.TotalCount)
		assert.False(t, p.HasNext())
		assert.True(t, p.HasPrevious())
	}
}

func TestSlice_OutOfRange(t *testing.T) {
	t.Parallel()

	src := Slice[int]{1, 2, 3}
	assert.Empty(t, src.Slice(-1, 2))
	assert.Empty(t, src.Slice(3, 2))
	assert.Empty(t, src.Slice(0, 0))
	assert.Equal(t, []int{2, 3}, src.Slice(1, math.MaxInt))
}
