package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthor_AgeAt(t *testing.T) {
	t.Parallel()

	a := &Author{FirstName: "Jane", LastName: "Doe", DateOfBirth: time.Date(1980, time.June, 15, 0, 0, 0, 0, time.UTC)}

	cases := []struct {
		now      time.Time
		expected int
	}{
		{time.Date(2020, time.June, 14, 0, 0, 0, 0, time.UTC), 39},
		{time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC), 40},
		{time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), 40},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, a.AgeAt(tc.now), tc.now.String())
	}
	assert.Equal(t, "Jane Doe", a.Name())
}
