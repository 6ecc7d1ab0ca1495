package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		from, want int
	}{
		{name: "defaults", page: 0, size: 0, from: 0, want: DefaultPageSize},
		{name: "first page", page: 1, size: 20, from: 0, want: 20},
		{name: "third page", page: 3, size: 10, from: 20, want: 10},
		{name: "size clamped", page: 2, size: 1000, from: DefaultPageSize, want: DefaultPageSize},
		{name: "negative page", page: -5, size: 10, from: 0, want: 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.want, limit)
		})
	}
}
