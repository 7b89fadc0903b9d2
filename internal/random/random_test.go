package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducibleForSameSeed(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestReseedRestartsSequence(t *testing.T) {
	r := New(7)
	first := []int{r.Intn(100), r.Intn(100), r.Intn(100)}

	r.Seed(7)
	again := []int{r.Intn(100), r.Intn(100), r.Intn(100)}

	assert.Equal(t, first, again)
}

func TestScripted(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		n      int
		want   []int
	}{
		{name: "in range", values: []int{0, 1, 2}, n: 3, want: []int{0, 1, 2}},
		{name: "reduced modulo n", values: []int{5, 7}, n: 3, want: []int{2, 1}},
		{name: "wraps around", values: []int{1}, n: 2, want: []int{1, 1, 1}},
		{name: "empty script", values: nil, n: 4, want: []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScripted(tt.values...)
			got := make([]int, 0, len(tt.want))
			for range tt.want {
				got = append(got, s.Intn(tt.n))
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), s.Calls())
		})
	}
}
