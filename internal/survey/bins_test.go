package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinsAssignRightClosed(t *testing.T) {
	cases := []struct {
		v    float64
		want string
		ok   bool
	}{
		{0, "", false},
		{1, "1–5 hours", true},
		{5, "1–5 hours", true},
		{5.5, "6–10 hours", true},
		{15, "11–15 hours", true},
		{100, ">15 hours", true},
		{101, "", false},
		{math.NaN(), "", false},
	}
	for _, tc := range cases {
		got, ok := weeklyHoursBins.Assign(tc.v)
		assert.Equal(t, tc.ok, ok, "v=%v", tc.v)
		assert.Equal(t, tc.want, got, "v=%v", tc.v)
	}

	got, ok := presentationBins.Assign(0)
	assert.True(t, ok)
	assert.Equal(t, "Never", got)
}

func TestBinsOpenTop(t *testing.T) {
	b := newFriendsBins.Resolve([]float64{3, 30, math.NaN()})
	assert.Equal(t, []float64{0, 5, 10, 20, 30}, b.Edges)
	assert.False(t, b.OpenTop)
	got, ok := b.Assign(30)
	assert.True(t, ok)
	assert.Equal(t, ">20 people", got)
	got, ok = b.Assign(0)
	assert.True(t, ok, "lowest edge is included")
	assert.Equal(t, "1–5 people", got)

	// Nothing above the previous edge drops the top interval.
	b = newFriendsBins.Resolve([]float64{3, 20})
	assert.Equal(t, []float64{0, 5, 10, 20}, b.Edges)
	assert.Len(t, b.Labels, 3)
	_, ok = b.Assign(25)
	assert.False(t, ok)

	// Closed bins are returned unchanged.
	assert.Equal(t, weeklyHoursBins, weeklyHoursBins.Resolve([]float64{500}))
}

func TestBinsCut(t *testing.T) {
	got := sleepLostBins.Cut([]float64{1, 4, 0, 9, 200}, []bool{true, true, false, true, true})
	assert.Equal(t, []string{"0–2 hours", "3–5 hours", "", ">8 hours", ""}, got)
}
