package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundDown(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		step int
		want time.Time
	}{
		{
			name: "floors to previous step",
			in:   time.Date(2026, 9, 1, 9, 44, 0, 0, time.UTC),
			step: 15,
			want: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "aligned timestamp unchanged",
			in:   time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
			step: 30,
			want: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "zeroes seconds on aligned minute",
			in:   time.Date(2026, 9, 1, 9, 30, 42, 0, time.UTC),
			step: 30,
			want: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundDown(tt.in, tt.step, time.UTC)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		step int
		want time.Time
	}{
		{
			name: "ceils to next step",
			in:   time.Date(2026, 9, 1, 9, 31, 0, 0, time.UTC),
			step: 30,
			want: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "aligned timestamp unchanged",
			in:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			step: 30,
			want: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "seconds push to next step",
			in:   time.Date(2026, 9, 1, 10, 0, 1, 0, time.UTC),
			step: 30,
			want: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "rolls past midnight",
			in:   time.Date(2026, 9, 1, 23, 55, 0, 0, time.UTC),
			step: 30,
			want: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundUp(tt.in, tt.step, time.UTC)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestRoundIdempotent(t *testing.T) {
	in := time.Date(2026, 9, 1, 9, 47, 13, 0, time.UTC)
	once := RoundUp(in, 15, time.UTC)
	twice := RoundUp(once, 15, time.UTC)
	assert.True(t, once.Equal(twice))

	down := RoundDown(in, 15, time.UTC)
	assert.True(t, down.Equal(RoundDown(down, 15, time.UTC)))
}

func TestRoundInLocalZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 08:44 UTC is 10:44 in Berlin during DST; flooring on the Berlin grid
	// must land on 10:30 local, not on the UTC minute-of-day.
	in := time.Date(2026, 7, 1, 8, 44, 0, 0, time.UTC)
	got := RoundDown(in, 30, berlin)
	want := time.Date(2026, 7, 1, 10, 30, 0, 0, berlin)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestIsOnStep(t *testing.T) {
	assert.True(t, IsOnStep(time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC), 15, time.UTC))
	assert.False(t, IsOnStep(time.Date(2026, 9, 1, 9, 31, 0, 0, time.UTC), 15, time.UTC))
	assert.False(t, IsOnStep(time.Date(2026, 9, 1, 9, 30, 5, 0, time.UTC), 15, time.UTC))
	assert.False(t, IsOnStep(time.Date(2026, 9, 1, 9, 30, 0, 1, time.UTC), 15, time.UTC))
	assert.True(t, IsOnStep(time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC), 60, time.UTC))
}
