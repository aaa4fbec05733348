package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyRange_Width(t *testing.T) {
	tt := []struct {
		from     Frequency
		to       Frequency
		expected Frequency
	}{
		{0, 300e9, 300e9},
		{144e6, 148e6, 4e6},
		{7e6, 7e6, 0},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual := FrequencyRange{tc.from, tc.to}.Width()
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFrequencyRange_Overlaps(t *testing.T) {
	r := FrequencyRange{From: 144e6, To: 148e6}
	assert.True(t, r.Overlaps(FrequencyRange{From: 146e6, To: 150e6}))
	assert.True(t, r.Overlaps(FrequencyRange{From: 148e6, To: 150e6}))
	assert.False(t, r.Overlaps(FrequencyRange{From: 149e6, To: 150e6}))
	assert.True(t, r.Contains(144e6))
	assert.False(t, r.Contains(143.9e6))
}

func TestPxRange_Intersects(t *testing.T) {
	tt := []struct {
		a, b     PxRange
		expected bool
	}{
		{PxRange{0, 10}, PxRange{5, 15}, true},
		{PxRange{0, 10}, PxRange{10, 15}, true},
		{PxRange{0, 10}, PxRange{11, 15}, false},
		{PxRange{20, 30}, PxRange{0, 19}, false},
		{PxRange{0, 100}, PxRange{40, 50}, true},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Intersects(tc.b))
			assert.Equal(t, tc.expected, tc.b.Intersects(tc.a))
		})
	}
}

func TestGeometry(t *testing.T) {
	g := DefaultGeometry
	assert.Equal(t, Px(20), g.Left())
	assert.Equal(t, Px(1180), g.Right())
	assert.Equal(t, Px(1160), g.InnerWidth())
	assert.Equal(t, Px(260), g.Bottom())
}

func TestTransform_ApplyInvert(t *testing.T) {
	tr := Transform{K: 4, X: -300}
	assert.Equal(t, Px(100), tr.Apply(100))
	assert.Equal(t, Px(100), tr.Invert(tr.Apply(100)))
	assert.Equal(t, Px(123), Identity.Apply(123))
}

func TestFormatFrequency(t *testing.T) {
	tt := []struct {
		value    Frequency
		expected string
	}{
		{144.39e6, "144.390 MHz"},
		{2.4e9, "2.400 GHz"},
		{7074e3, "7.074 MHz"},
		{137.5e3, "137.500 kHz"},
		{999, "999 Hz"},
		{0, "0 Hz"},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatFrequency(tc.value))
		})
	}
}

func TestFormatTick(t *testing.T) {
	tt := []struct {
		value    Frequency
		span     Frequency
		expected string
	}{
		{500, 800, "500 Hz"},
		{12500, 50e3, "12.50 kHz"},
		{145e6, 4e6, "145.00 MHz"},
		{50e9, 300e9, "50.00 GHz"},
		{2e6, 1e9, "0.00 GHz"},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatTick(tc.value, tc.span))
		})
	}
}

func TestRegion(t *testing.T) {
	r, ok := ParseRegion(" eu ")
	assert.True(t, ok)
	assert.Equal(t, RegionEU, r)

	_, ok = ParseRegion("ITU4")
	assert.False(t, ok)

	assert.Equal(t, RegionEU, RegionUS.Next())
	assert.Equal(t, RegionUS, RegionAPAC.Next())
	assert.Equal(t, "Europe", RegionEU.Label())
}

func TestColor_RGB(t *testing.T) {
	r, g, b := Color("#ff4081").RGB()
	assert.InDelta(t, 1.0, r, 0.001)
	assert.InDelta(t, 0x40/255.0, g, 0.001)
	assert.InDelta(t, 0x81/255.0, b, 0.001)

	r, g, b = Color("#555").RGB()
	assert.InDelta(t, 0x55/255.0, r, 0.001)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)

	r, _, _ = Color("chartreuse").RGB()
	assert.Equal(t, 0.5, r)

	assert.Equal(t, Color("#555"), Color("").Or("#555"))
	assert.Equal(t, Color("#123456"), Color("#123456").Or("#555"))
}

func TestFormatMHzRange(t *testing.T) {
	assert.Equal(t, "144.000", FormatMHz(144e6))
	assert.Equal(t, "144.000 – 148.000 MHz", FormatMHzRange(FrequencyRange{From: 144e6, To: 148e6}))
}
