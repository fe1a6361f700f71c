package overlay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointOps(t *testing.T) {
	p, q := Pt(1, 2), Pt(4, 6)
	assert.Equal(t, Pt(5, 8), p.Add(q))
	assert.Equal(t, Pt(3, 4), q.Sub(p))
	assert.InDelta(t, 5.0, p.Distance(q), 1e-12)
	assert.Equal(t, Pt(2.5, 4), p.Lerp(q, 0.5))
	assert.True(t, p.IsFinite())
	assert.False(t, Pt(math.NaN(), 0).IsFinite())
	assert.False(t, Pt(0, math.Inf(-1)).IsFinite())
}

func TestRectGeometry(t *testing.T) {
	r := RectXYWH(10, 20, 30, 40)
	assert.InDelta(t, 30.0, r.Width(), 0)
	assert.InDelta(t, 40.0, r.Height(), 0)
	assert.Equal(t, Pt(25, 40), r.Center())
	assert.Equal(t, RectXYWH(15, 15, 30, 40), r.Translate(5, -5))
	assert.Equal(t, RectXYWH(12, 22, 26, 36), r.Inset(2))

	assert.True(t, r.Contains(Pt(10, 20)), "edges are inclusive")
	assert.True(t, r.Contains(Pt(40, 60)))
	assert.False(t, r.Contains(Pt(40.5, 60)))
}

func TestRectOverlaps(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)

	tests := []struct {
		name string
		b    Rect
		gap  float64
		want bool
	}{
		{"identical", a, 0, true},
		{"partial", RectXYWH(5, 5, 10, 10), 0, true},
		{"touching edges", RectXYWH(10, 0, 10, 10), 0, false},
		{"touching with gap", RectXYWH(10, 0, 10, 10), 2, true},
		{"exactly gap apart", RectXYWH(12, 0, 10, 10), 2, false},
		{"apart vertically", RectXYWH(0, 20, 10, 10), 2, false},
		{"diagonal within gap", RectXYWH(11, 11, 5, 5), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b, tt.gap))
			assert.Equal(t, tt.want, tt.b.Overlaps(a, tt.gap), "symmetric")
		})
	}
}
