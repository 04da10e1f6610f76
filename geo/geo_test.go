package geo_test

import (
	"math"
	"testing"

	"git.fiblab.net/sim/transit/geo"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	// 赤道上经度相差1度
	d := geo.Distance(orb.Point{0, 0}, orb.Point{1, 0})
	assert.InDelta(t, geo.EARTH_RADIUS*math.Pi/180, d, 1e-6)

	// 对称
	p1 := orb.Point{37.6517, 55.574371}
	p2 := orb.Point{37.645687, 55.581065}
	assert.InDelta(t, geo.Distance(p1, p2), geo.Distance(p2, p1), 1e-9)
	assert.Greater(t, geo.Distance(p1, p2), 0.0)

	// 同一点
	assert.Equal(t, 0.0, geo.Distance(p1, p1))
	assert.False(t, math.IsNaN(geo.Distance(p1, p1)))
}

func TestPathDistance(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{1, 0}
	c := orb.Point{2, 0}
	assert.InDelta(t, 2*geo.Distance(a, b), geo.PathDistance([]orb.Point{a, b, c}), 1e-6)
	assert.Equal(t, 0.0, geo.PathDistance([]orb.Point{a}))
	assert.Equal(t, 0.0, geo.PathDistance(nil))
}
