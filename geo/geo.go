// Package geo 提供站点坐标之间的大圆距离计算
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// 地球平均半径（单位：m），线路弯曲度按该半径计算，与orb/geo使用的6378137m赤道半径不同
const EARTH_RADIUS = 6_371_000

func toRadian(degree float64) float64 {
	return degree * math.Pi / 180
}

// Distance 计算两点之间的大圆距离（单位：m），点坐标为orb.Point{经度, 纬度}
func Distance(p1, p2 orb.Point) float64 {
	lat1, lat2 := toRadian(p1.Lat()), toRadian(p2.Lat())
	dLon := toRadian(p1.Lon() - p2.Lon())
	cos := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	// 浮点误差可能使cos略超出[-1, 1]
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * EARTH_RADIUS
}

// PathDistance 计算折线上相邻点的大圆距离之和
func PathDistance(points []orb.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
