package catalogue

import (
	"github.com/paulmach/orb"
)

// Stop 站点，以名称为唯一标识
type Stop struct {
	Name  string
	Point orb.Point // {经度, 纬度}
	// 到其他站点的道路距离（单位：m），可以只声明一个方向
	RoadDistances map[string]float64

	// false表示该站点仅被线路引用，尚未插入坐标
	defined bool
}

func (s *Stop) Defined() bool {
	return s.defined
}

// Line 公交线路
type Line struct {
	Name string
	// 展开后的站点序列：环线即输入序列，往返线为A,B,C -> A,B,C,B,A
	Stops       []string
	IsRoundTrip bool

	stats LineStats
}

// LineStats 冻结时计算的线路统计量
type LineStats struct {
	StopCount       int
	UniqueStopCount int
	Length          float64 // 道路距离之和（单位：m）
	Curvature       float64 // 道路距离/大圆距离，大圆距离为0时为NaN
}

// StopInfo 途经站点的线路名，按字典序排列；Lines为空表示站点存在但无线路经过
type StopInfo struct {
	Lines []string
}

func (s StopInfo) Served() bool {
	return len(s.Lines) > 0
}

// Options 目录的策略开关
type Options struct {
	// 重复插入已有坐标的站点或同名线路时报错，否则后写覆盖
	RejectDuplicateStops bool
	// 道路距离必须在两个方向上分别声明，否则缺失方向取反方向的值
	StrictRoadDistances bool
}
