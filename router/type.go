package router

import (
	"fmt"
	"math"
)

// Settings 路径规划参数
type Settings struct {
	WaitTime float64 // 每次上车前的等车时间（单位：min）
	Velocity float64 // 公交平均速度（单位：km/h）
}

func (s Settings) Validate() error {
	if s.WaitTime < 0 || math.IsNaN(s.WaitTime) || math.IsInf(s.WaitTime, 0) {
		return fmt.Errorf("%w: wait time %v", ErrInvalidSettings, s.WaitTime)
	}
	if !(s.Velocity > 0) || math.IsInf(s.Velocity, 0) {
		return fmt.Errorf("%w: velocity %v", ErrInvalidSettings, s.Velocity)
	}
	return nil
}

// 每分钟行驶的距离（单位：m）
func (s Settings) metersPerMinute() float64 {
	return s.Velocity * METERS_PER_KILOMETER / MINUTES_PER_HOUR
}

type EdgeKind int

const (
	// 在站点等车
	EDGE_WAIT EdgeKind = iota
	// 乘坐某条线路经过若干站
	EDGE_RIDE
)

func (k EdgeKind) String() string {
	switch k {
	case EDGE_WAIT:
		return "Wait"
	case EDGE_RIDE:
		return "Bus"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// NodeAttr 每个站点两个点：到站（Departed=false）与等车结束（Departed=true）
type NodeAttr struct {
	Stop     string
	Departed bool
}

// EdgeAttr 边的类型与标签，EDGE_WAIT只使用Stop，EDGE_RIDE使用Line/SpanCount
type EdgeAttr struct {
	Kind      EdgeKind
	Stop      string
	Line      string
	SpanCount int
}

// Activity 路线中的一段：等车或乘车
type Activity struct {
	Kind      EdgeKind
	Stop      string  // EDGE_WAIT
	Line      string  // EDGE_RIDE
	SpanCount int     // EDGE_RIDE
	Time      float64 // 用时（单位：min）
}

// Route 两站之间用时最短的路线
type Route struct {
	TotalTime  float64
	Activities []Activity
}
