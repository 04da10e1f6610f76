package engine

import "fmt"

type Phase int

const (
	PHASE_BUILDING Phase = iota
	PHASE_FROZEN
)

func (p Phase) String() string {
	switch p {
	case PHASE_BUILDING:
		return "building"
	case PHASE_FROZEN:
		return "frozen"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// StopRecord 站点输入记录
type StopRecord struct {
	Name          string             `validate:"required"`
	Latitude      float64            `validate:"gte=-90,lte=90"`
	Longitude     float64            `validate:"gte=-180,lte=180"`
	RoadDistances map[string]float64 `validate:"dive,keys,required,endkeys,gte=0"`
}

// LineRecord 线路输入记录
type LineRecord struct {
	Name        string   `validate:"required"`
	Stops       []string `validate:"min=1,dive,required"`
	IsRoundTrip bool
}

// SettingsRecord 路径规划参数输入记录
type SettingsRecord struct {
	WaitTime int     `validate:"gte=0"` // min
	Velocity float64 `validate:"gt=0"`  // km/h
}

// Options 引擎选项
type Options struct {
	RejectDuplicateStops bool
	StrictRoadDistances  bool
	// 冻结时预先计算全部最短路树
	Precompute        bool
	PrecomputeWorkers int
}

// Stats 目录、换乘图与最短路缓存的规模
type Stats struct {
	Phase       string `json:"phase"`
	Stops       int    `json:"stops"`
	Lines       int    `json:"lines"`
	GraphNodes  int    `json:"graph_nodes"`
	GraphEdges  int    `json:"graph_edges"`
	CachedTrees int    `json:"cached_trees"`
}
