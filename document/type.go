package document

import (
	"math"
	"strconv"
)

const (
	TYPE_STOP  = "Stop"
	TYPE_BUS   = "Bus"
	TYPE_ROUTE = "Route"
	TYPE_WAIT  = "Wait"

	NOT_FOUND = "not found"
)

// Document 请求文档
type Document struct {
	RoutingSettings *RoutingSettings `json:"routing_settings,omitempty"`
	BaseRequests    []BaseRequest    `json:"base_requests"`
	StatRequests    []StatRequest    `json:"stat_requests"`
}

type RoutingSettings struct {
	BusWaitTime int     `json:"bus_wait_time" yaml:"bus_wait_time"`
	BusVelocity float64 `json:"bus_velocity" yaml:"bus_velocity"`
}

// BaseRequest 站点（Stop）或线路（Bus）的插入请求，也是MongoDB中的存储格式
type BaseRequest struct {
	Type          string             `json:"type" bson:"type"`
	Name          string             `json:"name" bson:"name"`
	Latitude      float64            `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     float64            `json:"longitude,omitempty" bson:"longitude,omitempty"`
	RoadDistances map[string]float64 `json:"road_distances,omitempty" bson:"road_distances,omitempty"`
	Stops         []string           `json:"stops,omitempty" bson:"stops,omitempty"`
	IsRoundTrip   bool               `json:"is_roundtrip,omitempty" bson:"is_roundtrip,omitempty"`
}

// StatRequest 查询请求：Bus/Stop使用Name，Route使用From/To
type StatRequest struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Float NaN序列化为null
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

type ErrorResponse struct {
	RequestID    int64  `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

type BusResponse struct {
	RequestID       int64   `json:"request_id"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
	RouteLength     float64 `json:"route_length"`
	Curvature       Float   `json:"curvature"`
}

type StopResponse struct {
	RequestID int64    `json:"request_id"`
	Buses     []string `json:"buses"`
}

type RouteItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

type RouteResponse struct {
	RequestID int64       `json:"request_id"`
	TotalTime float64     `json:"total_time"`
	Items     []RouteItem `json:"items"`
}
