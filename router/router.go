// Package router 在冻结的目录上构建公交换乘图并求解两站间最快路线
package router

import (
	"context"
	"fmt"
	"sort"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/router/algo"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "router")

type Graph = algo.SearchGraph[NodeAttr, EdgeAttr]

type Router struct {
	// Graph Topo
	//   [STOP A at]--wait-->[STOP A departed]--ride L span 1-->[STOP B at]--wait-->[STOP B departed]
	//                               \                                                   |
	//                                `---------------ride L span 2----------------------+-->[STOP C at]
	// 1. 每个站点两个点：到站点与等车结束点，二者之间为等车边，边权为等车时间
	// 2. 线路展开序列上任意 i < j 且站点不同的一对位置，从 departed(i) 到 at(j) 加一条乘车边，
	//    边权为沿线路 i 到 j 的道路距离 / 速度
	// 3. 查询从 at(from) 到 at(to)，因此每次上车恰好计入一次等车时间
	settings Settings
	graph    *Graph

	atNodeIds       map[string]int
	departedNodeIds map[string]int

	index *ShortestPathIndex
}

// New 在冻结的目录上构建换乘图与最短路索引，构建完成后只读
func New(c *catalogue.Catalogue, settings Settings) (*Router, error) {
	if !c.Frozen() {
		return nil, ErrCatalogueNotFrozen
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	r := &Router{
		settings:        settings,
		atNodeIds:       make(map[string]int),
		departedNodeIds: make(map[string]int),
	}
	if err := r.buildGraph(c); err != nil {
		return nil, err
	}
	r.index = newShortestPathIndex(r.graph)
	log.Infof("route graph built with %d nodes and %d edges", r.graph.NodeCount(), r.graph.EdgeCount())
	return r, nil
}

func (r *Router) buildGraph(c *catalogue.Catalogue) error {
	graph := algo.NewSearchGraph[NodeAttr, EdgeAttr]()
	for _, stop := range c.Stops() {
		at := graph.InitNode(NodeAttr{Stop: stop.Name})
		departed := graph.InitNode(NodeAttr{Stop: stop.Name, Departed: true})
		graph.InitEdge(at, departed, r.settings.WaitTime, EdgeAttr{Kind: EDGE_WAIT, Stop: stop.Name})
		r.atNodeIds[stop.Name] = at
		r.departedNodeIds[stop.Name] = departed
	}
	speed := r.settings.metersPerMinute()
	for _, line := range c.Lines() {
		stops := line.Stops
		// 相邻站点之间的道路距离
		hops := make([]float64, len(stops))
		for k := 1; k < len(stops); k++ {
			d, err := c.RoadDistance(stops[k-1], stops[k])
			if err != nil {
				return fmt.Errorf("line %q: %w", line.Name, err)
			}
			hops[k] = d
		}
		for i := 0; i < len(stops); i++ {
			distance := 0.0
			for j := i + 1; j < len(stops); j++ {
				distance += hops[j]
				if stops[i] == stops[j] {
					continue
				}
				graph.InitEdge(
					r.departedNodeIds[stops[i]],
					r.atNodeIds[stops[j]],
					distance/speed,
					EdgeAttr{Kind: EDGE_RIDE, Line: line.Name, SpanCount: j - i},
				)
			}
		}
	}
	graph.Freeze()
	r.graph = graph
	return nil
}

// BuildRoute 求from到to用时最短的路线
// 站点未知返回ErrUnknownStop；不可达返回ok=false；from==to时返回用时为0的空路线
func (r *Router) BuildRoute(from, to string) (route *Route, ok bool, err error) {
	start, ok := r.atNodeIds[from]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownStop, from)
	}
	end, ok := r.atNodeIds[to]
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownStop, to)
	}
	path, cost := r.index.Tree(start).Path(end)
	if path == nil {
		return nil, false, nil
	}
	return &Route{
		TotalTime: cost,
		Activities: lo.Map(path, func(item algo.PathItem[NodeAttr, EdgeAttr], _ int) Activity {
			attr := item.EdgeAttr
			switch attr.Kind {
			case EDGE_WAIT:
				return Activity{Kind: EDGE_WAIT, Stop: attr.Stop, Time: item.Length}
			case EDGE_RIDE:
				return Activity{Kind: EDGE_RIDE, Line: attr.Line, SpanCount: attr.SpanCount, Time: item.Length}
			default:
				log.Panicf("unknown edge kind %v", attr.Kind)
				return Activity{}
			}
		}),
	}, true, nil
}

// Precompute 预先计算所有站点出发的最短路树，workers<=0表示不限制并发
func (r *Router) Precompute(ctx context.Context, workers int) error {
	sources := lo.Values(r.atNodeIds)
	sort.Ints(sources)
	return r.index.Precompute(ctx, sources, workers)
}

// getter

func (r *Router) HasStop(name string) bool {
	_, ok := r.atNodeIds[name]
	return ok
}

// StopNames 按名称排序的图中全部站点
func (r *Router) StopNames() []string {
	names := lo.Keys(r.atNodeIds)
	sort.Strings(names)
	return names
}

func (r *Router) Graph() *Graph {
	return r.graph
}

func (r *Router) Index() *ShortestPathIndex {
	return r.index
}
