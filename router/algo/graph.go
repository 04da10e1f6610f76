package algo

import (
	"container/heap"
	"math"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "algo")

type edge[ET any] struct {
	from, to int
	length   float64
	attr     ET
}

// SearchGraph 有向带权图，边权非负
// 构建期通过InitNode/InitEdge加入点和边，Freeze后不再变化，可并发查询
type SearchGraph[NT any, ET any] struct {
	// 点的属性
	nodes []NT
	// 边表，下标即边id；同一对点之间允许多条边
	edges []edge[ET]
	// 邻接表，node -> out edge ids
	out [][]int

	frozen bool
	mu     *xsync.RBMutex
}

func NewSearchGraph[NT any, ET any]() *SearchGraph[NT, ET] {
	return &SearchGraph[NT, ET]{
		nodes: make([]NT, 0),
		edges: make([]edge[ET], 0),
		out:   make([][]int, 0),
		mu:    xsync.NewRBMutex(),
	}
}

func (g *SearchGraph[NT, ET]) InitNode(attr NT) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		log.Panic(ErrGraphFrozen)
	}
	g.nodes = append(g.nodes, attr)
	g.out = append(g.out, make([]int, 0))
	return len(g.nodes) - 1
}

func (g *SearchGraph[NT, ET]) InitEdge(from, to int, length float64, attr ET) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		log.Panic(ErrGraphFrozen)
	}
	if from < 0 || from >= len(g.nodes) || to < 0 || to >= len(g.nodes) {
		log.Panicf("%v: edge (%d,%d) with %d nodes", ErrNodeNotExists, from, to, len(g.nodes))
	}
	if length < 0 || math.IsNaN(length) {
		log.Panicf("edge (%d,%d) length %v should be non-negative", from, to, length)
	}
	g.edges = append(g.edges, edge[ET]{from: from, to: to, length: length, attr: attr})
	id := len(g.edges) - 1
	g.out[from] = append(g.out[from], id)
	return id
}

// Freeze 冻结后禁止再加入点和边
func (g *SearchGraph[NT, ET]) Freeze() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frozen = true
}

func (g *SearchGraph[NT, ET]) NodeCount() int {
	return len(g.nodes)
}

func (g *SearchGraph[NT, ET]) EdgeCount() int {
	return len(g.edges)
}

func (g *SearchGraph[NT, ET]) NodeAttr(id int) NT {
	return g.nodes[id]
}

func (g *SearchGraph[NT, ET]) GetEdgeLengthAndAttr(id int) (float64, ET) {
	e := g.edges[id]
	return e.length, e.attr
}

// OutEdges 从node出发的边id
func (g *SearchGraph[NT, ET]) OutEdges(node int) []int {
	return g.out[node]
}

type PathItem[NT any, ET any] struct {
	NodeAttr NT // 边的起点
	EdgeAttr ET
	Length   float64
}

// ShortestPathTree 单源最短路结果：每个点的最短距离与前驱边
type ShortestPathTree[NT any, ET any] struct {
	g     *SearchGraph[NT, ET]
	start int
	dist  []float64
	prev  []int
}

// Dijkstra算法求start出发到所有点的最短路
func (g *SearchGraph[NT, ET]) ShortestPathTree(start int) *ShortestPathTree[NT, ET] {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	if start < 0 || start >= len(g.nodes) {
		log.Panicf("%v: start %d with %d nodes", ErrNodeNotExists, start, len(g.nodes))
	}
	dist := make([]float64, len(g.nodes))
	prev := make([]int, len(g.nodes))
	for i := range dist {
		dist[i] = math.Inf(0)
		prev[i] = NO_EDGE
	}
	dist[start] = 0
	openSet := make(PriorityQueue, 1)
	openSetMap := make(map[int]*Item, 1) // openSet value -> openSet item
	openSet[0] = &Item{Value: start, Priority: 0, Index: 0}
	openSetMap[start] = openSet[0]
	heap.Init(&openSet)
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item).Value
		delete(openSetMap, cur)
		for _, id := range g.out[cur] {
			e := g.edges[id]
			tentative := dist[cur] + e.length
			if tentative >= dist[e.to] {
				continue
			}
			first := math.IsInf(dist[e.to], 0)
			dist[e.to] = tentative
			prev[e.to] = id
			if first {
				// 新访问的节点
				item := &Item{Value: e.to, Priority: tentative}
				heap.Push(&openSet, item)
				openSetMap[e.to] = item
			} else if item, ok := openSetMap[e.to]; ok {
				// 仍在堆中的节点，修改其优先级
				item.Priority = tentative
				heap.Fix(&openSet, item.Index)
			}
		}
	}
	return &ShortestPathTree[NT, ET]{g: g, start: start, dist: dist, prev: prev}
}

func (t *ShortestPathTree[NT, ET]) Start() int {
	return t.start
}

// Cost 到end的最短距离，不可达为+Inf
func (t *ShortestPathTree[NT, ET]) Cost(end int) float64 {
	return t.dist[end]
}

func (t *ShortestPathTree[NT, ET]) Reachable(end int) bool {
	return !math.IsInf(t.dist[end], 0)
}

// Path 沿前驱边回溯得到start到end的边序列，不可达时返回nil和+Inf
func (t *ShortestPathTree[NT, ET]) Path(end int) ([]PathItem[NT, ET], float64) {
	if !t.Reachable(end) {
		return nil, math.Inf(0)
	}
	pathBeforeReversed := make([]PathItem[NT, ET], 0)
	for cur := end; t.prev[cur] != NO_EDGE; {
		e := t.g.edges[t.prev[cur]]
		pathBeforeReversed = append(pathBeforeReversed, PathItem[NT, ET]{
			NodeAttr: t.g.nodes[e.from],
			EdgeAttr: e.attr,
			Length:   e.length,
		})
		cur = e.from
	}
	return lo.Reverse(pathBeforeReversed), t.dist[end]
}

// ShortestPath 单次查询start到end的最短路
func (g *SearchGraph[NT, ET]) ShortestPath(start, end int) ([]PathItem[NT, ET], float64) {
	return g.ShortestPathTree(start).Path(end)
}
