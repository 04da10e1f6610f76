package algo_test

import (
	"math"
	"sync"
	"testing"

	"git.fiblab.net/sim/transit/router/algo"
	"github.com/stretchr/testify/assert"
)

func TestSearchGraph(t *testing.T) {
	g := algo.NewSearchGraph[int, int]()

	// 初始化点
	n1 := g.InitNode(1)
	n2 := g.InitNode(2)
	n3 := g.InitNode(3)
	n4 := g.InitNode(4)

	// 初始化边
	g.InitEdge(n1, n2, 1, 12)
	g.InitEdge(n2, n3, 1, 23)
	e34 := g.InitEdge(n3, n4, 1, 34)
	g.Freeze()

	length, attr := g.GetEdgeLengthAndAttr(e34)
	assert.Equal(t, 1.0, length)
	assert.Equal(t, 34, attr)
	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())

	// 计算最短路
	path, cost := g.ShortestPath(n1, n4)
	assert.Len(t, path, 3)
	assert.Equal(t, 1, path[0].NodeAttr)
	assert.Equal(t, 12, path[0].EdgeAttr)
	assert.Equal(t, 2, path[1].NodeAttr)
	assert.Equal(t, 23, path[1].EdgeAttr)
	assert.Equal(t, 3, path[2].NodeAttr)
	assert.Equal(t, 34, path[2].EdgeAttr)
	assert.Equal(t, 3.0, cost)

	// 起点即终点
	path, cost = g.ShortestPath(n3, n3)
	assert.Len(t, path, 0)
	assert.Equal(t, 0.0, cost)

	// 反向不可达
	path, cost = g.ShortestPath(n4, n1)
	assert.Nil(t, path)
	assert.True(t, math.IsInf(cost, 1))
}

func TestSearchGraph2(t *testing.T) {
	g := algo.NewSearchGraph[int, int]()

	// 初始化点
	n1 := g.InitNode(1)
	n2 := g.InitNode(2)
	n3 := g.InitNode(3)

	// 初始化边
	g.InitEdge(n1, n2, 10, 12)
	g.InitEdge(n1, n3, 2, 13)
	g.InitEdge(n3, n2, 1, 32)

	// 计算最短路
	path, cost := g.ShortestPath(n1, n2)
	assert.Len(t, path, 2)
	assert.Equal(t, 1, path[0].NodeAttr)
	assert.Equal(t, 13, path[0].EdgeAttr)
	assert.Equal(t, 2.0, path[0].Length)
	assert.Equal(t, 3, path[1].NodeAttr)
	assert.Equal(t, 32, path[1].EdgeAttr)
	assert.Equal(t, 3.0, cost)
}

func TestParallelEdges(t *testing.T) {
	g := algo.NewSearchGraph[string, string]()
	a := g.InitNode("a")
	b := g.InitNode("b")
	g.InitEdge(a, b, 5, "slow")
	g.InitEdge(a, b, 3, "fast")
	g.InitEdge(b, a, 0, "back")

	path, cost := g.ShortestPath(a, b)
	assert.Len(t, path, 1)
	assert.Equal(t, "fast", path[0].EdgeAttr)
	assert.Equal(t, 3.0, cost)
}

func TestShortestPathTree(t *testing.T) {
	g := algo.NewSearchGraph[int, int]()
	nodes := make([]int, 6)
	for i := range nodes {
		nodes[i] = g.InitNode(i)
	}
	// 0 -> 1 -> 2 -> 3 链，另有 0 -> 3 的长边，4 孤立，5 -> 0
	g.InitEdge(nodes[0], nodes[1], 1, 1)
	g.InitEdge(nodes[1], nodes[2], 1, 2)
	g.InitEdge(nodes[2], nodes[3], 1, 3)
	g.InitEdge(nodes[0], nodes[3], 5, 4)
	g.InitEdge(nodes[5], nodes[0], 1, 5)
	g.Freeze()

	tree := g.ShortestPathTree(nodes[0])
	assert.Equal(t, nodes[0], tree.Start())
	assert.Equal(t, 0.0, tree.Cost(nodes[0]))
	assert.Equal(t, 2.0, tree.Cost(nodes[2]))
	assert.Equal(t, 3.0, tree.Cost(nodes[3]))
	assert.False(t, tree.Reachable(nodes[4]))
	assert.False(t, tree.Reachable(nodes[5]))

	path, cost := tree.Path(nodes[3])
	assert.Equal(t, 3.0, cost)
	assert.Equal(t, []int{1, 2, 3}, []int{path[0].EdgeAttr, path[1].EdgeAttr, path[2].EdgeAttr})

	// 同一棵树多次查询结果一致
	again, _ := tree.Path(nodes[3])
	assert.Equal(t, path, again)
}

func TestConcurrentQueries(t *testing.T) {
	g := algo.NewSearchGraph[int, int]()
	n := 50
	for i := 0; i < n; i++ {
		g.InitNode(i)
	}
	for i := 0; i+1 < n; i++ {
		g.InitEdge(i, i+1, float64(i%3), i)
	}
	g.Freeze()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, cost := g.ShortestPath(0, n-1)
			assert.Equal(t, 48.0, cost)
		}()
	}
	wg.Wait()
}

func TestInvalidEdge(t *testing.T) {
	g := algo.NewSearchGraph[int, int]()
	a := g.InitNode(0)
	assert.Panics(t, func() { g.InitEdge(a, 7, 1, 0) })
	assert.Panics(t, func() { g.InitEdge(a, a, -1, 0) })
	g.Freeze()
	assert.Panics(t, func() { g.InitNode(1) })
}
