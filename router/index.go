package router

import (
	"context"

	"git.fiblab.net/sim/transit/router/algo"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"
)

type Tree = algo.ShortestPathTree[NodeAttr, EdgeAttr]

// ShortestPathIndex 冻结图上的单源最短路树缓存
// 每个起点的树只计算一次，之后的查询直接回溯前驱边；图不变，因此树不会失效
type ShortestPathIndex struct {
	graph *Graph
	// start node -> tree
	trees *xsync.MapOf[int, *Tree]
}

func newShortestPathIndex(graph *Graph) *ShortestPathIndex {
	return &ShortestPathIndex{
		graph: graph,
		trees: xsync.NewMapOf[int, *Tree](),
	}
}

// Tree 取得start出发的最短路树，并发调用时同一起点只计算一次
func (x *ShortestPathIndex) Tree(start int) *Tree {
	tree, _ := x.trees.LoadOrCompute(start, func() *Tree {
		return x.graph.ShortestPathTree(start)
	})
	return tree
}

// Precompute 并发计算sources出发的最短路树
func (x *ShortestPathIndex) Precompute(ctx context.Context, sources []int, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, start := range sources {
		start := start // per-iteration copy (go 1.21 loop semantics)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			x.Tree(start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Infof("precomputed %d shortest path trees", x.Size())
	return nil
}

// Size 已计算的最短路树数量
func (x *ShortestPathIndex) Size() int {
	return x.trees.Size()
}
