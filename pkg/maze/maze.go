// Package maze 用随机化的 Kruskal 算法生成完美迷宫
//
// 所有相邻格子之间的墙打乱顺序后逐个检查：墙两边的格子还不连通就拆掉这面墙，
// 并在并查集中合并两个格子。最后打通的通道正好构成 n² 个格子的一棵生成树。
package maze

import (
	"fmt"
	"math/rand/v2"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/logutil"
	"unionfind_tool/pkg/unionfind"
)

var ErrInvalidSize = errorutil.ErrInvalidSize

// 迷宫边长的默认值
const DefaultSize = 10

// Edges 返回 n x n 网格内部所有的墙，每个格子只取右边和下边，共 2n(n-1) 面
// 四周的边界墙不在其中
func Edges(n int) []Edge {
	if n <= 0 {
		return nil
	}
	edges := make([]Edge, 0, 2*n*(n-1))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Cell{Col: col, Row: row}
			// 右边的墙
			if col+1 < n {
				edges = append(edges, Edge{A: c, B: Cell{Col: col + 1, Row: row}})
			}
			// 下边的墙
			if row+1 < n {
				edges = append(edges, Edge{A: c, B: Cell{Col: col, Row: row + 1}})
			}
		}
	}
	return edges
}

type Carver struct {
	n   int
	rng *rand.Rand
}

// NewCarver rng 为 nil 时使用随机种子
func NewCarver(n int, rng *rand.Rand) (*Carver, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: 迷宫边长必须大于 0，当前 %d", ErrInvalidSize, n)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Carver{n: n, rng: rng}, nil
}

// NewSeededCarver 固定种子，结果可以复现
func NewSeededCarver(n int, seed uint64) (*Carver, error) {
	return NewCarver(n, rand.New(rand.NewPCG(seed, seed)))
}

func (c *Carver) N() int {
	return c.n
}

// Result 生成结果
type Result struct {
	Grid       *Grid   // 最终的迷宫
	Steps      []*Grid // 每拆一面墙保存一帧
	Removed    []Edge  // 按拆除顺序
	Candidates int     // 候选墙的总数
}

// Carve 生成迷宫并保存每一步的快照
func (c *Carver) Carve() (*Result, error) {
	var steps []*Grid
	res, err := c.CarveFunc(func(g *Grid) error {
		steps = append(steps, g.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Steps = steps
	return res, nil
}

// CarveFunc 每拆一面墙回调一次，不保存快照，回调返回错误时立即中止
// 回调拿到的是正在使用的网格，需要保存的话自己复制
func (c *Carver) CarveFunc(onStep func(g *Grid) error) (*Result, error) {
	uf, err := unionfind.NewUnionFind(c.n * c.n)
	if err != nil {
		return nil, err
	}

	grid := NewGrid(c.n)
	edges := Edges(c.n)
	// Fisher-Yates 均匀随机排列
	c.rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})

	res := &Result{Grid: grid, Candidates: len(edges)}
	for _, e := range edges {
		merged, err := uf.Union(e.A.Index(c.n), e.B.Index(c.n))
		if err != nil {
			return nil, err
		}
		// 已经连通，跳过
		if !merged {
			continue
		}

		grid.Carve(e)
		res.Removed = append(res.Removed, e)
		if onStep != nil {
			if err := onStep(grid); err != nil {
				return nil, err
			}
		}
	}

	logutil.Debug("迷宫 %dx%d 生成完成: 候选墙 %d 拆除 %d 剩余集合 %d",
		c.n, c.n, res.Candidates, len(res.Removed), uf.Count())
	return res, nil
}
