package unionfind

import (
	"fmt"

	"unionfind_tool/pkg/errorutil"
)

var (
	ErrInvalidSize     = errorutil.ErrInvalidSize
	ErrIndexOutOfRange = errorutil.ErrIndexOutOfRange
)

// UnionFind 是并查集结构，支持路径压缩和按权重合并
// 元素用 [0, n) 的下标表示，大小固定，创建后只能通过 Union 修改
type UnionFind struct {
	parent []int
	weight []int // 只有根节点的值有意义：集合内元素个数
	count  int   // 当前剩余的集合个数
}

// NewUnionFind 初始化并查集，元素范围为 [0, n)，n 为 0 时是合法的空集
func NewUnionFind(n int) (*UnionFind, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	parent := make([]int, n)
	weight := make([]int, n)
	for i := range parent {
		parent[i] = i
		weight[i] = 1
	}
	return &UnionFind{parent: parent, weight: weight, count: n}, nil
}

// Len 返回元素总数
func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

// Count 返回不相交集合的个数
func (uf *UnionFind) Count() int {
	return uf.count
}

func (uf *UnionFind) check(x int) error {
	if x < 0 || x >= len(uf.parent) {
		return fmt.Errorf("%w: %d 不在 [0, %d) 内", ErrIndexOutOfRange, x, len(uf.parent))
	}
	return nil
}

// Find 查找元素所在集合的根节点（带路径压缩）
// 像素级别的集合可能有上百万个元素，这里不能用递归
func (uf *UnionFind) Find(x int) (int, error) {
	if err := uf.check(x); err != nil {
		return 0, err
	}
	return uf.find(x), nil
}

func (uf *UnionFind) find(x int) int {
	// 第一遍：找到根
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	// 第二遍：路径上的节点全部直接挂到根上
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// Union 合并两个集合（按权重优化），已经在同一个集合时返回 false
// 权重相同时 y 的根挂到 x 的根下面，保证结果可以复现
func (uf *UnionFind) Union(x, y int) (bool, error) {
	if err := uf.check(x); err != nil {
		return false, err
	}
	if err := uf.check(y); err != nil {
		return false, err
	}

	rootX := uf.find(x)
	rootY := uf.find(y)
	if rootX == rootY {
		return false, nil
	}

	if uf.weight[rootX] < uf.weight[rootY] {
		uf.parent[rootX] = rootY
		uf.weight[rootY] += uf.weight[rootX]
	} else {
		uf.parent[rootY] = rootX
		uf.weight[rootX] += uf.weight[rootY]
	}
	uf.count--
	return true, nil
}

// Connected 判断两个元素是否在同一个集合
func (uf *UnionFind) Connected(x, y int) (bool, error) {
	rootX, err := uf.Find(x)
	if err != nil {
		return false, err
	}
	rootY, err := uf.Find(y)
	if err != nil {
		return false, err
	}
	return rootX == rootY, nil
}

// Size 返回某个集合的大小
func (uf *UnionFind) Size(x int) (int, error) {
	root, err := uf.Find(x)
	if err != nil {
		return 0, err
	}
	return uf.weight[root], nil
}

// Groups 按根节点分组返回所有集合，组内元素升序，组之间按最小元素升序
func (uf *UnionFind) Groups() [][]int {
	index := make(map[int]int, uf.count)
	groups := make([][]int, 0, uf.count)
	for i := range uf.parent {
		root := uf.find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func (uf *UnionFind) String() string {
	return fmt.Sprintf("UnionFind(\n\tparent=%v\n\tweight=%v\n)", uf.parent, uf.weight)
}
