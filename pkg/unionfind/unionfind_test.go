package unionfind

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, n int) *UnionFind {
	t.Helper()
	uf, err := NewUnionFind(n)
	require.NoError(t, err)
	return uf
}

func mustFind(t *testing.T, uf *UnionFind, x int) int {
	t.Helper()
	root, err := uf.Find(x)
	require.NoError(t, err)
	return root
}

func TestUnionFind(t *testing.T) {
	uf := mustNew(t, 10)

	// 初始状态：每个元素独立
	if ok, _ := uf.Connected(1, 2); ok {
		t.Errorf("Expected 1 and 2 not connected")
	}

	// 合并 1 和 2
	uf.Union(1, 2)
	if ok, _ := uf.Connected(1, 2); !ok {
		t.Errorf("Expected 1 and 2 connected")
	}

	// 合并 2 和 3
	uf.Union(2, 3)
	if ok, _ := uf.Connected(1, 3); !ok {
		t.Errorf("Expected 1 and 3 connected")
	}

	// 检查集合大小
	if size, _ := uf.Size(1); size != 3 {
		t.Errorf("Expected size of set containing 1 to be 3, got %d", size)
	}

	// 检查未合并的元素
	if ok, _ := uf.Connected(1, 4); ok {
		t.Errorf("Expected 1 and 4 not connected")
	}
}

// 10 个元素分成 {0,3,6} {1,4,7} {2,5,8} {9}
func TestUnionFindFourGroups(t *testing.T) {
	uf := mustNew(t, 10)
	pairs := [][2]int{{0, 3}, {0, 6}, {1, 4}, {1, 7}, {2, 5}, {2, 8}}
	for _, p := range pairs {
		merged, err := uf.Union(p[0], p[1])
		require.NoError(t, err)
		assert.True(t, merged, "union %v", p)
	}

	assert.Equal(t, 4, uf.Count())
	assert.Equal(t, [][]int{{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, {9}}, uf.Groups())
	assert.Equal(t, 9, mustFind(t, uf, 9))

	for _, x := range []int{0, 1, 2} {
		assert.NotEqual(t, mustFind(t, uf, 9), mustFind(t, uf, x))
	}
	assert.NotEqual(t, mustFind(t, uf, 0), mustFind(t, uf, 1))
	assert.NotEqual(t, mustFind(t, uf, 0), mustFind(t, uf, 2))
}

func TestUnionSameSetIsNoop(t *testing.T) {
	uf := mustNew(t, 4)
	uf.Union(0, 1)
	before := uf.String()

	merged, err := uf.Union(1, 0)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, before, uf.String())
	assert.Equal(t, 3, uf.Count())
}

func TestUnionTieBreak(t *testing.T) {
	uf := mustNew(t, 4)

	// 权重相同：y 的根挂到 x 的根下面
	uf.Union(2, 3)
	assert.Equal(t, 2, mustFind(t, uf, 3))

	// 轻的挂到重的下面
	uf.Union(1, 3)
	assert.Equal(t, 2, mustFind(t, uf, 1))
	size, _ := uf.Size(1)
	assert.Equal(t, 3, size)
}

func TestFindPathCompression(t *testing.T) {
	n := 6
	uf := mustNew(t, n)
	// 手动构造一条链 5->4->3->2->1->0
	for i := 1; i < n; i++ {
		uf.parent[i] = i - 1
	}

	assert.Equal(t, 0, mustFind(t, uf, 5))
	for i := 0; i < n; i++ {
		assert.Equal(t, 0, uf.parent[i], "node %d", i)
	}

	// 再次查找结构不变
	snapshot := append([]int(nil), uf.parent...)
	assert.Equal(t, 0, mustFind(t, uf, 5))
	assert.Equal(t, snapshot, uf.parent)
}

// 上百万个元素的长链也不能栈溢出
func TestFindLongChain(t *testing.T) {
	n := 2_000_000
	uf := mustNew(t, n)
	for i := 1; i < n; i++ {
		uf.parent[i] = i - 1
	}
	assert.Equal(t, 0, mustFind(t, uf, n-1))
	assert.Equal(t, 0, uf.parent[n-1])
}

func TestUnionFindErrors(t *testing.T) {
	_, err := NewUnionFind(-1)
	assert.True(t, errors.Is(err, ErrInvalidSize))

	empty := mustNew(t, 0)
	assert.Equal(t, 0, empty.Count())
	_, err = empty.Find(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	uf := mustNew(t, 3)
	tests := []struct {
		name string
		call func() error
	}{
		{"find negative", func() error { _, err := uf.Find(-1); return err }},
		{"find too big", func() error { _, err := uf.Find(3); return err }},
		{"union x", func() error { _, err := uf.Union(3, 0); return err }},
		{"union y", func() error { _, err := uf.Union(0, 7); return err }},
		{"connected", func() error { _, err := uf.Connected(0, -2); return err }},
		{"size", func() error { _, err := uf.Size(5); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrIndexOutOfRange)
		})
	}
	assert.Equal(t, 3, uf.Count())
}

// 与朴素的连通分量标记结果对比：find(x)==find(y) 当且仅当被某串 union 连接
func TestUnionFindMatchesNaiveLabels(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	n := 200
	uf := mustNew(t, n)

	label := make([]int, n)
	for i := range label {
		label[i] = i
	}
	relabel := func(from, to int) {
		for i := range label {
			if label[i] == from {
				label[i] = to
			}
		}
	}

	for range 300 {
		x, y := rng.IntN(n), rng.IntN(n)
		_, err := uf.Union(x, y)
		require.NoError(t, err)
		relabel(label[y], label[x])
	}

	distinct := map[int]struct{}{}
	for x := 0; x < n; x++ {
		distinct[label[x]] = struct{}{}
		for y := 0; y < n; y++ {
			same, err := uf.Connected(x, y)
			require.NoError(t, err)
			if same != (label[x] == label[y]) {
				t.Fatalf("Connected(%d, %d) = %v, want %v", x, y, same, label[x] == label[y])
			}
		}
	}
	assert.Equal(t, len(distinct), uf.Count())
}
