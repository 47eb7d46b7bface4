package floodfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unionfind_tool/pkg/raster"
)

var (
	white = raster.Color{R: 255, G: 255, B: 255}
	black = raster.Color{}
	red   = raster.Color{R: 255}
	blue  = raster.Color{B: 255}
)

// 画一张左白右黑的图，中间一列是分界
func splitRaster(w, h int) *raster.Raster {
	r := raster.Filled(w, h, white)
	for row := 0; row < h; row++ {
		for col := w / 2; col < w; col++ {
			r.Set(raster.Point{Col: col, Row: row}, black)
		}
	}
	return r
}

func TestSimilarityThreshold(t *testing.T) {
	base := raster.Color{R: 100, G: 100, B: 100}

	// 10² + 10² + 10² = 300
	assert.True(t, raster.IsSimilar(base, raster.Color{R: 110, G: 110, B: 110}, raster.DefaultThreshold))
	assert.Equal(t, 300, raster.Distance(base, raster.Color{R: 110, G: 110, B: 110}))

	// 301 = 12² + 11² + 6² = 144 + 121 + 36
	over := raster.Color{R: 112, G: 111, B: 106}
	assert.Equal(t, 301, raster.Distance(base, over))
	assert.False(t, raster.IsSimilar(base, over, raster.DefaultThreshold))
}

func TestSimilaritySymmetric(t *testing.T) {
	colors := []raster.Color{white, black, red, blue, {R: 10, G: 20, B: 30}, {R: 12, G: 21, B: 40}, {R: 200, G: 199, B: 190}}
	for _, a := range colors {
		assert.True(t, raster.IsSimilar(a, a, raster.DefaultThreshold))
		for _, b := range colors {
			assert.Equal(t,
				raster.IsSimilar(a, b, raster.DefaultThreshold),
				raster.IsSimilar(b, a, raster.DefaultThreshold), "%s vs %s", a, b)
		}
	}
}

func TestMergeRegionsSplit(t *testing.T) {
	r := splitRaster(6, 4)
	uf, err := MergeRegions(r, raster.DefaultThreshold)
	require.NoError(t, err)

	assert.Equal(t, 2, uf.Count())
	left, _ := uf.Find(r.Index(raster.Point{Col: 0, Row: 0}))
	right, _ := uf.Find(r.Index(raster.Point{Col: 5, Row: 3}))
	assert.NotEqual(t, left, right)

	for idx := range r.Pix {
		root, _ := uf.Find(idx)
		if r.Pix[idx] == white {
			assert.Equal(t, left, root)
		} else {
			assert.Equal(t, right, root)
		}
	}
}

// 相似不具备传递性：渐变的一串像素会被合并成一个区域
func TestMergeRegionsChain(t *testing.T) {
	r := raster.New(10, 1)
	for col := 0; col < 10; col++ {
		v := uint8(col * 10)
		r.Set(raster.Point{Col: col}, raster.Color{R: v, G: v, B: v})
	}
	// 首尾差距远超阈值
	assert.False(t, raster.IsSimilar(r.Pix[0], r.Pix[9], raster.DefaultThreshold))

	uf, err := MergeRegions(r, raster.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 1, uf.Count())
}

func TestFillUnionFindUniform(t *testing.T) {
	r := raster.Filled(3, 3, white)
	frames, err := NewEngine(DefaultConfig()).Fill(r, raster.Point{Col: 1, Row: 1}, red, ModeUnionFind)
	require.NoError(t, err)

	assert.Equal(t, 9, r.Count(red))
	require.NotEmpty(t, frames)
	assert.True(t, frames[len(frames)-1].Equal(r))
}

func TestFillModesAgreeOnUniform(t *testing.T) {
	cfg := Config{Threshold: raster.DefaultThreshold, Interval: 2}
	base := raster.Filled(3, 3, white)

	results := map[Mode]*raster.Raster{}
	for _, mode := range []Mode{ModeUnionFind, ModeStack, ModeQueue} {
		t.Run(string(mode), func(t *testing.T) {
			r := base.Clone()
			frames, stats, err := NewEngine(cfg).FillWithStats(r, raster.Point{Col: 1, Row: 1}, red, mode)
			require.NoError(t, err)

			assert.Equal(t, 9, r.Count(red))
			require.NotEmpty(t, frames)
			assert.True(t, frames[len(frames)-1].Equal(r))
			assert.Equal(t, len(frames), stats.Frames)
			// 每个像素只被上色一次
			assert.Equal(t, 9, stats.Recolored)
			results[mode] = r
		})
	}

	assert.True(t, results[ModeStack].Equal(results[ModeQueue]))
	assert.True(t, results[ModeStack].Equal(results[ModeUnionFind]))
}

func TestFillTraversalStopsAtBoundary(t *testing.T) {
	for _, mode := range []Mode{ModeStack, ModeQueue, ModeUnionFind} {
		t.Run(string(mode), func(t *testing.T) {
			r := splitRaster(6, 4)
			_, err := NewEngine(DefaultConfig()).Fill(r, raster.Point{Col: 0, Row: 2}, blue, mode)
			require.NoError(t, err)

			assert.Equal(t, 12, r.Count(blue))
			assert.Equal(t, 12, r.Count(black))
			assert.Equal(t, 0, r.Count(white))
		})
	}
}

func TestFillSetMatchesComponent(t *testing.T) {
	r := splitRaster(8, 5)
	// 左半边挖一个黑色的洞，和右边不连通
	r.Set(raster.Point{Col: 1, Row: 2}, black)

	uf, err := MergeRegions(r, raster.DefaultThreshold)
	require.NoError(t, err)
	start := raster.Point{Col: 7, Row: 0}
	target, _ := uf.Find(r.Index(start))

	engine := NewEngine(DefaultConfig())
	_, err = engine.FillSet(r, uf, start, red)
	require.NoError(t, err)

	for idx := range r.Pix {
		root, _ := uf.Find(idx)
		assert.Equal(t, root == target, r.Pix[idx] == red, "pixel %v", r.PointOf(idx))
	}
	// 洞没有被填
	assert.Equal(t, black, r.At(raster.Point{Col: 1, Row: 2}))

	// 同样的分组再填一次，图不变
	once := r.Clone()
	_, err = engine.FillSet(r, uf, start, red)
	require.NoError(t, err)
	assert.True(t, once.Equal(r))
}

func TestFillUnionFindIdempotent(t *testing.T) {
	r := splitRaster(6, 6)
	engine := NewEngine(DefaultConfig())
	start := raster.Point{Col: 5, Row: 5}

	_, err := engine.Fill(r, start, red, ModeUnionFind)
	require.NoError(t, err)
	once := r.Clone()

	_, err = engine.Fill(r, start, red, ModeUnionFind)
	require.NoError(t, err)
	assert.True(t, once.Equal(r))
}

func TestFillSnapshotCadence(t *testing.T) {
	// 10x10 = 100 个点，间隔 30：第 30 60 90 个点各一帧，再补最后一帧
	r := raster.Filled(10, 10, white)
	frames, stats, err := NewEngine(Config{Threshold: 300, Interval: 30}).
		FillWithStats(r, raster.Point{}, red, ModeUnionFind)
	require.NoError(t, err)

	assert.Equal(t, 100, stats.Processed)
	require.Len(t, frames, 4)
	assert.Equal(t, 30, frames[0].Count(red))
	assert.Equal(t, 60, frames[1].Count(red))
	assert.Equal(t, 90, frames[2].Count(red))
	assert.True(t, frames[3].Equal(r))

	// 间隔正好整除时不重复补帧
	r = raster.Filled(10, 10, white)
	frames, err = NewEngine(Config{Threshold: 300, Interval: 50}).Fill(r, raster.Point{}, red, ModeUnionFind)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.True(t, frames[1].Equal(r))
}

func TestFillFrameLimitUnionFind(t *testing.T) {
	// 900 个点每个点一次快照，上限 6：提前选好 5 次快照，再补最后一帧
	r := raster.Filled(30, 30, white)
	frames, stats, err := NewEngine(Config{Threshold: 300, Interval: 1, FrameLimit: 6}).
		FillWithStats(r, raster.Point{}, red, ModeUnionFind)
	require.NoError(t, err)

	assert.Equal(t, 900, stats.Snapshots)
	assert.Equal(t, 6, stats.Frames)
	require.Len(t, frames, 6)
	// 保留第 0 180 360 540 720 次快照
	assert.Equal(t, 1, frames[0].Count(red))
	assert.Equal(t, 181, frames[1].Count(red))
	assert.Equal(t, 721, frames[4].Count(red))
	assert.True(t, frames[5].Equal(r))
}

func TestFillFrameLimitTraversal(t *testing.T) {
	for _, mode := range []Mode{ModeStack, ModeQueue} {
		t.Run(string(mode), func(t *testing.T) {
			r := raster.Filled(40, 40, white)
			frames, stats, err := NewEngine(Config{Threshold: 300, Interval: 1, FrameLimit: 5}).
				FillWithStats(r, raster.Point{Col: 20, Row: 20}, red, mode)
			require.NoError(t, err)

			assert.Equal(t, stats.Processed, stats.Snapshots)
			assert.Greater(t, stats.Snapshots, 1600)
			assert.LessOrEqual(t, len(frames), 10)
			assert.Equal(t, len(frames), stats.Frames)
			assert.True(t, frames[len(frames)-1].Equal(r))

			// 留下的帧仍然按处理顺序排列
			for i := 1; i < len(frames); i++ {
				assert.LessOrEqual(t, frames[i-1].Count(red), frames[i].Count(red))
			}
		})
	}
}

func TestFillFrameLimitOne(t *testing.T) {
	for _, mode := range []Mode{ModeUnionFind, ModeQueue} {
		t.Run(string(mode), func(t *testing.T) {
			r := raster.Filled(8, 8, white)
			frames, err := NewEngine(Config{Threshold: 300, Interval: 1, FrameLimit: 1}).
				Fill(r, raster.Point{}, red, mode)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(frames), 2)
			assert.True(t, frames[len(frames)-1].Equal(r))
		})
	}
}

func TestFillTraversalCountsProcessedPoints(t *testing.T) {
	// 1x3 的一条线：从中间开始，处理 中 左 右，左右的邻居都指回中间
	r := raster.Filled(3, 1, white)
	_, stats, err := NewEngine(DefaultConfig()).FillWithStats(r, raster.Point{Col: 1}, red, ModeQueue)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Recolored)
	// 中间 1 次，左右各 1 次，左右回推的中间各 1 次
	assert.Equal(t, 5, stats.Processed)
	assert.Equal(t, 2, stats.Frontier)
}

func TestFillErrors(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	tests := []struct {
		name  string
		start raster.Point
		mode  Mode
		want  error
	}{
		{"col negative", raster.Point{Col: -1, Row: 0}, ModeQueue, ErrPointOutOfBounds},
		{"row too big", raster.Point{Col: 0, Row: 3}, ModeStack, ErrPointOutOfBounds},
		{"col too big", raster.Point{Col: 3, Row: 0}, ModeUnionFind, ErrPointOutOfBounds},
		{"unknown mode", raster.Point{}, Mode("recursive"), ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := raster.Filled(3, 3, white)
			before := r.Clone()

			frames, err := engine.Fill(r, tt.start, red, tt.mode)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, frames)
			assert.True(t, before.Equal(r), "raster must stay untouched on error")
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"unionfind", "stack", "queue", " Queue "} {
		_, err := ParseMode(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseMode("dfs")
	assert.ErrorIs(t, err, ErrUnknownMode)

	var m Mode
	require.NoError(t, m.Set("stack"))
	assert.Equal(t, ModeStack, m)
	assert.Error(t, m.Set("bfs"))
	assert.Equal(t, ModeStack, m)
	assert.Equal(t, "mode", m.Type())
}
