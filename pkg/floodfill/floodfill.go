// Package floodfill 从一个起始点开始，给相似颜色的连通区域重新上色
//
// 支持三种区域发现方式：
//   - unionfind: 先用并查集把整张图的相似像素合并，再给起始点所在集合上色
//   - stack:     深度优先遍历，每个点都和起始点的原始颜色比较
//   - queue:     广度优先遍历，比较方式同上
//
// 过程中每处理 Interval 个点保存一次快照，用于生成动画
package floodfill

import (
	"fmt"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/gifutil"
	"unionfind_tool/pkg/logutil"
	"unionfind_tool/pkg/raster"
	"unionfind_tool/pkg/unionfind"
)

var ErrPointOutOfBounds = errorutil.ErrPointOutOfBounds

// 快照间隔的默认值（处理过的点的个数）
const DefaultInterval = 200

type Config struct {
	Threshold  int // 颜色相似度阈值
	Interval   int // 每处理多少个点保存一帧
	FrameLimit int // 内存里最多保留的帧数，0 表示不限制
}

func DefaultConfig() Config {
	return Config{
		Threshold: raster.DefaultThreshold,
		Interval:  DefaultInterval,
	}
}

// Stats 一次填充的统计信息
type Stats struct {
	Mode      Mode
	Processed int // 处理过的点，包括没有被上色的
	Recolored int // 被上色的次数
	Frontier  int // 栈或队列的最大长度，unionfind 模式为 0
	Snapshots int // 按间隔触发的快照次数，不受帧数上限影响
	Frames    int // 实际保留的帧数
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.Threshold < 0 {
		cfg.Threshold = raster.DefaultThreshold
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.FrameLimit < 0 {
		cfg.FrameLimit = 0
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// recorder 负责按固定间隔保存快照
// 处理完一个点之后计数加一，计数是间隔的整数倍时保存
//
// 有帧数上限时内存里的帧不会无限增长：
//   - 总点数已知(unionfind)，提前算好要保留第几次快照，最后一帧的位置留给最终结果
//   - 总点数未知(stack/queue)，帧数到达上限的两倍时隔一帧删一帧，间隔翻倍
type recorder struct {
	base      int // 配置的间隔
	interval  int // 当前生效的间隔，只会按 base 的倍数增长
	limit     int
	keep      map[int]bool // 要保留的快照序号，nil 表示按间隔翻倍的方式控制
	processed int
	recolored int
	frontier  int
	snapshots int
	dirty     bool // 上一次保留的帧之后是否有改动
	frames    []*raster.Raster
}

// expected 是预计的快照次数，未知时传 0
func newRecorder(interval, limit, expected int) *recorder {
	rec := &recorder{base: interval, interval: interval, limit: limit}
	if limit > 0 && expected >= limit {
		rec.keep = make(map[int]bool, limit)
		if limit > 1 {
			for _, idx := range gifutil.EvenlyIndices(expected, limit-1) {
				rec.keep[idx] = true
			}
		}
	}
	return rec
}

func (rec *recorder) step(r *raster.Raster, recolored bool) {
	rec.processed++
	if recolored {
		rec.recolored++
		rec.dirty = true
	}
	if rec.processed%rec.base != 0 {
		return
	}
	rec.snapshots++

	if rec.keep != nil {
		if !rec.keep[rec.snapshots-1] {
			return
		}
	} else if rec.processed%rec.interval != 0 {
		return
	}
	rec.frames = append(rec.frames, r.Clone())
	rec.dirty = false

	if rec.keep == nil && rec.limit > 0 && len(rec.frames) >= 2*rec.limit {
		rec.thin()
	}
}

// thin 保留第 2、4、6... 帧，它们正好落在翻倍后间隔的整数倍上
// 最后一帧总会被保留，dirty 不受影响
func (rec *recorder) thin() {
	kept := rec.frames[:0]
	for i := 1; i < len(rec.frames); i += 2 {
		kept = append(kept, rec.frames[i])
	}
	clear(rec.frames[len(kept):])
	rec.frames = kept
	rec.interval *= 2
	logutil.Debug("帧数到达上限 %d，快照间隔调整为 %d", 2*rec.limit, rec.interval)
}

// finish 保证最后一帧就是最终结果
func (rec *recorder) finish(r *raster.Raster) []*raster.Raster {
	if len(rec.frames) == 0 || rec.dirty {
		rec.frames = append(rec.frames, r.Clone())
		rec.dirty = false
	}
	return rec.frames
}

// Fill 按指定模式填充，返回过程中的快照，最后一帧等于填充后的图
// 设置了 FrameLimit 时 unionfind 模式最多返回 FrameLimit 帧，stack/queue 模式最多 2*FrameLimit 帧
func (e *Engine) Fill(r *raster.Raster, start raster.Point, fill raster.Color, mode Mode) ([]*raster.Raster, error) {
	frames, _, err := e.FillWithStats(r, start, fill, mode)
	return frames, err
}

// FillWithStats 和 Fill 一样，额外返回统计信息
// 出错的时候 r 保持原样，不会留下填了一半的图
func (e *Engine) FillWithStats(r *raster.Raster, start raster.Point, fill raster.Color, mode Mode) ([]*raster.Raster, Stats, error) {
	stats := Stats{Mode: mode}
	if !mode.valid() {
		return nil, stats, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
	if !r.InBounds(start) {
		return nil, stats, fmt.Errorf("%w: (%s) 不在 %dx%d 内", ErrPointOutOfBounds, start, r.Width, r.Height)
	}

	// 在副本上操作，成功后再写回
	work := r.Clone()
	var rec *recorder

	var err error
	if mode == ModeUnionFind {
		rec = newRecorder(e.cfg.Interval, e.cfg.FrameLimit, work.Len()/e.cfg.Interval)
		var uf *unionfind.UnionFind
		uf, err = MergeRegions(work, e.cfg.Threshold)
		if err == nil {
			logutil.Debug("合并完成: %d 个像素 %d 个区域", uf.Len(), uf.Count())
			err = e.fillSet(work, uf, start, fill, rec)
		}
	} else {
		rec = newRecorder(e.cfg.Interval, e.cfg.FrameLimit, 0)
		err = e.fillTraversal(work, start, fill, mode, rec)
	}
	if err != nil {
		return nil, stats, err
	}

	frames := rec.finish(work)
	r.CopyFrom(work)

	stats.Processed = rec.processed
	stats.Recolored = rec.recolored
	stats.Frontier = rec.frontier
	stats.Snapshots = rec.snapshots
	stats.Frames = len(frames)
	logutil.Debug("填充完成 mode=%s processed=%d recolored=%d frames=%d",
		string(mode), stats.Processed, stats.Recolored, stats.Frames)
	return frames, stats, nil
}

// FillSet 用已经算好的分组直接上色，同一个分组可以反复使用
func (e *Engine) FillSet(r *raster.Raster, uf *unionfind.UnionFind, start raster.Point, fill raster.Color) ([]*raster.Raster, error) {
	if !r.InBounds(start) {
		return nil, fmt.Errorf("%w: (%s) 不在 %dx%d 内", ErrPointOutOfBounds, start, r.Width, r.Height)
	}
	if uf.Len() != r.Len() {
		return nil, fmt.Errorf("%w: 分组大小 %d 与像素个数 %d 不一致", unionfind.ErrInvalidSize, uf.Len(), r.Len())
	}

	work := r.Clone()
	rec := newRecorder(e.cfg.Interval, e.cfg.FrameLimit, work.Len()/e.cfg.Interval)
	if err := e.fillSet(work, uf, start, fill, rec); err != nil {
		return nil, err
	}
	frames := rec.finish(work)
	r.CopyFrom(work)
	return frames, nil
}

// 逐行扫描，和起始点同一个集合的像素全部上色
func (e *Engine) fillSet(r *raster.Raster, uf *unionfind.UnionFind, start raster.Point, fill raster.Color, rec *recorder) error {
	target, err := uf.Find(r.Index(start))
	if err != nil {
		return err
	}

	for idx := range r.Pix {
		root, err := uf.Find(idx)
		if err != nil {
			return err
		}
		recolored := false
		if root == target {
			r.Pix[idx] = fill
			recolored = true
		}
		rec.step(r, recolored)
	}
	return nil
}

// 栈或队列遍历，邻居不做去重，上过色的点和起始颜色不再相似，自然不会被重复处理
// 如果填充色和起始颜色本身就相似，点会被反复处理
func (e *Engine) fillTraversal(r *raster.Raster, start raster.Point, fill raster.Color, mode Mode, rec *recorder) error {
	front, err := newFrontier(mode)
	if err != nil {
		return err
	}

	startColor := r.At(start)
	if raster.IsSimilar(startColor, fill, e.cfg.Threshold) {
		logutil.Warn("填充色 %s 与起始颜色 %s 相似，像素可能被反复处理", fill, startColor)
	}

	front.push(start)
	for {
		p, ok := front.pop()
		if !ok {
			break
		}

		recolored := false
		if raster.IsSimilar(startColor, r.At(p), e.cfg.Threshold) {
			r.Set(p, fill)
			recolored = true
			for _, n := range r.Neighbors(p) {
				front.push(n)
			}
			rec.frontier = max(rec.frontier, front.size())
		}
		rec.step(r, recolored)
	}
	return nil
}
