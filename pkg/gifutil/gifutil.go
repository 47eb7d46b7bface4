// 把一组帧编码成循环播放的 GIF 动画
package gifutil

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"unionfind_tool/pkg/errorutil"
)

// 帧数上限和每帧时长的默认值
const (
	DefaultFrameLimit = 200
	DefaultDelay      = 1 // 单位 1/100 秒
)

var ErrNoFrames = errors.New("没有可导出的帧")

// EvenlyLimit 帧数超过上限时均匀抽取，不做截断，保证整个过程都有代表帧
func EvenlyLimit[T any](frames []T, limit int) []T {
	if limit <= 0 || len(frames) <= limit {
		return frames
	}
	out := make([]T, 0, limit)
	for _, idx := range EvenlyIndices(len(frames), limit) {
		out = append(out, frames[idx])
	}
	return out
}

// EvenlyLimitLast 和 EvenlyLimit 一样均匀抽取，但最后一帧总会保留
func EvenlyLimitLast[T any](frames []T, limit int) []T {
	if limit <= 0 || len(frames) <= limit {
		return frames
	}
	last := frames[len(frames)-1]
	if limit == 1 {
		return []T{last}
	}
	out := make([]T, 0, limit)
	out = append(out, EvenlyLimit(frames[:len(frames)-1], limit-1)...)
	return append(out, last)
}

// EvenlyIndices 从 total 帧中均匀抽取 limit 帧的下标
// 第 i 帧取 floor(i * total / limit)，第一帧总会保留
func EvenlyIndices(total, limit int) []int {
	if limit <= 0 || total <= limit {
		limit = total
	}
	out := make([]int, limit)
	for i := range out {
		out[i] = i * total / limit
	}
	return out
}

// Encode 写出 GIF，LoopCount 为 0 表示无限循环
func Encode(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	delay = max(1, delay)

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for _, frame := range frames {
		out.Image = append(out.Image, ToPaletted(frame))
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}

// Save 写出到文件
func Save(path string, frames []image.Image, delay int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: 无法创建文件 %s: %v", errorutil.ErrIO, path, err)
	}
	if err := Encode(f, frames, delay); err != nil {
		_ = f.Close()
		if errors.Is(err, ErrNoFrames) {
			return err
		}
		return fmt.Errorf("%w: 写入 %s 失败: %v", errorutil.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: 关闭 %s 失败: %v", errorutil.ErrIO, path, err)
	}
	return nil
}

// ToPaletted 将图片转换为调色板图像（GIF 需要）
// 颜色不超过 256 种时直接用图片里的颜色，像素值保持不变
// 超过时退回 web 安全调色板加 Floyd-Steinberg 抖动
func ToPaletted(src image.Image) *image.Paletted {
	b := src.Bounds()
	if palette, ok := exactPalette(src); ok {
		dst := image.NewPaletted(b, palette)
		draw.Draw(dst, b, src, b.Min, draw.Src)
		return dst
	}

	dst := image.NewPaletted(b, webSafePalette())
	draw.FloydSteinberg.Draw(dst, b, src, b.Min)
	return dst
}

func exactPalette(src image.Image) (color.Palette, bool) {
	b := src.Bounds()
	seen := make(map[color.RGBA]struct{}, 256)
	palette := make(color.Palette, 0, 256)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(palette) == 256 {
				return nil, false
			}
			seen[c] = struct{}{}
			palette = append(palette, c)
		}
	}
	if len(palette) == 0 {
		palette = append(palette, color.RGBA{A: 0xff})
	}
	return palette, true
}

// 构建 web 安全调色板（216 色）
func webSafePalette() color.Palette {
	palette := make(color.Palette, 0, 216)
	for _, r := range []uint8{0, 51, 102, 153, 204, 255} {
		for _, g := range []uint8{0, 51, 102, 153, 204, 255} {
			for _, b := range []uint8{0, 51, 102, 153, 204, 255} {
				palette = append(palette, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return palette
}
