package maze

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// 每个网格位置渲染成多少像素
const DefaultCellSize = 10

var (
	WallColor = color.RGBA{A: 0xff}
	PathColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Render 先按 1 像素 1 个位置画出网格，再用最近邻放大，边缘保持清晰
// 输出尺寸是 (2n+1)*cellSize 的正方形，包括四周的边界墙
func Render(g *Grid, cellSize int) *image.RGBA {
	if cellSize < 1 {
		cellSize = 1
	}
	size := g.Size()

	small := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if g.IsOpen(x, y) {
				small.SetRGBA(x, y, PathColor)
			} else {
				small.SetRGBA(x, y, WallColor)
			}
		}
	}
	if cellSize == 1 {
		return small
	}

	big := image.NewRGBA(image.Rect(0, 0, size*cellSize, size*cellSize))
	xdraw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return big
}
