// 像素级别的图片表示，以及图片文件的读写
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// 相似度阈值的默认值：RGB 空间中欧氏距离的平方
const DefaultThreshold = 300

// Point 像素或者格子的坐标
type Point struct {
	Col int // 列（x 坐标）
	Row int // 行（y 坐标）
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.Col, p.Row)
}

// Color 颜色三元组，每个分量 0–255
type Color struct {
	R uint8
	G uint8
	B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// RGBA 实现 color.Color 接口，始终不透明
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Distance 两个颜色在 RGB 空间中距离的平方
func Distance(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// IsSimilar 距离平方不超过阈值即认为相似
// 注意相似关系不具备传递性，一串两两相似的像素可以连接差别很大的颜色
func IsSimilar(a, b Color, threshold int) bool {
	return Distance(a, b) <= threshold
}

// Raster 宽 x 高的颜色矩阵，按行优先存储，可以原地修改
type Raster struct {
	Width  int
	Height int
	Pix    []Color
}

func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{Width: width, Height: height, Pix: make([]Color, width*height)}
}

// Filled 返回一张纯色的图
func Filled(width, height int, c Color) *Raster {
	r := New(width, height)
	r.Fill(c)
	return r
}

// FromImage 只提取 RGB 分量，不做其它颜色空间转换（透明度直接丢弃）
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r.Pix[(y-b.Min.Y)*r.Width+(x-b.Min.X)] = Color{R: c.R, G: c.G, B: c.B}
		}
	}
	return r
}

// Index 行优先展开成一维下标：row * width + col
func (r *Raster) Index(p Point) int {
	return p.Row*r.Width + p.Col
}

// PointOf 是 Index 的逆运算
func (r *Raster) PointOf(idx int) Point {
	return Point{Col: idx % r.Width, Row: idx / r.Width}
}

func (r *Raster) Len() int {
	return len(r.Pix)
}

func (r *Raster) InBounds(p Point) bool {
	return p.Col >= 0 && p.Col < r.Width && p.Row >= 0 && p.Row < r.Height
}

func (r *Raster) At(p Point) Color {
	return r.Pix[r.Index(p)]
}

func (r *Raster) Set(p Point, c Color) {
	r.Pix[r.Index(p)] = c
}

func (r *Raster) Fill(c Color) {
	for i := range r.Pix {
		r.Pix[i] = c
	}
}

// Neighbors 返回 4 邻接中在图片范围内的点，顺序：左 右 上 下
func (r *Raster) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, n := range [4]Point{
		{Col: p.Col - 1, Row: p.Row},
		{Col: p.Col + 1, Row: p.Row},
		{Col: p.Col, Row: p.Row - 1},
		{Col: p.Col, Row: p.Row + 1},
	} {
		if r.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

func (r *Raster) Clone() *Raster {
	pix := make([]Color, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// CopyFrom 用另一张同尺寸的图覆盖当前内容
func (r *Raster) CopyFrom(src *Raster) {
	r.Width, r.Height = src.Width, src.Height
	if cap(r.Pix) < len(src.Pix) {
		r.Pix = make([]Color, len(src.Pix))
	}
	r.Pix = r.Pix[:len(src.Pix)]
	copy(r.Pix, src.Pix)
}

func (r *Raster) Equal(other *Raster) bool {
	if other == nil || r.Width != other.Width || r.Height != other.Height {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Count 统计某个颜色的像素个数
func (r *Raster) Count(c Color) int {
	n := 0
	for _, p := range r.Pix {
		if p == c {
			n++
		}
	}
	return n
}

// ToImage 转成不透明的 RGBA 图片
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, c := range r.Pix {
		o := i * 4
		img.Pix[o] = c.R
		img.Pix[o+1] = c.G
		img.Pix[o+2] = c.B
		img.Pix[o+3] = 0xff
	}
	return img
}
