package maze

import (
	"fmt"
	"strings"

	"github.com/mohae/deepcopy"
)

// 网格中每个位置的状态
const (
	Wall byte = '#'
	Open byte = ' '
)

// Cell n x n 逻辑网格中的一个格子
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Index 行优先展开：row * n + col
func (c Cell) Index(n int) int {
	return c.Row*n + c.Col
}

// Edge 两个相邻格子之间的墙
type Edge struct {
	A Cell
	B Cell
}

func (e Edge) String() string {
	return e.A.String() + "-" + e.B.String()
}

// Grid (2n+1) x (2n+1) 的网格，奇数坐标是格子，其余位置是墙或者打通的通道
// Tiles[y][x]，x 是列，y 是行，全文统一用 (x, y) 访问
// 字段需要导出，deepcopy 只复制导出字段
type Grid struct {
	N     int
	Tiles [][]byte
}

// NewGrid 初始状态：除了 n² 个格子以外全是墙
func NewGrid(n int) *Grid {
	size := 2*n + 1
	tiles := make([][]byte, size)
	for y := range tiles {
		tiles[y] = []byte(strings.Repeat(string(Wall), size))
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			tiles[2*row+1][2*col+1] = Open
		}
	}
	return &Grid{N: n, Tiles: tiles}
}

// Size 网格的边长 2n+1
func (g *Grid) Size() int {
	return len(g.Tiles)
}

func (g *Grid) At(x, y int) byte {
	return g.Tiles[y][x]
}

func (g *Grid) IsOpen(x, y int) bool {
	return g.Tiles[y][x] == Open
}

// CellPos 格子 (col,row) 在网格中的位置 (2col+1, 2row+1)
func CellPos(c Cell) (x, y int) {
	return 2*c.Col + 1, 2*c.Row + 1
}

// EdgePos 两个格子之间墙的位置
// 水平相邻 (c,r)-(c+1,r) 在 (2c+2, 2r+1)，垂直相邻 (c,r)-(c,r+1) 在 (2c+1, 2r+2)
func EdgePos(e Edge) (x, y int) {
	return e.A.Col + e.B.Col + 1, e.A.Row + e.B.Row + 1
}

// Carve 打通一面墙
func (g *Grid) Carve(e Edge) {
	x, y := EdgePos(e)
	g.Tiles[y][x] = Open
}

// Clone 深拷贝，作为动画的一帧保存
func (g *Grid) Clone() *Grid {
	return deepcopy.Copy(g).(*Grid)
}

// Passages 扫描网格，返回所有已经打通的墙，不依赖生成时用的并查集
func (g *Grid) Passages() []Edge {
	var out []Edge
	for row := 0; row < g.N; row++ {
		for col := 0; col < g.N; col++ {
			c := Cell{Col: col, Row: row}
			if col+1 < g.N {
				e := Edge{A: c, B: Cell{Col: col + 1, Row: row}}
				if g.IsOpen(EdgePos(e)) {
					out = append(out, e)
				}
			}
			if row+1 < g.N {
				e := Edge{A: c, B: Cell{Col: col, Row: row + 1}}
				if g.IsOpen(EdgePos(e)) {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

// OpenCount 打通的位置个数（格子本身也算）
func (g *Grid) OpenCount() int {
	n := 0
	for _, line := range g.Tiles {
		n += strings.Count(string(line), string(Open))
	}
	return n
}

func (g *Grid) String() string {
	lines := make([]string, len(g.Tiles))
	for y, line := range g.Tiles {
		lines[y] = string(line)
	}
	return strings.Join(lines, "\n")
}
