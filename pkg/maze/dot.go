package maze

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// 图名和节点名都要是合法的 DOT 标识符
const graphName = "maze"

// NodeName 格子在 DOT 图里的名字，例如 c3_7
func NodeName(c Cell) string {
	return fmt.Sprintf("c%d_%d", c.Col, c.Row)
}

// Graph 把打通的通道导出成无向图：每个格子一个节点，每条通道一条边
// 完美迷宫导出的图应该是一棵生成树
func (g *Grid) Graph() (*gographviz.Graph, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName(graphName); err != nil {
		return nil, err
	}
	if err := graph.SetDir(false); err != nil {
		return nil, err
	}

	for row := 0; row < g.N; row++ {
		for col := 0; col < g.N; col++ {
			if err := graph.AddNode(graphName, NodeName(Cell{Col: col, Row: row}), nil); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range g.Passages() {
		if err := graph.AddEdge(NodeName(e.A), NodeName(e.B), false, nil); err != nil {
			return nil, err
		}
	}
	return graph, nil
}

// Dot 导出 DOT 文本，可以直接交给 graphviz 渲染
func (g *Grid) Dot() (string, error) {
	graph, err := g.Graph()
	if err != nil {
		return "", err
	}
	return graph.String(), nil
}
