package graph

import (
	"fmt"
	"sort"

	"github.com/awalterschulze/gographviz"
)

// ToAdjacencyMap 将 gographviz.Graph 图结构转换为邻接表形式
// 无向图的每条边在两个端点上各记一次，没有边的孤立节点也会出现在结果里
func ToAdjacencyMap(g *gographviz.Graph) map[string][]string {
	adj := make(map[string][]string, len(g.Nodes.Nodes))
	for _, node := range g.Nodes.Nodes {
		adj[node.Name] = nil
	}
	for _, edge := range g.Edges.Edges {
		adj[edge.Src] = append(adj[edge.Src], edge.Dst)
		if !g.Directed {
			adj[edge.Dst] = append(adj[edge.Dst], edge.Src)
		}
	}
	return adj
}

// sortedNodes 节点按字典序排列，保证遍历顺序固定
func sortedNodes(adj map[string][]string) []string {
	nodes := make([]string, 0, len(adj))
	for v := range adj {
		nodes = append(nodes, v)
	}
	sort.Strings(nodes)
	return nodes
}

// CountEdges 无向邻接表中边的条数
func CountEdges(adj map[string][]string) int {
	total := 0
	for _, dsts := range adj {
		total += len(dsts)
	}
	return total / 2
}

// Components 返回无向图的所有连通分量，每个分量内节点按字典序
// 用显式栈做 DFS，几万个节点也不会栈溢出
func Components(adj map[string][]string) [][]string {
	visited := make(map[string]bool, len(adj))
	var comps [][]string

	for _, start := range sortedNodes(adj) {
		if visited[start] {
			continue
		}
		var comp []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, v)
			for _, w := range adj[v] {
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}
	return comps
}

// HasCycle 判断无向图是否有环，有环时返回环上的一个节点
// 沿 DFS 树往下走，遇到已经访问过、又不是来时那条边的邻居，就说明有环
// 同一对节点之间的重复边也算环，所以父节点只跳过一次
func HasCycle(adj map[string][]string) (bool, string) {
	type frame struct {
		node   string
		parent string
		root   bool
	}
	visited := make(map[string]bool, len(adj))

	for _, start := range sortedNodes(adj) {
		if visited[start] {
			continue
		}
		visited[start] = true
		stack := []frame{{node: start, root: true}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			skippedParent := f.root
			for _, w := range adj[f.node] {
				if w == f.node {
					return true, w // 自环
				}
				if w == f.parent && !skippedParent {
					skippedParent = true
					continue
				}
				if visited[w] {
					return true, w
				}
				visited[w] = true
				stack = append(stack, frame{node: w, parent: f.node})
			}
		}
	}
	return false, ""
}

// IsSpanningTree 判断无向图是不是一棵覆盖所有节点的树：连通并且无环
// 不是的时候返回原因
func IsSpanningTree(adj map[string][]string) (bool, string) {
	if len(adj) == 0 {
		return false, "空图"
	}
	if comps := Components(adj); len(comps) != 1 {
		return false, fmt.Sprintf("图不连通，连通分量个数: %d", len(comps))
	}
	if cyclic, node := HasCycle(adj); cyclic {
		return false, "图中有环，经过节点 " + node
	}
	if edges := CountEdges(adj); edges != len(adj)-1 {
		return false, fmt.Sprintf("边数 %d 不等于节点数减一 %d", edges, len(adj)-1)
	}
	return true, ""
}
