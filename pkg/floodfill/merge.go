package floodfill

import (
	"unionfind_tool/pkg/raster"
	"unionfind_tool/pkg/unionfind"
)

// MergeRegions 把所有像素按颜色相似度分组
// 每个像素只和右边、下边的邻居比较，左边和上边由邻居自己那一轮覆盖
// 两个像素在同一组，当且仅当它们之间有一串两两相似的 4 邻接像素
func MergeRegions(r *raster.Raster, threshold int) (*unionfind.UnionFind, error) {
	uf, err := unionfind.NewUnionFind(r.Len())
	if err != nil {
		return nil, err
	}

	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			idx := row*r.Width + col
			c := r.Pix[idx]

			// 右边的邻居
			if col+1 < r.Width && raster.IsSimilar(c, r.Pix[idx+1], threshold) {
				if _, err := uf.Union(idx, idx+1); err != nil {
					return nil, err
				}
			}
			// 下边的邻居
			if row+1 < r.Height && raster.IsSimilar(c, r.Pix[idx+r.Width], threshold) {
				if _, err := uf.Union(idx, idx+r.Width); err != nil {
					return nil, err
				}
			}
		}
	}

	return uf, nil
}
