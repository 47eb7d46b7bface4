package testutils

import (
	"encoding/json"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"unionfind_tool/pkg/raster"
)

// result.json 中两个工具共有的部分
type Artifact struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
	Size  string `json:"size"`
}

type ResultCommon struct {
	Tool      string     `json:"tool"`
	Artifacts []Artifact `json:"artifacts"`
}

type FloodFillResult struct {
	ResultCommon
	Input struct {
		Image string `json:"image"`
		Start []int  `json:"start"`
		Fill  []int  `json:"fill"`
		Mode  string `json:"mode"`
	} `json:"input"`
	Stats struct {
		Width       int `json:"width"`
		Height      int `json:"height"`
		Processed   int `json:"processed"`
		Recolored   int `json:"recolored"`
		MaxFrontier int `json:"max_frontier"`
		Snapshots   int `json:"snapshots"`
		Frames      int `json:"frames"`
		FramesKept  int `json:"frames_kept"`
	} `json:"stats"`
}

type MazeResult struct {
	ResultCommon
	Input struct {
		N    int    `json:"n"`
		Seed uint64 `json:"seed"`
	} `json:"input"`
	Stats struct {
		Candidates int `json:"candidates"`
		Removed    int `json:"removed"`
		Passages   int `json:"passages"`
		Frames     int `json:"frames"`
		FramesKept int `json:"frames_kept"`
	} `json:"stats"`
}

// 读取 JSON 文件的泛型函数
func ReadJSONFile[T any](t *testing.T, filePath string) *T {
	t.Helper()
	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("读取 %s 失败: %v", filePath, err)
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("解析 %s 失败: %v", filePath, err)
	}
	return &result
}

// WritePNG 把 raster 保存到临时目录，返回文件路径
func WritePNG(t *testing.T, r *raster.Raster, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := raster.SavePNG(path, r.ToImage()); err != nil {
		t.Fatalf("保存测试图片失败: %v", err)
	}
	return path
}

// ReadGIF 解码动画，返回所有帧
func ReadGIF(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("打开 %s 失败: %v", path, err)
	}
	defer f.Close()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("解码 %s 失败: %v", path, err)
	}
	return anim
}
