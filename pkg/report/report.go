// 运行结束后写出 result.json，记录输入参数、统计信息和生成的文件
package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/logutil"
)

// 默认的结果文件名
const FileName = "result.json"

// Summary 用 sjson 按路径逐步写入，最后整体格式化输出
type Summary struct {
	raw string
}

func New(tool string) *Summary {
	s := &Summary{raw: "{}"}
	s.raw, _ = sjson.Set(s.raw, "tool", tool)
	s.raw, _ = sjson.SetRaw(s.raw, "artifacts", "[]")
	return s
}

// Set path 使用 sjson 的路径语法，比如 "input.mode"、"artifacts.-1"
func (s *Summary) Set(path string, value any) error {
	raw, err := sjson.Set(s.raw, path, value)
	if err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	s.raw = raw
	return nil
}

// MustSet 写入失败只记录日志，不中断流程
func (s *Summary) MustSet(path string, value any) {
	if err := s.Set(path, value); err != nil {
		logutil.Warn("%s", err)
	}
}

// AddArtifact 记录一个生成的文件和它的大小
func (s *Summary) AddArtifact(kind, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errorutil.ErrIO, path, err)
	}
	size := uint64(info.Size())
	logutil.Info("生成 %s: %s (%s)", kind, path, humanize.Bytes(size))

	return s.Set("artifacts.-1", map[string]any{
		"kind":  kind,
		"path":  path,
		"bytes": size,
		"size":  humanize.Bytes(size),
	})
}

// Get 读取某个路径的值，测试和日志中使用
func (s *Summary) Get(path string) gjson.Result {
	return gjson.Get(s.raw, path)
}

func (s *Summary) JSON() []byte {
	return pretty.PrettyOptions([]byte(s.raw), &pretty.Options{
		Width:    80,
		Prefix:   "",
		Indent:   "    ",
		SortKeys: true,
	})
}

func (s *Summary) String() string {
	return string(pretty.Ugly([]byte(s.raw)))
}

// Save 写出格式化后的 JSON
func (s *Summary) Save(path string) error {
	if err := os.WriteFile(path, s.JSON(), 0o644); err != nil {
		return fmt.Errorf("%w: 写入 %s 失败: %v", errorutil.ErrIO, path, err)
	}
	return nil
}

// Pixels 把像素个数格式化成带千分位的字符串，比如 1,048,576
func Pixels(n int) string {
	return humanize.Comma(int64(n))
}

// Ratio 帧数压缩的描述，比如 "1234 -> 200"
func Ratio(before, after int) string {
	if before == after {
		return strconv.Itoa(before)
	}
	return strings.Join([]string{strconv.Itoa(before), strconv.Itoa(after)}, " -> ")
}
