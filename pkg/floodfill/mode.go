package floodfill

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"unionfind_tool/pkg/errorutil"
)

var ErrUnknownMode = errorutil.ErrUnknownMode

// Mode 填充区域的发现方式
type Mode string

const (
	ModeUnionFind Mode = "unionfind" // 预先用并查集合并相似像素
	ModeStack     Mode = "stack"     // 深度优先，边遍历边比较
	ModeQueue     Mode = "queue"     // 广度优先，边遍历边比较
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可：
func (m *Mode) String() string { return string(*m) }

func (m *Mode) Set(val string) error {
	mode, err := ParseMode(val)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m *Mode) Type() string {
	return "mode" // 这个字符串用于帮助文档与类型提示
}

var _ pflag.Value = (*Mode)(nil)

// 列出所有的合法值
func (Mode) Values() []string {
	return []string{
		string(ModeUnionFind),
		string(ModeStack),
		string(ModeQueue),
	}
}

func (m Mode) valid() bool {
	switch m {
	case ModeUnionFind, ModeStack, ModeQueue:
		return true
	}
	return false
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.valid() {
		return "", fmt.Errorf("%w: %q，可选值 %s", ErrUnknownMode, s, strings.Join(m.Values(), " / "))
	}
	return m, nil
}
