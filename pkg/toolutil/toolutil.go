package toolutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"

	"unionfind_tool/pkg/errorutil"
)

// ParseTuple 解析逗号分隔的整数元组，比如坐标 "3,4" 或者颜色 "255,0,0"
// 个数必须正好是 n，每个分量都要落在 T 的取值范围内
func ParseTuple[T constraints.Integer](s string, n int) ([]T, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q 需要 %d 个逗号分隔的整数", errorutil.ErrInvalidArgument, s, n)
	}

	lo, hi := bounds[T]()
	out := make([]T, 0, n)
	for _, part := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q 不是整数", errorutil.ErrInvalidArgument, part)
		}
		if v < lo || v > hi {
			return nil, fmt.Errorf("%w: %d 超出范围 [%d, %d]", errorutil.ErrInvalidArgument, v, lo, hi)
		}
		out = append(out, T(v))
	}
	return out, nil
}

// bounds T 的取值范围，用 int64 表示，超过 int64 的上限按 MaxInt64 截断
func bounds[T constraints.Integer]() (int64, int64) {
	var zero T
	bits := 8 * int(unsafe.Sizeof(zero))
	signed := ^zero < 0
	if signed {
		return -1 << (bits - 1), 1<<(bits-1) - 1
	}
	if bits >= 64 {
		return 0, math.MaxInt64
	}
	return 0, 1<<bits - 1
}

// EnsureDir 目录不存在就创建
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: 无法创建目录 %s: %v", errorutil.ErrIO, dir, err)
	}
	return nil
}

// FileStem 去掉目录和扩展名，"images/cat.png" -> "cat"
func FileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
