package initutil

import (
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/logutil"
	"unionfind_tool/pkg/toolutil"
)

// Config 两个工具共用的可调参数，配置文件里没写的字段保留默认值
type Config struct {
	OutputDir  string // 动画输出目录
	ImageDir   string // 静态图输出目录
	Threshold  int    // 颜色相似度阈值
	Interval   int    // 每处理多少个点保存一帧
	FrameLimit int    // 动画最多保留的帧数
	FrameDelay int    // 每帧时长，单位 1/100 秒
	CellSize   int    // 迷宫每个格子的像素边长
}

func Default() Config {
	return Config{
		OutputDir:  "gifs",
		ImageDir:   "images",
		Threshold:  300,
		Interval:   200,
		FrameLimit: 200,
		FrameDelay: 1,
		CellSize:   10,
	}
}

var (
	mu           sync.Mutex
	globalConfig = Default()
)

// Load 读取 JSON 配置文件，path 为空时直接返回默认值
//
//	{"output_dir": "out", "threshold": 500, "frame_limit": 100}
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: 无法读取配置文件 %s: %v", errorutil.ErrConfig, path, err)
	}
	cfg, err := Parse(string(data), Default())
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse 在 base 的基础上覆盖 JSON 中出现的字段
func Parse(data string, base Config) (Config, error) {
	if !gjson.Valid(data) {
		return Config{}, fmt.Errorf("%w: 不是合法的 JSON", errorutil.ErrConfig)
	}
	root := gjson.Parse(data)
	if !root.IsObject() {
		return Config{}, fmt.Errorf("%w: 顶层必须是对象", errorutil.ErrConfig)
	}

	cfg := base
	strFields := map[string]*string{
		"output_dir": &cfg.OutputDir,
		"image_dir":  &cfg.ImageDir,
	}
	for key, dst := range strFields {
		if v := root.Get(key); v.Exists() {
			if v.Type != gjson.String || v.Str == "" {
				return Config{}, fmt.Errorf("%w: %s 必须是非空字符串", errorutil.ErrConfig, key)
			}
			*dst = v.Str
		}
	}

	intFields := []struct {
		key string
		dst *int
		min int
	}{
		{"threshold", &cfg.Threshold, 0},
		{"interval", &cfg.Interval, 1},
		{"frame_limit", &cfg.FrameLimit, 1},
		{"frame_delay", &cfg.FrameDelay, 1},
		{"cell_size", &cfg.CellSize, 1},
	}
	for _, f := range intFields {
		v := root.Get(f.key)
		if !v.Exists() {
			continue
		}
		if v.Type != gjson.Number || v.Num != float64(v.Int()) {
			return Config{}, fmt.Errorf("%w: %s 必须是整数，实际是 %s", errorutil.ErrConfig, f.key, v.Raw)
		}
		if int(v.Int()) < f.min {
			return Config{}, fmt.Errorf("%w: %s 不能小于 %d", errorutil.ErrConfig, f.key, f.min)
		}
		*f.dst = int(v.Int())
	}
	return cfg, nil
}

// EnsureDirs 创建输出目录
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.OutputDir, c.ImageDir} {
		if err := toolutil.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// InitSystem 加载配置并保存为全局配置，之后用 GetConfig 读取
func InitSystem(configPath string) (Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}

	mu.Lock()
	globalConfig = cfg
	mu.Unlock()

	logutil.Debug("globalConfig struct:\n%v", cfg)
	return cfg, nil
}

// SetConfig 命令行参数覆盖之后回写全局配置
func SetConfig(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = cfg
}

// GetConfig 获取全局配置
func GetConfig() Config {
	mu.Lock()
	defer mu.Unlock()
	return globalConfig
}
