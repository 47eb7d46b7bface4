package floodfill

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/gifutil"
	"unionfind_tool/pkg/initutil"
	"unionfind_tool/pkg/logutil"
	"unionfind_tool/pkg/raster"
	"unionfind_tool/pkg/report"
	"unionfind_tool/pkg/toolutil"
)

// CLIOptions 只放子命令自己的参数，输出目录等全局参数从 initutil 读取
type CLIOptions struct {
	Mode       Mode
	Threshold  int
	Interval   int
	FrameLimit int
	Delay      int
}

func Cmd() *cobra.Command {
	opts := &CLIOptions{Mode: ModeUnionFind}

	cmd := &cobra.Command{
		Use:   "floodfill <image> <col,row> <r,g,b>",
		Short: "从起始点开始给相似颜色的区域重新上色，并生成过程动画",
		Long: `从起始点开始给相似颜色的区域重新上色，并生成过程动画
Examples:

1. 并查集模式（默认）
floodfill images/cat.png 10,20 255,0,0

2. 广度优先，输出到 out 目录
floodfill images/cat.png 10,20 255,0,0 -m queue -o out

生成的文件:
  <out>/<图片名>-<模式>.gif    过程动画
  <image-dir>/<图片名>-<模式>.png  填充后的图片
  <out>/result.json            运行结果
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return errorutil.UsageError(cobra.ExactArgs(3)(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.merge(cmd, initutil.GetConfig())
			return opts.run(cfg, args[0], args[1], args[2])
		},
	}

	cmd.Flags().VarP(&opts.Mode, "mode", "m",
		fmt.Sprintf("区域发现方式(%s)", strings.Join(opts.Mode.Values(), "/")))
	cmd.Flags().IntVarP(&opts.Threshold, "threshold", "t", raster.DefaultThreshold, "颜色相似度阈值(RGB 距离的平方)")
	cmd.Flags().IntVar(&opts.Interval, "interval", DefaultInterval, "每处理多少个点保存一帧")
	cmd.Flags().IntVar(&opts.FrameLimit, "frame-limit", gifutil.DefaultFrameLimit, "动画最多保留的帧数")
	cmd.Flags().IntVar(&opts.Delay, "delay", gifutil.DefaultDelay, "每帧时长(1/100 秒)")
	return cmd
}

// 命令行显式给出的参数优先于配置文件
func (opts *CLIOptions) merge(cmd *cobra.Command, cfg initutil.Config) initutil.Config {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Threshold = opts.Threshold
	}
	if flags.Changed("interval") {
		cfg.Interval = opts.Interval
	}
	if flags.Changed("frame-limit") {
		cfg.FrameLimit = opts.FrameLimit
	}
	if flags.Changed("delay") {
		cfg.FrameDelay = opts.Delay
	}
	return cfg
}

func (opts *CLIOptions) run(cfg initutil.Config, imagePath, startArg, colorArg string) error {
	if cfg.FrameLimit < 1 {
		return fmt.Errorf("%w: 帧数上限必须大于 0，当前 %d", errorutil.ErrInvalidArgument, cfg.FrameLimit)
	}
	pos, err := toolutil.ParseTuple[int](startArg, 2)
	if err != nil {
		return fmt.Errorf("起始点: %w", err)
	}
	rgb, err := toolutil.ParseTuple[uint8](colorArg, 3)
	if err != nil {
		return fmt.Errorf("填充色: %w", err)
	}
	start := raster.Point{Col: pos[0], Row: pos[1]}
	fill := raster.Color{R: rgb[0], G: rgb[1], B: rgb[2]}

	r, err := raster.Load(imagePath)
	if err != nil {
		return err
	}
	logutil.Info("图片 %s: %dx%d, %s 个像素", imagePath, r.Width, r.Height, report.Pixels(r.Len()))

	engine := NewEngine(Config{
		Threshold:  cfg.Threshold,
		Interval:   cfg.Interval,
		FrameLimit: cfg.FrameLimit,
	})
	frames, stats, err := engine.FillWithStats(r, start, fill, opts.Mode)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	// 遍历模式最多会留下两倍上限的帧，这里再抽一次，最终结果一定是最后一帧
	kept := gifutil.EvenlyLimitLast(frames, cfg.FrameLimit)
	images := make([]image.Image, 0, len(kept))
	for _, f := range kept {
		images = append(images, f.ToImage())
	}
	logutil.Info("帧数: %s", report.Ratio(len(frames), len(kept)))

	name := fmt.Sprintf("%s-%s", toolutil.FileStem(imagePath), opts.Mode)
	gifPath := filepath.Join(cfg.OutputDir, name+".gif")
	if err := gifutil.Save(gifPath, images, cfg.FrameDelay); err != nil {
		return err
	}
	pngPath := filepath.Join(cfg.ImageDir, name+".png")
	if err := raster.SavePNG(pngPath, r.ToImage()); err != nil {
		return err
	}

	sum := report.New("floodfill")
	sum.MustSet("input.image", imagePath)
	sum.MustSet("input.start", []int{start.Col, start.Row})
	sum.MustSet("input.fill", []int{int(fill.R), int(fill.G), int(fill.B)})
	sum.MustSet("input.mode", string(opts.Mode))
	sum.MustSet("config.threshold", cfg.Threshold)
	sum.MustSet("config.interval", cfg.Interval)
	sum.MustSet("config.frame_limit", cfg.FrameLimit)
	sum.MustSet("stats.width", r.Width)
	sum.MustSet("stats.height", r.Height)
	sum.MustSet("stats.processed", stats.Processed)
	sum.MustSet("stats.recolored", stats.Recolored)
	sum.MustSet("stats.max_frontier", stats.Frontier)
	sum.MustSet("stats.snapshots", stats.Snapshots)
	sum.MustSet("stats.frames", stats.Frames)
	sum.MustSet("stats.frames_kept", len(kept))
	if err := sum.AddArtifact("gif", gifPath); err != nil {
		return err
	}
	if err := sum.AddArtifact("png", pngPath); err != nil {
		return err
	}
	return sum.Save(filepath.Join(cfg.OutputDir, report.FileName))
}
