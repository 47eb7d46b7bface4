package maze

import (
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/gifutil"
	"unionfind_tool/pkg/graph"
	"unionfind_tool/pkg/initutil"
	"unionfind_tool/pkg/logutil"
	"unionfind_tool/pkg/raster"
	"unionfind_tool/pkg/report"
)

type CLIOptions struct {
	N          int
	Seed       uint64
	Dot        bool
	CellSize   int
	FrameLimit int
	Delay      int
}

func Cmd() *cobra.Command {
	opts := &CLIOptions{}

	cmd := &cobra.Command{
		Use:   "maze",
		Short: "用随机 Kruskal 算法生成 n x n 的迷宫，并生成拆墙过程动画",
		Long: `用随机 Kruskal 算法生成 n x n 的迷宫，并生成拆墙过程动画
Examples:

1. 默认 10 x 10
maze

2. 固定种子，同时导出 graphviz 格式的通道图
maze -n 20 -s 42 --dot

生成的文件:
  <out>/maze<n>x<n>.gif          拆墙过程动画
  <image-dir>/maze<n>x<n>.png    最终的迷宫
  <out>/maze<n>x<n>.dot          通道图(--dot)
  <out>/result.json              运行结果
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return errorutil.UsageError(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.merge(cmd, initutil.GetConfig())
			return opts.run(cfg)
		},
	}

	cmd.Flags().IntVarP(&opts.N, "n", "n", DefaultSize, "迷宫边长(格子数)")
	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", 0, "随机种子，0 表示随机生成")
	cmd.Flags().BoolVar(&opts.Dot, "dot", false, "同时导出 graphviz DOT 格式的通道图")
	cmd.Flags().IntVar(&opts.CellSize, "cell-size", DefaultCellSize, "每个格子的像素边长")
	cmd.Flags().IntVar(&opts.FrameLimit, "frame-limit", gifutil.DefaultFrameLimit, "动画最多保留的帧数")
	cmd.Flags().IntVar(&opts.Delay, "delay", gifutil.DefaultDelay, "每帧时长(1/100 秒)")
	return cmd
}

func (opts *CLIOptions) merge(cmd *cobra.Command, cfg initutil.Config) initutil.Config {
	flags := cmd.Flags()
	if flags.Changed("cell-size") {
		cfg.CellSize = opts.CellSize
	}
	if flags.Changed("frame-limit") {
		cfg.FrameLimit = opts.FrameLimit
	}
	if flags.Changed("delay") {
		cfg.FrameDelay = opts.Delay
	}
	return cfg
}

func (opts *CLIOptions) run(cfg initutil.Config) error {
	if cfg.CellSize < 1 {
		return fmt.Errorf("%w: 格子像素边长必须大于 0，当前 %d", errorutil.ErrInvalidArgument, cfg.CellSize)
	}
	if cfg.FrameLimit < 1 {
		return fmt.Errorf("%w: 帧数上限必须大于 0，当前 %d", errorutil.ErrInvalidArgument, cfg.FrameLimit)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	carver, err := NewSeededCarver(opts.N, seed)
	if err != nil {
		return err
	}
	logutil.Info("迷宫 %dx%d seed=%d", opts.N, opts.N, seed)

	// 拆墙的次数固定为 n*n-1，提前算好要保留哪些帧，只渲染这些帧
	total := opts.N*opts.N - 1
	keep := make(map[int]bool, min(total, cfg.FrameLimit))
	for _, idx := range gifutil.EvenlyIndices(total, cfg.FrameLimit) {
		keep[idx] = true
	}
	var frames []image.Image
	step := 0
	res, err := carver.CarveFunc(func(g *Grid) error {
		if keep[step] {
			frames = append(frames, Render(g, cfg.CellSize))
		}
		step++
		return nil
	})
	if err != nil {
		return err
	}
	// 1x1 的迷宫没有墙可拆，只输出最终状态
	if len(frames) == 0 {
		frames = append(frames, Render(res.Grid, cfg.CellSize))
	}

	dot, err := res.Grid.Graph()
	if err != nil {
		return err
	}
	adj := graph.ToAdjacencyMap(dot)
	if ok, reason := graph.IsSpanningTree(adj); !ok {
		return fmt.Errorf("生成的迷宫不是生成树: %s", reason)
	}

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	name := fmt.Sprintf("maze%dx%d", opts.N, opts.N)
	gifPath := filepath.Join(cfg.OutputDir, name+".gif")
	if err := gifutil.Save(gifPath, frames, cfg.FrameDelay); err != nil {
		return err
	}
	pngPath := filepath.Join(cfg.ImageDir, name+".png")
	if err := raster.SavePNG(pngPath, Render(res.Grid, cfg.CellSize)); err != nil {
		return err
	}

	sum := report.New("maze")
	sum.MustSet("input.n", opts.N)
	sum.MustSet("input.seed", seed)
	sum.MustSet("config.cell_size", cfg.CellSize)
	sum.MustSet("stats.candidates", res.Candidates)
	sum.MustSet("stats.removed", len(res.Removed))
	sum.MustSet("stats.passages", graph.CountEdges(adj))
	sum.MustSet("stats.frames", step)
	sum.MustSet("stats.frames_kept", len(frames))
	if err := sum.AddArtifact("gif", gifPath); err != nil {
		return err
	}
	if err := sum.AddArtifact("png", pngPath); err != nil {
		return err
	}

	if opts.Dot {
		dotPath := filepath.Join(cfg.OutputDir, name+".dot")
		if err := os.WriteFile(dotPath, []byte(dot.String()), 0o644); err != nil {
			return fmt.Errorf("%w: 写入 %s 失败: %v", errorutil.ErrIO, dotPath, err)
		}
		if err := sum.AddArtifact("dot", dotPath); err != nil {
			return err
		}
	}
	return sum.Save(filepath.Join(cfg.OutputDir, report.FileName))
}
