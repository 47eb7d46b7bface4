// 命令行入口共用的部分：全局 flag、日志初始化、配置加载、错误码
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unionfind_tool/pkg/errorutil"
	"unionfind_tool/pkg/initutil"
	"unionfind_tool/pkg/logutil"
)

// Options 所有子命令共享的全局参数
type Options struct {
	LogLevel   logutil.Level
	LogFile    string
	ConfigPath string
	OutDir     string
	ImageDir   string
}

// Bind 在根命令上注册全局 flag，并在参数解析完成后初始化日志和配置
func Bind(root *cobra.Command, defaultLogFile string) *Options {
	opts := &Options{LogLevel: logutil.WARN}

	// 屁股后面带P的函数才支持短选项
	flags := root.PersistentFlags()
	flags.VarP(&opts.LogLevel, "log-level", "e", "日志等级(DEBUG/INFO/WARN/ERROR)")
	flags.StringVarP(&opts.LogFile, "log-file", "l", defaultLogFile,
		fmt.Sprintf("日志文件名(默认%s，stdout 表示标准输出)", defaultLogFile))
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "JSON 配置文件路径")
	flags.StringVarP(&opts.OutDir, "out", "o", "", "动画输出目录(覆盖配置文件中的 output_dir)")
	flags.StringVar(&opts.ImageDir, "image-dir", "", "静态图输出目录(覆盖配置文件中的 image_dir)")

	// 阻止 Cobra 在命令参数错误时输出帮助
	root.SilenceUsage = true
	// 阻止Cobra自动打印RunEs返回的错误内容
	root.SilenceErrors = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errorutil.UsageError(err)
	})

	// 这个钩子会在用户的命令解析完成、flag 值填充后执行
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logutil.InitLogger(opts.LogFile, opts.LogLevel)
		logutil.SetLogLevel(opts.LogLevel)
		return opts.apply()
	}
	return opts
}

func (opts *Options) apply() error {
	cfg, err := initutil.InitSystem(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.OutDir != "" {
		cfg.OutputDir = opts.OutDir
	}
	if opts.ImageDir != "" {
		cfg.ImageDir = opts.ImageDir
	}
	initutil.SetConfig(cfg)
	return nil
}

// Execute 执行命令并返回退出码，失败时把带错误码的 JSON 写到 stderr
func Execute(root *cobra.Command) int {
	return run(root, os.Stderr)
}

func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		_ = logutil.CloseLogger()
		return errorutil.CodeSuccess
	}

	coded := errorutil.Classify(err)
	code := errorutil.ExitCodeFromError(coded)
	logutil.Error("命令执行失败(code=%d): %v", code, err)
	logutil.Debug("根因: %v", errorutil.RootError(err))
	msg, _ := errorutil.FormatErrorAndCode(coded)
	fmt.Fprintln(stderr, msg)
	_ = logutil.CloseLogger()
	return code
}
