package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"unionfind_tool/internal/cliutil"
	"unionfind_tool/pkg/floodfill"
	"unionfind_tool/pkg/maze"
)

const TOOL_VERSION = "1.0.0+20250702"

func main() {
	var rootCmd = &cobra.Command{
		Use:     "dsgif",
		Version: TOOL_VERSION,
		Short:   fmt.Sprintf("dsgif v%s 基于并查集的图片填充和迷宫生成工具，支持 floodfill/maze 子命令", TOOL_VERSION),
		Long: "     _                _  __ \n" +
			"  __| | ___  __ _   (_)/ _|\n" +
			" / _` |/ __|/ _` |  | | |_ \n" +
			"| (_| |\\__ \\ (_| |  | |  _|\n" +
			" \\__,_||___/\\__, |  |_|_|  \n" +
			"            |___/          \n" +
			fmt.Sprintf("\ndsgif v%s 基于并查集的图片填充和迷宫生成工具，支持 floodfill/maze 子命令\n", TOOL_VERSION),
	}

	rootCmd.AddCommand(floodfill.Cmd())
	rootCmd.AddCommand(maze.Cmd())
	cliutil.Bind(rootCmd, "dsgif.log")

	// 不要用defer，因为defer是在函数返回前执行的，而不是os.Exit()执行前执行
	os.Exit(cliutil.Execute(rootCmd))
}
