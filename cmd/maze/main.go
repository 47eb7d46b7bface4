package main

import (
	"os"

	"unionfind_tool/internal/cliutil"
	"unionfind_tool/pkg/maze"
)

func main() {
	cmd := maze.Cmd()
	cliutil.Bind(cmd, "maze.log")
	os.Exit(cliutil.Execute(cmd))
}
