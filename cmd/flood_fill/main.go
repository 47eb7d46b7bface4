package main

import (
	"os"

	"unionfind_tool/internal/cliutil"
	"unionfind_tool/pkg/floodfill"
)

func main() {
	cmd := floodfill.Cmd()
	cmd.Use = "flood_fill <image> <col,row> <r,g,b>"
	cliutil.Bind(cmd, "flood_fill.log")
	os.Exit(cliutil.Execute(cmd))
}
