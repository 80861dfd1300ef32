package main

import (
	"os"

	"github.com/leonardinius/golean/cmd"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	app := cmd.NewLeanApp()
	os.Exit(app.Main(os.Args[1:]))
}
