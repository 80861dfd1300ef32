package main

import (
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp/server"

	"github.com/leonardinius/golean/internal/lsp"

	_ "github.com/tliron/commonlog/simple"
)

var version string = "0.0.1"

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	s := lsp.NewServer(version)
	srv := server.NewServer(s.Handler(), lsp.Name, false)

	if err := srv.RunStdio(); err != nil {
		commonlog.GetLogger("golean.lsp").Errorf("run stdio: %s", err)
	}
}
