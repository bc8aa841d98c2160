package main

import (
	"os"

	"github.com/quenbyako/core"
	"github.com/quenbyako/core/contrib/runtime"

	"github.com/quenbyako/accountcache/cmd/accountcache/root"
)

//nolint:gochecknoglobals // ldflags doesn't work with constants
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := core.BuildContext(
		core.NewAppName("accountcache", "Account Cache"),
		core.NewVersion(version, commit, date),
		core.PipelineFromFiles(os.Stdin, os.Stdout, os.Stderr),
	)
	defer cancel()

	cmd := runtime.Run(root.Cmd)

	os.Exit(int(cmd(ctx, os.Args[1:])))
}
