// launchersync - settings companion CLI for the EmberLaunch launcher.
package main

import (
	"github.com/emberlaunch/launchersync/internal/cli"
)

// Version information - overridden via ldflags for release builds.
var (
	Version   = "v1.4.0"
	BuildTime = "2026-08-20"
)

func main() {
	cli.Version = Version
	cli.BuildTime = BuildTime
	cli.Execute()
}
