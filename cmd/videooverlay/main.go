// Command videooverlay previews the video overlay state machine in a
// terminal, driven by a simulated decoder and device.
package main

import (
	"os"

	"github.com/go-drift/videooverlay/cmd/videooverlay/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
