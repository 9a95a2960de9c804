package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := "v" + Version
		kind := "release"
		switch {
		case !semver.IsValid(v):
			kind = "unversioned"
		case semver.Prerelease(v) != "":
			kind = "development"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "videooverlay %s (%s build, %s, %s/%s, built %s)\n",
			Version, kind, runtime.Version(), runtime.GOOS, runtime.GOARCH, BuildTime)
		return nil
	},
}
