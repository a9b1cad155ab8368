package commands

import (
	"github.com/spf13/cobra"
)

var room string

// Execute builds and runs the nulltrace command tree. There is no
// persisted configuration: every run starts from fresh, in-memory key
// material, per the engine's no-persisted-state design.
func Execute() error {
	root := &cobra.Command{
		Use:   "nulltrace",
		Short: "End-to-end encrypted group chat engine",
	}

	root.PersistentFlags().StringVar(&room, "room", "r1", "room name")

	root.AddCommand(capsuleCmd(), demoCmd(), fingerprintCmd())
	return root.Execute()
}
