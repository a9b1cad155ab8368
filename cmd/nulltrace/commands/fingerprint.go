package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nulltrace/internal/keymaterial"
	"nulltrace/internal/primitives"
)

// fingerprintCmd generates a fresh member identity and prints its key
// fingerprints, since no identity is persisted between runs: a user who
// wants to cross-check a peer out of band compares the fingerprint printed
// here against what that peer reports for the same session.
func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Generate an identity and print its key fingerprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := keymaterial.NewMember()
			if err != nil {
				return err
			}
			fmt.Printf("cid:         %s\n", m.CID)
			fmt.Printf("ed25519 fp:  %s\n", primitives.Fingerprint(m.IDPub.Slice()))
			fmt.Printf("x25519 fp:   %s\n", primitives.Fingerprint(m.XPub.Slice()))
			return nil
		},
	}
}
