package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nulltrace/internal/capsule"
	"nulltrace/internal/domain"
	"nulltrace/internal/keymaterial"
	"nulltrace/internal/primitives"
)

func capsuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capsule",
		Short: "Build or parse an access capsule",
	}
	cmd.AddCommand(capsuleCreateCmd(), capsuleParseCmd())
	return cmd
}

func capsuleCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Generate a fresh host identity and print a capsule inviting it into --room",
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := keymaterial.NewMember()
			if err != nil {
				return err
			}

			enc, err := capsule.Create(
				domain.Room(room), host.CID, host.XPub, host.PQPub,
				host.IDPriv, host.IDPub,
				primitives.SystemClock.Now(), primitives.SystemRand,
			)
			if err != nil {
				return err
			}

			fmt.Printf("host cid: %s\n", host.CID)
			fmt.Printf("capsule:  %s\n", enc)
			return nil
		},
	}
}

func capsuleParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <capsule>",
		Short: "Parse and verify a capsule, printing its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := capsule.Parse([]byte(args[0]), primitives.SystemClock.Now())
			if err != nil {
				return err
			}
			fmt.Printf("room: %s\n", payload.Room)
			fmt.Printf("host cid: %s\n", payload.CID)
			fmt.Printf("issued: %d  expires: %d\n", payload.IAT, payload.Exp)
			return nil
		},
	}
}
