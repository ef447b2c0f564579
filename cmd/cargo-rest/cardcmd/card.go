/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cardcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/ledger/memledger"
)

const (
	userNameFlagName  = "user-name"
	userNameFlagUsage = "Name of the ledger identity the card belongs to."

	businessNetworkFlagName  = "business-network"
	businessNetworkFlagUsage = "Business network the card connects to. Default: " + memledger.DefaultNetworkName

	enrollmentSecretFlagName  = "enrollment-secret" //nolint:gosec
	enrollmentSecretFlagUsage = "Enrollment secret of the identity."

	connectionProfileFlagName  = "connection-profile"
	connectionProfileFlagUsage = "Path to a JSON connection profile. The built-in profile is used if not set."

	outputFlagName  = "output"
	outputFlagUsage = "Path of the card archive to write. Default: <user-name>@<business-network>.card"
)

// GetCardCmd returns the card command with its subcommands.
func GetCardCmd() *cobra.Command {
	cardCmd := &cobra.Command{
		Use:   "card",
		Short: "Identity card tools",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	cardCmd.AddCommand(createCmd())

	return cardCmd
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an identity card archive",
		Long:  "Create an identity card archive that can be passed to cargo-rest start as the admin card",
		RunE: func(cmd *cobra.Command, args []string) error {
			userName, err := cmdutils.GetUserSetVarFromString(cmd, userNameFlagName, "", false)
			if err != nil {
				return err
			}

			secret, err := cmdutils.GetUserSetVarFromString(cmd, enrollmentSecretFlagName, "", false)
			if err != nil {
				return err
			}

			network := cmdutils.GetUserSetOptionalVarFromString(cmd, businessNetworkFlagName, "")
			if network == "" {
				network = memledger.DefaultNetworkName
			}

			profile := card.DefaultConnectionProfile()

			if path := cmdutils.GetUserSetOptionalVarFromString(cmd, connectionProfileFlagName, ""); path != "" {
				profile, err = card.LoadConnectionProfile(path)
				if err != nil {
					return err
				}
			}

			c := card.New(userName, network, secret, profile)

			archive, err := c.ToArchive()
			if err != nil {
				return err
			}

			output := cmdutils.GetUserSetOptionalVarFromString(cmd, outputFlagName, "")
			if output == "" {
				output = c.Name() + ".card"
			}

			if err = os.WriteFile(output, archive, 0o600); err != nil {
				return fmt.Errorf("write card archive: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Card %s written to %s\n", c.Name(), output)

			return nil
		},
	}

	cmd.Flags().StringP(userNameFlagName, "", "", userNameFlagUsage)
	cmd.Flags().StringP(businessNetworkFlagName, "", "", businessNetworkFlagUsage)
	cmd.Flags().StringP(enrollmentSecretFlagName, "", "", enrollmentSecretFlagUsage)
	cmd.Flags().StringP(connectionProfileFlagName, "", "", connectionProfileFlagUsage)
	cmd.Flags().StringP(outputFlagName, "o", "", outputFlagUsage)

	return cmd
}
