/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cargo-rest is the REST gateway to the cargo business network.
//
//	Schemes: http, https
//	Version: 0.1.0
//	License: SPDX-License-Identifier: Apache-2.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/cmd/cargo-rest/cardcmd"
	"github.com/trustbloc/cargo-gateway/cmd/cargo-rest/startcmd"
)

var logger = log.New("cargo-rest")
var Version string // will be embeded during build

func main() {
	rootCmd := &cobra.Command{
		Use: "cargo-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd(
		startcmd.WithVersion(Version),
		startcmd.WithServerVersion(os.Getenv("CARGO_SERVER_VERSION")),
	))
	rootCmd.AddCommand(cardcmd.GetCardCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run cargo-rest", log.WithError(err))
	}
}
