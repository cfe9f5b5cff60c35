// Command vaultadm is the operator tool of go-pass-vault. It applies schema
// migrations, moves legacy records into default vaults and generates
// passwords offline.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
