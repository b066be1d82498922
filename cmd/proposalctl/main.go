// Package main - утилита обслуживания сервиса предложений.
package main

import (
	"os"

	"github.com/proposalgen/proposal-backend/cmd/proposalctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
