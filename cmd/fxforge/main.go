package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/fxforge/internal/cli"
	"github.com/ppiankov/fxforge/internal/compute"
	"github.com/ppiankov/fxforge/internal/config"
	"github.com/ppiankov/fxforge/internal/convert"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var (
			validation *convert.ValidationError
			keyErr     *config.KeyError
			abandoned  *compute.AbandonedError
		)
		switch {
		case errors.As(err, &validation), errors.As(err, &keyErr):
			os.Exit(2)
		case errors.As(err, &abandoned):
			os.Exit(3)
		}
		os.Exit(1)
	}
}
