package main

import (
	"fmt"
	"os"

	"github.com/commitgen/commitgen/internal/cmd"
	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
)

// Build-time variables set via -ldflags.
var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd(version, commitHash, buildDate)

	if err := rootCmd.Execute(); err != nil {
		if apperrors.IsVerbose() {
			fmt.Fprintln(os.Stderr, apperrors.FormatErrorVerbose(err))
		} else {
			fmt.Fprintln(os.Stderr, apperrors.FormatError(err))
		}
		os.Exit(apperrors.GetExitCode(err))
	}
}
