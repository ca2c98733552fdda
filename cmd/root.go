package cmd

import (
	"fmt"
	"io"
	"os"

	txerrors "github.com/mezonai/mina-connector/errors"
	"github.com/mezonai/mina-connector/logx"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mina-connector",
	Short: "Mina wallet-connector transaction tools",
	Long:  "Command line interface for preparing canonical Mina transaction records before they are handed to a signer.",
	// run prints every failure as TxError JSON, usage would only add noise
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &txerrors.InvalidArgumentError{Reason: err.Error()}
	})
}

func Execute() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run executes the command line and reports any failure on stderr.
func run() error {
	err := rootCmd.Execute()
	if err != nil {
		reportFailure(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// reportFailure prints the display form of err for the calling UI.
func reportFailure(w io.Writer, err error) {
	txErr := txerrors.ToTxError(err)
	if txErr.Code == txerrors.ErrCodeInternal {
		txErr.Detail = err.Error()
		logx.Error("CMD", "Command execution failed:", err)
	} else {
		logx.Warn("CMD", txErr.Message)
	}
	fmt.Fprintln(w, txErr.Error())
}
