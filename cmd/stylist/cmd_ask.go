package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.assistant.ProcessQuery(cmd.Context(), strings.Join(args, " ")))
		return nil
	},
}
