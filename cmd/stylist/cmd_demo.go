package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demoQueries = []struct {
	title string
	query string
}{
	{"Task A", "Find a floral skirt under $40 in size S. Is it in stock, and can I apply a discount code 'SAVE10'?"},
	{"Task B", "I need white sneakers (size 8) for under $70 that can arrive by Friday."},
	{"Task C", "I found a 'casual denim jacket' at $80 on SiteA. Any better deals?"},
	{"Task D", "I want to buy a cocktail dress from SiteB, but only if returns are hassle-free. Do they accept returns?"},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Answer the four example queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, q := range demoQueries {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s:\n", q.title)
			fmt.Fprintln(out, a.assistant.ProcessQuery(cmd.Context(), q.query))
		}
		return nil
	},
}
