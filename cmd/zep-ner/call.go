package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/getzep/zep-ner/pkg/client"
)

const defaultCallTimeout = 30 * time.Second

var callCmd = &cobra.Command{
	Use:   "call <" + strings.Join(client.Operations, "|") + "> <text>",
	Short: "Call a running zep-ner server and print the decoded result",
	Example: `zep-ner call tokenize "Barack Obama was born in Hawaii."
zep-ner call chunk --addr ner.internal:7777 "Angela Merkel visited Paris."`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := cmd.Flags().GetString("addr")
		if err != nil {
			return err
		}
		timeout, err := cmd.Flags().GetDuration("timeout")
		if err != nil {
			return err
		}

		c, err := client.Dial(addr)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		out, err := c.Call(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
