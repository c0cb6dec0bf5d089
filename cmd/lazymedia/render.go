package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "render <page.yaml>",
		Short: "Print the initial HTML of a page's players",
		Long: `Render mounts every video on the page and prints the placeholders.
Nothing has been visible yet, so no player carries a source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(args[0])
			if err != nil {
				return err
			}

			h := mountPage(page)
			defer h.close()

			if err := h.node().WriteHTML(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write html: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
