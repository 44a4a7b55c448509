package main

import (
	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
)

func newBannersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banners",
		Short: "Manage homepage banners",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List banners",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newPanelClient().ListBanners(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i, b := range items {
				rows[i] = []string{b.ID, b.Image, b.URL}
			}

			return printItems(items, []string{"ID", "IMAGE", "URL"}, rows)
		},
	})

	cmd.AddCommand(newBannersCreateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeleteBanner(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	})

	return cmd
}

func newBannersCreateCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "create <image>",
		Short: "Upload a carousel banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().CreateBanner(cmd.Context(),
				panel.FileUpload{Name: f.Name(), Reader: f}, url)
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "click-through destination (optional)")

	return cmd
}
