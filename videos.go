package main

import (
	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/view"
)

func newVideosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Manage embedded videos",
	}

	cmd.AddCommand(newVideosListCmd())
	cmd.AddCommand(newVideosAddCmd())
	cmd.AddCommand(newVideosDeleteCmd())

	return cmd
}

func newVideosListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List videos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := newPanelClient().ListVideos(cmd.Context(), page)
			if err != nil {
				return err
			}

			rows := make([][]string, len(result.Items))
			for i, v := range result.Items {
				rows[i] = []string{v.ID, v.URL}
			}

			if err := printItems(result.Items, []string{"ID", "URL"}, rows); err != nil {
				return err
			}

			statusf("page %d of %d (%d videos)\n",
				page, view.TotalPages(result.Count, resolvedCfg.PageSize), result.Count)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newVideosAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <embed-url>",
		Short: "Add an embeddable video URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().CreateVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}
}

func newVideosDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeleteVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}
}
