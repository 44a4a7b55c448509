package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
	"github.com/nsbbezerra/santa-maria-panel/internal/view"
)

func newNewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Manage news articles",
	}

	cmd.AddCommand(newNewsListCmd())
	cmd.AddCommand(newNewsCreateCmd())
	cmd.AddCommand(newNewsUpdateCmd())
	cmd.AddCommand(newNewsDeleteCmd())
	cmd.AddCommand(newNewsSetImageCmd())
	cmd.AddCommand(newNewsGalleryCmd())

	return cmd
}

func newNewsListCmd() *cobra.Command {
	var (
		page   int
		search string
		date   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List news articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := newPanelClient()

			result, err := client.ListNews(cmd.Context(), page)
			if err != nil {
				return err
			}

			items := result.Items
			if search != "" {
				items = view.FilterByTitle(items, func(n panel.News) string { return n.Title }, search)
			}

			if date != "" {
				day, err := parseDateFlag(date)
				if err != nil {
					return err
				}

				items = view.FilterByDay(items, func(n panel.News) time.Time { return n.Date }, day)
			}

			totalPages := view.TotalPages(result.Count, resolvedCfg.PageSize)

			rows := make([][]string, len(items))
			for i, n := range items {
				rows[i] = []string{n.ID, formatDate(n.Date), n.Tag, truncate(n.Title, 60)}
			}

			if err := printItems(items, []string{"ID", "DATE", "TAG", "TITLE"}, rows); err != nil {
				return err
			}

			statusf("page %d of %d (%d articles)\n", page, totalPages, result.Count)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&search, "search", "", "filter titles by whitespace-separated terms")
	cmd.Flags().StringVar(&date, "date", "", "filter by exact day (YYYY-MM-DD)")

	return cmd
}

func newNewsCreateCmd() *cobra.Command {
	var (
		title     string
		resume    string
		author    string
		tag       string
		date      string
		textFile  string
		imagePath string
		imageCopy string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a news article",
		RunE: func(cmd *cobra.Command, _ []string) error {
			when := time.Now()

			if date != "" {
				parsed, err := parseDateFlag(date)
				if err != nil {
					return err
				}

				when = parsed
			}

			text, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("reading article text: %w", err)
			}

			image, err := openUpload(imagePath)
			if err != nil {
				return err
			}
			defer image.Close()

			client := newPanelClient()

			result, err := client.CreateNews(cmd.Context(), panel.NewsCreate{
				Title:     title,
				Resume:    resume,
				Author:    author,
				Tag:       tag,
				Date:      when,
				Text:      string(text),
				ImageCopy: imageCopy,
				Image:     panel.FileUpload{Name: image.Name(), Reader: image},
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "article title")
	cmd.Flags().StringVar(&resume, "resume", "", "short summary")
	cmd.Flags().StringVar(&author, "author", "", "author line")
	cmd.Flags().StringVar(&tag, "tag", "", "category tag")
	cmd.Flags().StringVar(&date, "date", "", "publication date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&textFile, "text-file", "", "file with the article HTML body")
	cmd.Flags().StringVar(&imagePath, "image", "", "thumbnail image file")
	cmd.Flags().StringVar(&imageCopy, "image-copy", "", "image credit line")

	for _, flag := range []string{"title", "resume", "author", "tag", "text-file", "image", "image-copy"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newNewsUpdateCmd() *cobra.Command {
	var (
		title     string
		resume    string
		author    string
		tag       string
		date      string
		textFile  string
		imageCopy string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an article's text fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			text, err := os.ReadFile(textFile)
			if err != nil {
				return fmt.Errorf("reading article text: %w", err)
			}

			client := newPanelClient()

			result, err := client.UpdateNews(cmd.Context(), args[0], panel.NewsUpdate{
				Title:     title,
				Resume:    resume,
				Author:    author,
				Tag:       tag,
				Date:      when,
				Text:      string(text),
				ImageCopy: imageCopy,
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "article title")
	cmd.Flags().StringVar(&resume, "resume", "", "short summary")
	cmd.Flags().StringVar(&author, "author", "", "author line")
	cmd.Flags().StringVar(&tag, "tag", "", "category tag")
	cmd.Flags().StringVar(&date, "date", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&textFile, "text-file", "", "file with the article HTML body")
	cmd.Flags().StringVar(&imageCopy, "image-copy", "", "image credit line")

	for _, flag := range []string{"title", "resume", "author", "date", "text-file"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newNewsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeleteNews(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}
}

func newNewsSetImageCmd() *cobra.Command {
	var (
		imagePath string
		imageCopy string
	)

	cmd := &cobra.Command{
		Use:   "set-image <id>",
		Short: "Replace an article's thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := openUpload(imagePath)
			if err != nil {
				return err
			}
			defer image.Close()

			result, err := newPanelClient().UpdateNewsImage(cmd.Context(), args[0],
				panel.FileUpload{Name: image.Name(), Reader: image}, imageCopy)
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}

	cmd.Flags().StringVar(&imagePath, "image", "", "thumbnail image file")
	cmd.Flags().StringVar(&imageCopy, "image-copy", "", "image credit line")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newNewsGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage an article's photo gallery",
	}

	cmd.AddCommand(newsGallerySubCmd("add", "Attach gallery photos to an article",
		func(c *panel.Client) galleryOp { return c.AddNewsGallery }))
	cmd.AddCommand(newsGallerySubCmd("set", "Replace an article's gallery",
		func(c *panel.Client) galleryOp { return c.UpdateNewsGallery }))

	return cmd
}

type galleryOp = func(ctx context.Context, id string, images []panel.FileUpload) (api.MutationResult, error)

func newsGallerySubCmd(use, short string, op func(*panel.Client) galleryOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <image>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			images := make([]panel.FileUpload, 0, len(args)-1)

			for _, path := range args[1:] {
				f, err := openUpload(path)
				if err != nil {
					return err
				}
				defer f.Close()

				images = append(images, panel.FileUpload{Name: f.Name(), Reader: f})
			}

			result, err := op(newPanelClient())(cmd.Context(), args[0], images)
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}
}
