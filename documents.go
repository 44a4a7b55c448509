package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
	"github.com/nsbbezerra/santa-maria-panel/internal/view"
)

func newBidsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bids",
		Short: "Manage procurement notices",
	}

	cmd.AddCommand(newBidsListCmd())
	cmd.AddCommand(newBidsCreateCmd())
	cmd.AddCommand(newBidsDeleteCmd())

	return cmd
}

func newBidsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List procurement notices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newPanelClient().ListBids(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i, b := range items {
				rows[i] = []string{b.ID, formatDate(b.Date), truncate(b.Title, 60)}
			}

			return printItems(items, []string{"ID", "DATE", "TITLE"}, rows)
		},
	}
}

func newBidsCreateCmd() *cobra.Command {
	var (
		title string
		date  string
	)

	cmd := &cobra.Command{
		Use:   "create <pdf>...",
		Short: "Publish a procurement notice with its PDFs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now()

			if date != "" {
				parsed, err := parseDateFlag(date)
				if err != nil {
					return err
				}

				when = parsed
			}

			pdfs := make([]panel.FileUpload, 0, len(args))

			for _, path := range args {
				f, err := openUpload(path)
				if err != nil {
					return err
				}
				defer f.Close()

				pdfs = append(pdfs, panel.FileUpload{Name: f.Name(), Reader: f})
			}

			result, err := newPanelClient().CreateBid(cmd.Context(), panel.BidCreate{
				Title: title,
				Date:  when,
				PDFs:  pdfs,
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "notice title")
	cmd.Flags().StringVar(&date, "date", "", "notice date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newBidsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a procurement notice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeleteBid(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}
}

func newPublicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publications",
		Short: "Manage official publications",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List official publications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newPanelClient().ListPublications(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i, p := range items {
				rows[i] = []string{p.ID, formatDate(p.Date), truncate(p.Title, 50), p.File}
			}

			return printItems(items, []string{"ID", "DATE", "TITLE", "FILE"}, rows)
		},
	})

	cmd.AddCommand(newPublicationsCreateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an official publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeletePublication(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	})

	return cmd
}

func newPublicationsCreateCmd() *cobra.Command {
	var (
		title string
		date  string
		file  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an official publication",
		RunE: func(cmd *cobra.Command, _ []string) error {
			when := time.Now()

			if date != "" {
				parsed, err := parseDateFlag(date)
				if err != nil {
					return err
				}

				when = parsed
			}

			result, err := newPanelClient().CreatePublication(cmd.Context(), panel.PublicationCreate{
				Title: title,
				Date:  when,
				File:  file,
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "publication title")
	cmd.Flags().StringVar(&date, "date", "", "publication date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&file, "file", "", "URL of the published PDF")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newInformativesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "informatives",
		Short: "Manage informational images",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List informational images",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newPanelClient().ListInformatives(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i, inf := range items {
				rows[i] = []string{inf.ID, inf.Image}
			}

			return printItems(items, []string{"ID", "IMAGE"}, rows)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <image>",
		Short: "Upload an informational image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().CreateInformative(cmd.Context(),
				panel.FileUpload{Name: f.Name(), Reader: f})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an informational image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeleteInformative(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	})

	return cmd
}

func newOrdinancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ordinances",
		Short: "Manage municipal ordinances",
	}

	cmd.AddCommand(newOrdinancesListCmd())

	cmd.AddCommand(newOrdinancesCreateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an ordinance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().DeleteOrdinance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	})

	return cmd
}

func newOrdinancesListCmd() *cobra.Command {
	var (
		page        int
		secretaryID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ordinances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := newPanelClient().ListOrdinances(cmd.Context(), secretaryID, page)
			if err != nil {
				return err
			}

			rows := make([][]string, len(result.Items))
			for i, o := range result.Items {
				rows[i] = []string{o.ID, o.SecretaryID, truncate(o.Title, 50), o.File}
			}

			if err := printItems(result.Items, []string{"ID", "SECRETARY", "TITLE", "FILE"}, rows); err != nil {
				return err
			}

			statusf("page %d of %d (%d ordinances)\n",
				page, view.TotalPages(result.Count, resolvedCfg.PageSize), result.Count)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&secretaryID, "secretary", "", "filter by secretariat id (default all)")

	return cmd
}

func newOrdinancesCreateCmd() *cobra.Command {
	var (
		title       string
		description string
		secretaryID string
	)

	cmd := &cobra.Command{
		Use:   "create <pdf>",
		Short: "Publish an ordinance under a secretariat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().CreateOrdinance(cmd.Context(), panel.OrdinanceCreate{
				Title:       title,
				Description: description,
				SecretaryID: secretaryID,
				PDF:         panel.FileUpload{Name: f.Name(), Reader: f},
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "ordinance title")
	cmd.Flags().StringVar(&description, "description", "", "ordinance description")
	cmd.Flags().StringVar(&secretaryID, "secretary", "", "id of the owning secretariat")

	for _, flag := range []string{"title", "description", "secretary"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newDecreesCmd() *cobra.Command {
	var (
		title       string
		description string
	)

	create := &cobra.Command{
		Use:   "create <pdf>",
		Short: "Publish a decree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().CreateDecree(cmd.Context(), panel.DecreeCreate{
				Title:       title,
				Description: description,
				PDF:         panel.FileUpload{Name: f.Name(), Reader: f},
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	create.Flags().StringVar(&title, "title", "", "decree title")
	create.Flags().StringVar(&description, "description", "", "decree description")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("description")

	cmd := &cobra.Command{
		Use:   "decrees",
		Short: "Manage municipal decrees",
	}
	cmd.AddCommand(create)

	return cmd
}
