package main

import (
	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
)

func newSecretariesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secretaries",
		Short: "Manage municipal secretariats",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List secretariats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newPanelClient().ListSecretaries(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i, s := range items {
				rows[i] = []string{s.ID, truncate(s.Title, 40), s.Name, s.Phone}
			}

			return printItems(items, []string{"ID", "SECRETARIAT", "SECRETARY", "PHONE"}, rows)
		},
	})

	cmd.AddCommand(newSecretariesCreateCmd())
	cmd.AddCommand(newSecretariesUpdateCmd())
	cmd.AddCommand(newSecretariesSetImageCmd())

	return cmd
}

// secretaryFlags binds the shared secretariat field flags on cmd.
func secretaryFlags(cmd *cobra.Command, title, name, address, phone, email, schedule *string) {
	cmd.Flags().StringVar(title, "title", "", "secretariat name")
	cmd.Flags().StringVar(name, "name", "", "secretary's name")
	cmd.Flags().StringVar(address, "address", "", "office address")
	cmd.Flags().StringVar(phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(email, "email", "", "contact email")
	cmd.Flags().StringVar(schedule, "schedule", "", "opening hours")

	for _, flag := range []string{"title", "name", "address", "phone", "email", "schedule"} {
		_ = cmd.MarkFlagRequired(flag)
	}
}

func newSecretariesCreateCmd() *cobra.Command {
	var title, name, address, phone, email, schedule string

	cmd := &cobra.Command{
		Use:   "create <photo>",
		Short: "Register a secretariat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().CreateSecretary(cmd.Context(), panel.SecretaryCreate{
				Title:     title,
				Name:      name,
				Address:   address,
				Phone:     phone,
				Email:     email,
				Schedule:  schedule,
				Thumbnail: panel.FileUpload{Name: f.Name(), Reader: f},
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	secretaryFlags(cmd, &title, &name, &address, &phone, &email, &schedule)

	return cmd
}

func newSecretariesUpdateCmd() *cobra.Command {
	var title, name, address, phone, email, schedule string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a secretariat's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().UpdateSecretaryInfo(cmd.Context(), args[0], panel.SecretaryUpdate{
				Title:    title,
				Name:     name,
				Address:  address,
				Phone:    phone,
				Email:    email,
				Schedule: schedule,
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}

	secretaryFlags(cmd, &title, &name, &address, &phone, &email, &schedule)

	return cmd
}

func newSecretariesSetImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-image <id> <photo>",
		Short: "Replace a secretariat's photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().UpdateSecretaryImage(cmd.Context(), args[0],
				panel.FileUpload{Name: f.Name(), Reader: f})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}
}

func newDesksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "desks",
		Short: "Manage the municipal directing board",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List board seats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := newPanelClient().ListDesks(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(items))
			for i, d := range items {
				rows[i] = []string{d.ID, d.Type, d.Name}
			}

			return printItems(items, []string{"ID", "TYPE", "NAME"}, rows)
		},
	})

	cmd.AddCommand(newDesksCreateCmd())
	cmd.AddCommand(newDesksUpdateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "set-image <id> <photo>",
		Short: "Replace a board seat's photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().ChangeDeskImage(cmd.Context(), args[0],
				panel.FileUpload{Name: f.Name(), Reader: f})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	})

	return cmd
}

func newDesksCreateCmd() *cobra.Command {
	var name, deskType, text string

	cmd := &cobra.Command{
		Use:   "create <photo>",
		Short: "Register a board seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := openUpload(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := newPanelClient().CreateDesk(cmd.Context(), panel.DeskCreate{
				Name:      name,
				Type:      deskType,
				Text:      text,
				Thumbnail: panel.FileUpload{Name: f.Name(), Reader: f},
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&deskType, "type", "", "board section")
	cmd.Flags().StringVar(&text, "text", "", "biography text")

	for _, flag := range []string{"name", "type", "text"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

func newDesksUpdateCmd() *cobra.Command {
	var name, deskType, text string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a board seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().UpdateDesk(cmd.Context(), args[0], panel.DeskUpdate{
				Name: name,
				Type: deskType,
				Text: text,
			})
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&deskType, "type", "", "board section")
	cmd.Flags().StringVar(&text, "text", "", "biography text")

	for _, flag := range []string{"name", "type", "text"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}
