package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nsbbezerra/santa-maria-panel/internal/panel"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the mayor's agenda",
	}

	cmd.AddCommand(newScheduleListCmd())
	cmd.AddCommand(newScheduleOpenDayCmd())
	cmd.AddCommand(newScheduleAddCmd())
	cmd.AddCommand(newScheduleRemoveCmd())

	return cmd
}

// scheduleMonthFlags binds the --month/--year pair, defaulting to the
// current month in the panel's pt-BR naming.
func scheduleMonthFlags(cmd *cobra.Command, month *string, year *int) {
	now := time.Now()

	cmd.Flags().StringVar(month, "month", panel.MonthPTBR(now), "month name in pt-BR (e.g. março)")
	cmd.Flags().IntVar(year, "year", now.Year(), "four-digit year")
}

func newScheduleListCmd() *cobra.Command {
	var (
		month string
		year  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one month of the agenda",
		RunE: func(cmd *cobra.Command, _ []string) error {
			days, err := newPanelClient().ListSchedule(cmd.Context(), month, year)
			if err != nil {
				return err
			}

			var rows [][]string

			for _, day := range days {
				if len(day.Events) == 0 {
					rows = append(rows, []string{day.ID, formatDate(day.Date), "-", "-", "(no events)"})
					continue
				}

				for _, ev := range day.Events {
					rows = append(rows, []string{day.ID, formatDate(day.Date), ev.ID, ev.Time, truncate(ev.Description, 50)})
				}
			}

			return printItems(days, []string{"DAY", "DATE", "EVENT", "TIME", "DESCRIPTION"}, rows)
		},
	}

	scheduleMonthFlags(cmd, &month, &year)

	return cmd
}

func newScheduleOpenDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open-day <date>",
		Short: "Open a day (YYYY-MM-DD) in the agenda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateFlag(args[0])
			if err != nil {
				return err
			}

			result, err := newPanelClient().CreateScheduleDay(cmd.Context(), date)
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, result.ID)

			return nil
		},
	}
}

func newScheduleAddCmd() *cobra.Command {
	var (
		timeSlot    string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <day-id>",
		Short: "Add an appointment to a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newPanelClient().AddScheduleEvent(cmd.Context(), args[0], timeSlot, description)
			if err != nil {
				return err
			}

			mutationFeedback(result.Message, "")

			return nil
		},
	}

	cmd.Flags().StringVar(&timeSlot, "time", "", "time slot (HH:MM)")
	cmd.Flags().StringVar(&description, "description", "", "appointment description")
	_ = cmd.MarkFlagRequired("time")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newScheduleRemoveCmd() *cobra.Command {
	var (
		month string
		year  int
	)

	cmd := &cobra.Command{
		Use:   "remove <day-id> <event-id>",
		Short: "Remove an appointment from a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newPanelClient()

			// The removal route rewrites the day's event list, so the day
			// must be fetched first.
			days, err := client.ListSchedule(cmd.Context(), month, year)
			if err != nil {
				return err
			}

			for _, day := range days {
				if day.ID != args[0] {
					continue
				}

				result, err := client.RemoveScheduleEvent(cmd.Context(), day, args[1])
				if err != nil {
					return err
				}

				mutationFeedback(result.Message, "")

				return nil
			}

			return fmt.Errorf("day %s not found in %s/%d", args[0], month, year)
		},
	}

	scheduleMonthFlags(cmd, &month, &year)

	return cmd
}
