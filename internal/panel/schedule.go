package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

// ScheduleEvent is one appointment inside a scheduled day. Time is the
// "HH:MM" slot string the form collects.
type ScheduleEvent struct {
	ID          string `json:"_id"`
	Time        string `json:"schedule"`
	Description string `json:"description"`
}

// ScheduleDay groups the mayor's appointments for one calendar day. Days
// are created empty and filled one event at a time.
type ScheduleDay struct {
	ID     string          `json:"_id"`
	Date   time.Time       `json:"date"`
	Month  string          `json:"month"`
	Year   int             `json:"year"`
	Events []ScheduleEvent `json:"events"`
}

// ScheduleKey is the collection key for one month of scheduled days.
// The endpoint returns a bare array.
func ScheduleKey(month string, year int) string {
	return fmt.Sprintf("/schedule/%s/%d", month, year)
}

// DecodeSchedule decodes a schedule collection payload.
func DecodeSchedule(payload json.RawMessage) ([]ScheduleDay, error) {
	var items []ScheduleDay
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("panel: decoding schedule payload: %w", err)
	}

	return items, nil
}

// scheduleDayCreate is the JSON body for opening a day in the agenda.
type scheduleDayCreate struct {
	Month string    `json:"month" validate:"required"`
	Year  int       `json:"year" validate:"required"`
	Date  time.Time `json:"date" validate:"required"`
}

// CreateScheduleDay opens an empty day in the mayor's agenda. Month and
// year are derived from the date the same way the listing keys are built.
func (c *Client) CreateScheduleDay(ctx context.Context, date time.Time) (api.MutationResult, error) {
	payload := scheduleDayCreate{
		Month: MonthPTBR(date),
		Year:  date.Year(),
		Date:  date,
	}
	if err := c.checkPayload("schedule day create", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PostJSON(ctx, "/schedule", payload)
}

// scheduleEventAdd is the JSON body for appending an event to a day.
type scheduleEventAdd struct {
	Time        string `json:"schedule" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// AddScheduleEvent appends an appointment to an existing day.
func (c *Client) AddScheduleEvent(ctx context.Context, dayID, timeSlot, description string) (api.MutationResult, error) {
	payload := scheduleEventAdd{Time: timeSlot, Description: description}
	if err := c.checkPayload("schedule event", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PutJSON(ctx, "/schedule/"+dayID, payload)
}

// scheduleEventsReplace is the JSON body for rewriting a day's event list.
type scheduleEventsReplace struct {
	Events []ScheduleEvent `json:"events"`
}

// RemoveScheduleEvent deletes one appointment from a day. The API has no
// per-event delete route; the day's remaining events are sent back whole.
func (c *Client) RemoveScheduleEvent(ctx context.Context, day ScheduleDay, eventID string) (api.MutationResult, error) {
	remaining := make([]ScheduleEvent, 0, len(day.Events))
	for _, ev := range day.Events {
		if ev.ID != eventID {
			remaining = append(remaining, ev)
		}
	}

	return c.api.PutJSON(ctx, "/scheduleDel/"+day.ID, scheduleEventsReplace{Events: remaining})
}
