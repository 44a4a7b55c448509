package panel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

// Secretary is a municipal secretariat: the office, its holder, and
// contact details. Title is the secretariat name, Name its secretary.
type Secretary struct {
	ID       string `json:"_id"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Schedule string `json:"schedule"`
	Image    string `json:"thumbnail"`
}

// SecretariesKey is the collection key for the secretariats list.
// The endpoint returns a bare array.
const SecretariesKey = "/secretaries"

// DecodeSecretaries decodes a secretariats collection payload.
func DecodeSecretaries(payload json.RawMessage) ([]Secretary, error) {
	var items []Secretary
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("panel: decoding secretaries payload: %w", err)
	}

	return items, nil
}

// SecretaryCreate is the multipart payload for registering a secretariat.
type SecretaryCreate struct {
	Title     string     `validate:"required"`
	Name      string     `validate:"required"`
	Address   string     `validate:"required"`
	Phone     string     `validate:"required"`
	Email     string     `validate:"required,email"`
	Schedule  string     `validate:"required"`
	Thumbnail FileUpload `validate:"required"`
}

// CreateSecretary registers a secretariat with its photo.
func (c *Client) CreateSecretary(ctx context.Context, payload SecretaryCreate) (api.MutationResult, error) {
	if err := c.checkPayload("secretary create", payload); err != nil {
		return api.MutationResult{}, err
	}

	form := api.NewForm().
		AddField("title", payload.Title).
		AddField("name", payload.Name).
		AddField("address", payload.Address).
		AddField("phone", payload.Phone).
		AddField("email", payload.Email).
		AddField("schedule", payload.Schedule).
		AddFile("thumbnail", payload.Thumbnail.Name, payload.Thumbnail.Reader)

	return c.api.PostMultipart(ctx, "/secretaries", form)
}

// SecretaryUpdate is the JSON payload for editing a secretariat's details.
type SecretaryUpdate struct {
	Title    string `json:"title" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Schedule string `json:"schedule" validate:"required"`
}

// UpdateSecretaryInfo edits a secretariat's text fields.
func (c *Client) UpdateSecretaryInfo(ctx context.Context, id string, payload SecretaryUpdate) (api.MutationResult, error) {
	if err := c.checkPayload("secretary update", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PutJSON(ctx, "/updateSecretaryInfo/"+id, payload)
}

// UpdateSecretaryImage replaces a secretariat's photo.
func (c *Client) UpdateSecretaryImage(ctx context.Context, id string, thumbnail FileUpload) (api.MutationResult, error) {
	form := api.NewForm().AddFile("thumbnail", thumbnail.Name, thumbnail.Reader)

	return c.api.PutMultipart(ctx, "/updateSecretaryImage/"+id, form)
}

// Desk is a seat of the municipal directing board (mayor's office and the
// council desks). Type distinguishes board sections.
type Desk struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Text  string `json:"text"`
	Image string `json:"thumbnail"`
}

type desksPayload struct {
	Items []Desk `json:"desk"`
}

// DesksKey is the collection key for the directing board list.
const DesksKey = "/desk"

// DecodeDesks decodes a directing board collection payload.
func DecodeDesks(payload json.RawMessage) ([]Desk, error) {
	var body desksPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("panel: decoding desks payload: %w", err)
	}

	return body.Items, nil
}

// DeskCreate is the multipart payload for registering a board seat.
type DeskCreate struct {
	Name      string     `validate:"required"`
	Type      string     `validate:"required"`
	Text      string     `validate:"required"`
	Thumbnail FileUpload `validate:"required"`
}

// CreateDesk registers a board seat with its photo.
func (c *Client) CreateDesk(ctx context.Context, payload DeskCreate) (api.MutationResult, error) {
	if err := c.checkPayload("desk create", payload); err != nil {
		return api.MutationResult{}, err
	}

	form := api.NewForm().
		AddField("name", payload.Name).
		AddField("type", payload.Type).
		AddField("text", payload.Text).
		AddFile("thumbnail", payload.Thumbnail.Name, payload.Thumbnail.Reader)

	return c.api.PostMultipart(ctx, "/desk", form)
}

// DeskUpdate is the JSON payload for editing a board seat.
type DeskUpdate struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// UpdateDesk edits a board seat's text fields.
func (c *Client) UpdateDesk(ctx context.Context, id string, payload DeskUpdate) (api.MutationResult, error) {
	if err := c.checkPayload("desk update", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PutJSON(ctx, "/desk/"+id, payload)
}

// ChangeDeskImage replaces a board seat's photo.
func (c *Client) ChangeDeskImage(ctx context.Context, id string, thumbnail FileUpload) (api.MutationResult, error) {
	form := api.NewForm().AddFile("thumbnail", thumbnail.Name, thumbnail.Reader)

	return c.api.PutMultipart(ctx, "/changeImageDesk/"+id, form)
}
