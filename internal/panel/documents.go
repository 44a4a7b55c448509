package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

// Bid is a procurement notice with one or more attached PDF files.
type Bid struct {
	ID    string    `json:"_id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	Files []string  `json:"pdf"`
}

type bidsPayload struct {
	Items []Bid `json:"bid"`
}

// BidsKey is the collection key for the bids list (not paginated).
const BidsKey = "/bids"

// DecodeBids decodes a bids collection payload.
func DecodeBids(payload json.RawMessage) ([]Bid, error) {
	var body bidsPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("panel: decoding bids payload: %w", err)
	}

	return body.Items, nil
}

// BidCreate is the multipart payload for publishing a procurement notice.
type BidCreate struct {
	Title string       `validate:"required"`
	Date  time.Time    `validate:"required"`
	PDFs  []FileUpload `validate:"required,min=1"`
}

// CreateBid publishes a procurement notice with its PDF attachments.
func (c *Client) CreateBid(ctx context.Context, payload BidCreate) (api.MutationResult, error) {
	if err := c.checkPayload("bid create", payload); err != nil {
		return api.MutationResult{}, err
	}

	form := api.NewForm().
		AddField("title", payload.Title).
		AddField("date", payload.Date.Format(time.RFC3339))

	for _, pdf := range payload.PDFs {
		form.AddFile("pdf", pdf.Name, pdf.Reader)
	}

	return c.api.PostMultipart(ctx, "/bids", form)
}

// DeleteBid removes a procurement notice.
func (c *Client) DeleteBid(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/bids/"+id)
}

// Publication is an official publication linking to an external PDF.
type Publication struct {
	ID    string    `json:"_id"`
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
	File  string    `json:"file"`
}

type publicationsPayload struct {
	Items []Publication `json:"publication"`
}

// PublicationsKey is the collection key for the publications list.
const PublicationsKey = "/publications"

// DecodePublications decodes a publications collection payload.
func DecodePublications(payload json.RawMessage) ([]Publication, error) {
	var body publicationsPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("panel: decoding publications payload: %w", err)
	}

	return body.Items, nil
}

// PublicationCreate is the JSON payload for an official publication.
type PublicationCreate struct {
	Title string    `json:"title" validate:"required"`
	Date  time.Time `json:"date" validate:"required"`
	File  string    `json:"file" validate:"required,url"`
}

// CreatePublication registers an official publication.
func (c *Client) CreatePublication(ctx context.Context, payload PublicationCreate) (api.MutationResult, error) {
	if err := c.checkPayload("publication create", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PostJSON(ctx, "/publications", payload)
}

// DeletePublication removes an official publication.
func (c *Client) DeletePublication(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/publications/"+id)
}

// Informative is a standalone informational image.
type Informative struct {
	ID    string `json:"_id"`
	Image string `json:"image"`
}

type informativesPayload struct {
	Items []Informative `json:"informative"`
}

// InformativesKey is the collection key for the informatives list.
const InformativesKey = "/informatives"

// DecodeInformatives decodes an informatives collection payload.
func DecodeInformatives(payload json.RawMessage) ([]Informative, error) {
	var body informativesPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("panel: decoding informatives payload: %w", err)
	}

	return body.Items, nil
}

// CreateInformative uploads an informational image.
func (c *Client) CreateInformative(ctx context.Context, image FileUpload) (api.MutationResult, error) {
	form := api.NewForm().AddFile("image", image.Name, image.Reader)

	return c.api.PostMultipart(ctx, "/informatives", form)
}

// DeleteInformative removes an informational image.
func (c *Client) DeleteInformative(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/informatives/"+id)
}

// Ordinance is a municipal ordinance attached to a secretariat. File is
// the stored PDF name; the upload travels in a multipart field named
// "pdf" but comes back as "file".
type Ordinance struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SecretaryID string `json:"secretary_id"`
	File        string `json:"file"`
}

// OrdinancesPage is one page of the paginated ordinances collection,
// optionally filtered to a single secretariat.
type OrdinancesPage struct {
	Items []Ordinance `json:"ordinance"`
	Count int         `json:"count"`
}

// OrdinancesKey is the collection key for one page of ordinances. An empty
// secretaryID selects every secretariat ("all" on the wire).
func OrdinancesKey(secretaryID string, page int) string {
	if secretaryID == "" {
		secretaryID = "all"
	}

	return fmt.Sprintf("/ordinances/%s/%d", secretaryID, page)
}

// DecodeOrdinancesPage decodes an ordinances collection payload.
func DecodeOrdinancesPage(payload json.RawMessage) (OrdinancesPage, error) {
	var page OrdinancesPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return OrdinancesPage{}, fmt.Errorf("panel: decoding ordinances payload: %w", err)
	}

	return page, nil
}

// OrdinanceCreate is the multipart payload for a municipal ordinance.
type OrdinanceCreate struct {
	Title       string     `validate:"required"`
	Description string     `validate:"required"`
	SecretaryID string     `validate:"required"`
	PDF         FileUpload `validate:"required"`
}

// CreateOrdinance publishes an ordinance under a secretariat.
func (c *Client) CreateOrdinance(ctx context.Context, payload OrdinanceCreate) (api.MutationResult, error) {
	if err := c.checkPayload("ordinance create", payload); err != nil {
		return api.MutationResult{}, err
	}

	form := api.NewForm().
		AddField("title", payload.Title).
		AddField("description", payload.Description).
		AddField("secretary_id", payload.SecretaryID).
		AddFile("pdf", payload.PDF.Name, payload.PDF.Reader)

	return c.api.PostMultipart(ctx, "/ordinances", form)
}

// DeleteOrdinance removes an ordinance.
func (c *Client) DeleteOrdinance(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/ordinances/"+id)
}

// DecreeCreate is the multipart payload for a municipal decree.
type DecreeCreate struct {
	Title       string     `validate:"required"`
	Description string     `validate:"required"`
	PDF         FileUpload `validate:"required"`
}

// CreateDecree publishes a decree.
func (c *Client) CreateDecree(ctx context.Context, payload DecreeCreate) (api.MutationResult, error) {
	if err := c.checkPayload("decree create", payload); err != nil {
		return api.MutationResult{}, err
	}

	form := api.NewForm().
		AddField("title", payload.Title).
		AddField("description", payload.Description).
		AddFile("pdf", payload.PDF.Name, payload.PDF.Reader)

	return c.api.PostMultipart(ctx, "/decrees", form)
}
