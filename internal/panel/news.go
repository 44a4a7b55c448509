package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

// GalleryImage is one photo in a news article's gallery.
type GalleryImage struct {
	ID    string `json:"_id"`
	Image string `json:"image"`
}

// News is a published article. Image names resolve against
// {baseURL}/img/{name}; Text is the stored rich-text HTML.
type News struct {
	ID        string         `json:"_id"`
	Title     string         `json:"title"`
	Resume    string         `json:"resume"`
	Tag       string         `json:"tag"`
	Author    string         `json:"author"`
	Date      time.Time      `json:"date"`
	Image     string         `json:"image"`
	ImageCopy string         `json:"imageCopy"`
	Text      string         `json:"text"`
	Month     string         `json:"month"`
	Year      int            `json:"year"`
	Gallery   []GalleryImage `json:"galery"`
}

// NewsPage is one page of the paginated news collection.
type NewsPage struct {
	Items []News `json:"noticias"`
	Count int    `json:"count"`
}

// NewsKey is the collection key for one page of news.
func NewsKey(page int) string {
	return fmt.Sprintf("/news/%d", page)
}

// DecodeNewsPage decodes a news collection payload.
func DecodeNewsPage(payload json.RawMessage) (NewsPage, error) {
	var page NewsPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return NewsPage{}, fmt.Errorf("panel: decoding news payload: %w", err)
	}

	return page, nil
}

// ListNews fetches one page of news directly, outside the cache.
func (c *Client) ListNews(ctx context.Context, page int) (NewsPage, error) {
	var result NewsPage
	if err := c.api.GetJSON(ctx, NewsKey(page), &result); err != nil {
		return NewsPage{}, err
	}

	return result, nil
}

// NewsCreate is the multipart payload for publishing an article. The
// thumbnail image travels in the same request; gallery photos are attached
// afterwards with AddNewsGallery using the returned id.
type NewsCreate struct {
	Title     string     `validate:"required"`
	Resume    string     `validate:"required"`
	Author    string     `validate:"required"`
	Date      time.Time  `validate:"required"`
	ImageCopy string     `validate:"required"`
	Text      string     `validate:"required"`
	Tag       string     `validate:"required"`
	Image     FileUpload `validate:"required"`
}

// CreateNews publishes a new article and returns the server-assigned id.
func (c *Client) CreateNews(ctx context.Context, payload NewsCreate) (api.MutationResult, error) {
	if err := c.checkPayload("news create", payload); err != nil {
		return api.MutationResult{}, err
	}

	form := api.NewForm().
		AddField("title", payload.Title).
		AddField("resume", payload.Resume).
		AddField("author", payload.Author).
		AddField("date", payload.Date.Format(time.RFC3339)).
		AddField("imageCopy", payload.ImageCopy).
		AddField("text", payload.Text).
		AddField("tag", payload.Tag).
		AddField("month", MonthPTBR(payload.Date)).
		AddField("year", fmt.Sprint(payload.Date.Year())).
		AddFile("image", payload.Image.Name, payload.Image.Reader)

	return c.api.PostMultipart(ctx, "/news", form)
}

// NewsUpdate is the JSON payload for editing an article's text fields.
// The thumbnail and gallery have their own endpoints.
type NewsUpdate struct {
	Title     string    `json:"title" validate:"required"`
	Resume    string    `json:"resume" validate:"required"`
	Author    string    `json:"author" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	ImageCopy string    `json:"imageCopy"`
	Text      string    `json:"text" validate:"required"`
	Tag       string    `json:"tag"`
	Month     string    `json:"month"`
	Year      int       `json:"year"`
}

// UpdateNews edits an article's text fields. Month and Year are derived from
// Date when unset, matching what the forms always sent.
func (c *Client) UpdateNews(ctx context.Context, id string, payload NewsUpdate) (api.MutationResult, error) {
	if payload.Month == "" {
		payload.Month = MonthPTBR(payload.Date)
	}

	if payload.Year == 0 {
		payload.Year = payload.Date.Year()
	}

	if err := c.checkPayload("news update", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PutJSON(ctx, "/news/"+id, payload)
}

// DeleteNews removes an article.
func (c *Client) DeleteNews(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/news/"+id)
}

// UpdateNewsImage replaces an article's thumbnail and its copy line.
func (c *Client) UpdateNewsImage(ctx context.Context, id string, image FileUpload, imageCopy string) (api.MutationResult, error) {
	form := api.NewForm().
		AddField("imageCopy", imageCopy).
		AddFile("image", image.Name, image.Reader)

	return c.api.PutMultipart(ctx, "/updateNewsImage/"+id, form)
}

// maxGalleryImages is the server-side limit per article gallery.
const maxGalleryImages = 12

// AddNewsGallery attaches gallery photos to a just-created article.
func (c *Client) AddNewsGallery(ctx context.Context, id string, images []FileUpload) (api.MutationResult, error) {
	form, err := galleryForm(images)
	if err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PutMultipart(ctx, "/newsGalery/"+id, form)
}

// UpdateNewsGallery replaces an existing article's gallery.
func (c *Client) UpdateNewsGallery(ctx context.Context, id string, images []FileUpload) (api.MutationResult, error) {
	form, err := galleryForm(images)
	if err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PutMultipart(ctx, "/updateNewsGalery/"+id, form)
}

func galleryForm(images []FileUpload) (*api.Form, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("panel: gallery needs at least one image")
	}

	if len(images) > maxGalleryImages {
		return nil, fmt.Errorf("panel: gallery limited to %d images, got %d", maxGalleryImages, len(images))
	}

	form := api.NewForm()
	for _, img := range images {
		form.AddFile("galery", img.Name, img.Reader)
	}

	return form, nil
}
