package panel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

// Banner is a homepage carousel image with an optional click-through URL.
// The API stores "none" when no destination was set.
type Banner struct {
	ID    string `json:"_id"`
	Image string `json:"banner"`
	URL   string `json:"url"`
}

// BannersKey is the collection key for the homepage banners list.
// The endpoint returns a bare array.
const BannersKey = "/banner"

// DecodeBanners decodes a banners collection payload.
func DecodeBanners(payload json.RawMessage) ([]Banner, error) {
	var items []Banner
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("panel: decoding banners payload: %w", err)
	}

	return items, nil
}

// CreateBanner uploads a carousel image. An empty url is stored as "none",
// which the public site renders as a non-clickable banner.
func (c *Client) CreateBanner(ctx context.Context, image FileUpload, url string) (api.MutationResult, error) {
	if url == "" {
		url = "none"
	}

	form := api.NewForm().
		AddField("url", url).
		AddFile("banner", image.Name, image.Reader)

	return c.api.PostMultipart(ctx, "/banner", form)
}

// DeleteBanner removes a carousel image.
func (c *Client) DeleteBanner(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/banner/"+id)
}
