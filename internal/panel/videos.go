package panel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsbbezerra/santa-maria-panel/internal/api"
)

// Video is an embedded video entry; URL is the embeddable player address.
type Video struct {
	ID  string `json:"_id"`
	URL string `json:"video"`
}

// VideosPage is one page of the paginated video collection.
type VideosPage struct {
	Items []Video `json:"video"`
	Count int     `json:"count"`
}

// VideosKey is the collection key for one page of videos.
func VideosKey(page int) string {
	return fmt.Sprintf("/videos/%d", page)
}

// DecodeVideosPage decodes a videos collection payload.
func DecodeVideosPage(payload json.RawMessage) (VideosPage, error) {
	var page VideosPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return VideosPage{}, fmt.Errorf("panel: decoding videos payload: %w", err)
	}

	return page, nil
}

// ListVideos fetches one page of videos directly, outside the cache.
func (c *Client) ListVideos(ctx context.Context, page int) (VideosPage, error) {
	var result VideosPage
	if err := c.api.GetJSON(ctx, VideosKey(page), &result); err != nil {
		return VideosPage{}, err
	}

	return result, nil
}

// videoCreate is the JSON body for adding a video.
type videoCreate struct {
	URL string `json:"video" validate:"required,url"`
}

// CreateVideo registers an embeddable video URL.
func (c *Client) CreateVideo(ctx context.Context, url string) (api.MutationResult, error) {
	payload := videoCreate{URL: url}
	if err := c.checkPayload("video create", payload); err != nil {
		return api.MutationResult{}, err
	}

	return c.api.PostJSON(ctx, "/videos", payload)
}

// DeleteVideo removes a video entry.
func (c *Client) DeleteVideo(ctx context.Context, id string) (api.MutationResult, error) {
	return c.api.Delete(ctx, "/videos/"+id)
}
