package panel

import "context"

// One-shot list fetches for the unpaginated collections. The cache layer
// goes through Fetcher and the Decode functions instead; these exist for
// callers that want a single snapshot without a subscription.

// ListBids fetches all procurement notices.
func (c *Client) ListBids(ctx context.Context) ([]Bid, error) {
	var body bidsPayload
	if err := c.api.GetJSON(ctx, BidsKey, &body); err != nil {
		return nil, err
	}

	return body.Items, nil
}

// ListPublications fetches all official publications.
func (c *Client) ListPublications(ctx context.Context) ([]Publication, error) {
	var body publicationsPayload
	if err := c.api.GetJSON(ctx, PublicationsKey, &body); err != nil {
		return nil, err
	}

	return body.Items, nil
}

// ListInformatives fetches all informational images.
func (c *Client) ListInformatives(ctx context.Context) ([]Informative, error) {
	var body informativesPayload
	if err := c.api.GetJSON(ctx, InformativesKey, &body); err != nil {
		return nil, err
	}

	return body.Items, nil
}

// ListOrdinances fetches one page of ordinances, optionally filtered to a
// single secretariat (empty id means all).
func (c *Client) ListOrdinances(ctx context.Context, secretaryID string, page int) (OrdinancesPage, error) {
	var result OrdinancesPage
	if err := c.api.GetJSON(ctx, OrdinancesKey(secretaryID, page), &result); err != nil {
		return OrdinancesPage{}, err
	}

	return result, nil
}

// ListSecretaries fetches all secretariats.
func (c *Client) ListSecretaries(ctx context.Context) ([]Secretary, error) {
	var items []Secretary
	if err := c.api.GetJSON(ctx, SecretariesKey, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// ListDesks fetches the directing board.
func (c *Client) ListDesks(ctx context.Context) ([]Desk, error) {
	var body desksPayload
	if err := c.api.GetJSON(ctx, DesksKey, &body); err != nil {
		return nil, err
	}

	return body.Items, nil
}

// ListSchedule fetches one month of the mayor's agenda.
func (c *Client) ListSchedule(ctx context.Context, month string, year int) ([]ScheduleDay, error) {
	var items []ScheduleDay
	if err := c.api.GetJSON(ctx, ScheduleKey(month, year), &items); err != nil {
		return nil, err
	}

	return items, nil
}

// ListBanners fetches the homepage banners.
func (c *Client) ListBanners(ctx context.Context) ([]Banner, error) {
	var items []Banner
	if err := c.api.GetJSON(ctx, BannersKey, &items); err != nil {
		return nil, err
	}

	return items, nil
}
