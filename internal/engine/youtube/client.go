// Package youtube extracts search results, video details and playlists from
// the data blobs YouTube embeds in its web pages and Innertube responses.
//
// Decoding is pure: every function here works on the bytes it is given and
// keeps no state between calls. Network I/O is delegated to a Fetcher.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Client is the public entry point: search, continue, video details and
// playlists, each a single fetch followed by a single decode.
type Client struct {
	fetch Fetcher
	pager *Paginator
}

// NewClient returns a Client fetching through f. defaultCtx is the Innertube
// client context sent with continuations when a page embeds none.
func NewClient(f Fetcher, defaultCtx json.RawMessage) *Client {
	return &Client{fetch: f, pager: NewPaginator(f, defaultCtx)}
}

// Search returns the first page of results for query. limit <= 0 keeps every
// decoded item.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions, limit int) (ResultPage, error) {
	page, err := c.pager.FirstPage(ctx, Target{Query: query, Options: opts}, limit)
	if err != nil {
		return ResultPage{}, err
	}
	slog.Debug("youtube: search page",
		slog.String("query", query),
		slog.Int("items", len(page.Items)),
		slog.Bool("has_more", page.NextPage.HasMore()))
	return page, nil
}

// NextPage continues a search or playlist from np.
func (c *Client) NextPage(ctx context.Context, np NextPage, limit int) (ResultPage, error) {
	return c.pager.NextPage(ctx, np, limit)
}

// VideoDetails fetches the watch page of id.
func (c *Client) VideoDetails(ctx context.Context, id string) (VideoDetails, error) {
	const op = "video details"
	id = strings.TrimSpace(id)
	if id == "" {
		return VideoDetails{}, fmt.Errorf("%w: %s: video id is required", ErrTubeSearch, op)
	}
	raw, err := c.fetch.Fetch(ctx, Request{Kind: FetchVideo, Target: id})
	if err != nil {
		return VideoDetails{}, err
	}
	emb := Locate(string(raw), BlobPlayerResponse, BlobInitialData)
	player, err := emb.Require(op, BlobPlayerResponse)
	if err != nil {
		return VideoDetails{}, err
	}
	initial, _ := emb.Blob(BlobInitialData)
	details, err := DecodeVideoDetails(player, initial)
	if err != nil {
		return VideoDetails{}, err
	}
	slog.Debug("youtube: video details",
		slog.String("id", details.ID),
		slog.Int("suggestions", len(details.Suggestion)))
	return details, nil
}

// PlaylistData fetches the playlist page of id and decodes up to limit
// videos. Further videos are reachable through NextPage.
func (c *Client) PlaylistData(ctx context.Context, id string, limit int) (PlaylistData, error) {
	const op = "playlist"
	id = strings.TrimSpace(id)
	if id == "" {
		return PlaylistData{}, fmt.Errorf("%w: %s: playlist id is required", ErrTubeSearch, op)
	}
	raw, err := c.fetch.Fetch(ctx, Request{Kind: FetchPlaylist, Target: id})
	if err != nil {
		return PlaylistData{}, err
	}
	emb := Locate(string(raw), BlobInitialData, BlobInnertubeContext)
	initial, err := emb.Require(op, BlobInitialData)
	if err != nil {
		return PlaylistData{}, err
	}
	data, err := DecodePlaylist(initial, limit, c.pager.clientContext(emb))
	if err != nil {
		return PlaylistData{}, err
	}
	data.NextPage = route(data.NextPage, FetchPlaylist, videoKinds, emb.APIKey())
	slog.Debug("youtube: playlist",
		slog.String("id", id),
		slog.Int("items", len(data.Items)),
		slog.Bool("has_more", data.NextPage.HasMore()))
	return data, nil
}
