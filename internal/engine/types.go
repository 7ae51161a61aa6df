package engine

import (
	"github.com/anatolykoptev/go_tube/internal/engine/archive"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
)

// --- Tool inputs ---

type YouTubeSearchInput struct {
	Query        string `json:"query" jsonschema:"Search query"`
	Type         string `json:"type,omitempty" jsonschema:"Restrict results to one kind: video, channel, playlist, movie. Default: videos and channels"`
	WithPlaylist bool   `json:"with_playlist,omitempty" jsonschema:"Include playlists in the default mix (ignored when type is set)"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Max items on this page (default: 20)"`
	Summarize    bool   `json:"summarize,omitempty" jsonschema:"Add an LLM overview of the results"`
}

type NextPageInput struct {
	Cursor string `json:"cursor" jsonschema:"Cursor returned by youtube_search, youtube_playlist or a previous youtube_next_page"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max items on this page (default: 20)"`
}

type VideoDetailsInput struct {
	Video     string `json:"video" jsonschema:"Video ID or any youtube.com / youtu.be URL"`
	Summarize bool   `json:"summarize,omitempty" jsonschema:"Add an LLM summary of the description"`
}

type PlaylistInput struct {
	Playlist string `json:"playlist" jsonschema:"Playlist ID or a URL with a list= parameter"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max videos on the first page (default: 20)"`
}

type BatchSearchInput struct {
	Queries []string `json:"queries" jsonschema:"Search queries, run concurrently"`
	Type    string   `json:"type,omitempty" jsonschema:"Restrict results to one kind: video, channel, playlist, movie"`
	Limit   int      `json:"limit,omitempty" jsonschema:"Max items per query (default: 20)"`
}

type ArchiveListInput struct {
	Kind   string `json:"kind,omitempty" jsonschema:"Filter by tool kind: search, next_page, video, playlist"`
	Target string `json:"target,omitempty" jsonschema:"Filter by exact query, video id or playlist id"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max entries (default: 20)"`
}

// --- Output types (JSON responses) ---

// FactItem is a single fact with explicit 1-based source indices.
type FactItem struct {
	Point   string `json:"point"`
	Sources []int  `json:"sources"`
}

// Summary is the structured LLM answer attached to tool outputs.
type Summary struct {
	Answer string     `json:"answer"`
	Facts  []FactItem `json:"facts,omitempty"`
}

type YouTubeSearchOutput struct {
	Query   string               `json:"query"`
	Items   []youtube.SearchItem `json:"items"`
	Cursor  string               `json:"cursor,omitempty"` // empty when there are no more pages
	Summary *Summary             `json:"summary,omitempty"`
}

type NextPageOutput struct {
	Items  []youtube.SearchItem `json:"items"`
	Cursor string               `json:"cursor,omitempty"`
}

type VideoDetailsOutput struct {
	URL     string               `json:"url"`
	Video   youtube.VideoDetails `json:"video"`
	Summary *Summary             `json:"summary,omitempty"`
}

type PlaylistOutput struct {
	ID       string               `json:"id"`
	Title    string               `json:"title,omitempty"`
	Metadata map[string]any       `json:"metadata,omitempty"`
	Items    []youtube.SearchItem `json:"items"`
	Cursor   string               `json:"cursor,omitempty"`
}

type BatchSearchResult struct {
	Query  string               `json:"query"`
	Items  []youtube.SearchItem `json:"items"`
	Cursor string               `json:"cursor,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type BatchSearchOutput struct {
	Results []BatchSearchResult `json:"results"`
}

type ArchiveListOutput struct {
	Entries []archive.Entry `json:"entries"`
	Total   int             `json:"total"`
}
