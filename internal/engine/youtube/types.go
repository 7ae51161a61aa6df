package youtube

import "encoding/json"

// ItemType tags the variant of a SearchItem.
type ItemType string

const (
	TypeVideo    ItemType = "video"
	TypeChannel  ItemType = "channel"
	TypePlaylist ItemType = "playlist"
	TypeMovie    ItemType = "movie"
)

// Thumbnail is one size variant of an item's preview image.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// SearchItem is a decoded video, channel, playlist or movie.
// ChannelTitle, Length and IsLive are only filled for videos and movies;
// VideoCount only for playlists (0 when upstream does not expose it).
type SearchItem struct {
	ID           string      `json:"id"`
	Type         ItemType    `json:"type"`
	Title        string      `json:"title"`
	Thumbnail    []Thumbnail `json:"thumbnail,omitempty"`
	ChannelTitle string      `json:"channel_title,omitempty"`
	Length       string      `json:"length,omitempty"`
	IsLive       bool        `json:"is_live"`
	VideoCount   int         `json:"video_count,omitempty"`
}

// NextPage carries the continuation state between two fetches.
// An empty Token means pagination has terminated. Context is an opaque
// Innertube client context that must be echoed back unmodified.
type NextPage struct {
	Token   string          `json:"token,omitempty"`
	Context json.RawMessage `json:"context,omitempty"`
	APIKey  string          `json:"api_key,omitempty"`
	Source  FetchKind       `json:"source,omitempty"` // endpoint family the token belongs to
	Kinds   KindSet         `json:"kinds,omitempty"`  // renderer kinds decoded on the next page
}

// HasMore reports whether another page can be requested.
func (n NextPage) HasMore() bool { return n.Token != "" }

// ResultPage is one decoded page of results.
type ResultPage struct {
	Items    []SearchItem `json:"items"`
	NextPage NextPage     `json:"next_page"`
}

// VideoDetails is the watch-page view of a single video.
type VideoDetails struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Channel     string       `json:"channel"`
	ChannelID   string       `json:"channel_id"`
	Description string       `json:"description"`
	Keywords    []string     `json:"keywords"`
	Thumbnail   []Thumbnail  `json:"thumbnail,omitempty"`
	IsLive      bool         `json:"is_live"`
	Suggestion  []SearchItem `json:"suggestion"`
}

// PlaylistData holds a playlist's raw metadata and its decoded videos.
type PlaylistData struct {
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Items    []SearchItem    `json:"items"`
	NextPage NextPage        `json:"next_page"`
}

// SearchOptions narrows a search. Type restricts results to a single kind;
// WithPlaylist adds playlists to the default video and channel mix.
type SearchOptions struct {
	Type         ItemType `json:"type,omitempty"`
	WithPlaylist bool     `json:"with_playlist,omitempty"`
}
