package youtube

import "context"

// FetchKind names the upstream resource a Request asks for.
type FetchKind string

const (
	FetchSearch       FetchKind = "search"
	FetchVideo        FetchKind = "video"
	FetchPlaylist     FetchKind = "playlist"
	FetchContinuation FetchKind = "continuation"
)

// Request describes one upstream fetch.
//
// Search, Video and Playlist requests return an HTML page; Continuation
// requests return the JSON response of the Innertube endpoint matching
// Page.Source, and must send Page.Context unmodified.
type Request struct {
	Kind   FetchKind
	Target string // query, video id or playlist id
	Params string // search filter parameter, may be empty
	Page   NextPage
}

// Fetcher performs the network I/O for the extraction engine. Errors are
// returned to callers unchanged.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, req Request) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, req Request) ([]byte, error) { return f(ctx, req) }
