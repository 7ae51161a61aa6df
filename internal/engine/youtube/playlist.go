package youtube

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

var playlistKinds = NewKindSet(KindVideo, KindMetadata)

// DecodePlaylist extracts the playlist's metadata renderer (kept raw), its
// videos in order (at most limit when limit > 0) and the continuation of the
// full page. A page with no metadata, videos or continuation is treated as
// an unavailable playlist.
func DecodePlaylist(initial gjson.Result, limit int, ctx json.RawMessage) (PlaylistData, error) {
	var data PlaylistData
	data.Items = []SearchItem{}
	for n := range Walk(initial, playlistKinds) {
		switch n.Kind {
		case KindMetadata:
			if data.Metadata == nil && n.Value.IsObject() {
				data.Metadata = json.RawMessage(n.Value.Raw)
			}
		default:
			if item, ok := DecodeItem(n); ok {
				data.Items = append(data.Items, item)
			}
		}
	}
	data.NextPage = ExtractContinuation(initial, ctx)
	if data.Metadata == nil && len(data.Items) == 0 && !data.NextPage.HasMore() {
		return PlaylistData{}, extractionErr("playlist", "no playlist content in page")
	}
	data.Items = truncate(data.Items, limit)
	return data, nil
}
