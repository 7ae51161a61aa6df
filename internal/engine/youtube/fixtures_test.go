package youtube

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

const searchInitialData = `{
  "contents": {
    "twoColumnSearchResultsRenderer": {
      "primaryContents": {
        "sectionListRenderer": {
          "contents": [
            {
              "itemSectionRenderer": {
                "contents": [
                  {
                    "videoRenderer": {
                      "videoId": "test_video_id",
                      "title": {"runs": [{"text": "Test Video Title"}]},
                      "thumbnail": {"thumbnails": [{"url": "test_thumbnail.jpg"}]},
                      "ownerText": {"runs": [{"text": "Test Channel"}]},
                      "lengthText": {"simpleText": "5:30"},
                      "shortBylineText": {"runs": [{"text": "Test Channel"}]},
                      "badges": []
                    }
                  }
                ]
              }
            },
            {
              "continuationItemRenderer": {
                "continuationEndpoint": {
                  "continuationCommand": {"token": "test_continuation_token"}
                }
              }
            }
          ]
        }
      }
    }
  }
}`

const playerResponse = `{
  "videoDetails": {
    "videoId": "test_video_id",
    "title": "Test Video Title",
    "author": "Test Channel",
    "channelId": "test_channel_id",
    "shortDescription": "Test video description",
    "keywords": ["test", "video", "python"],
    "thumbnail": {"thumbnails": [{"url": "test_thumbnail.jpg"}]}
  }
}`

const innertubeContext = `{"client":{"clientName":"WEB","clientVersion":"2.20250222.10.00","hl":"en"}}`

// page wraps blobs into an HTML document the way YouTube embeds them.
func page(initialData, player string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><title>YouTube</title></head><body>\n")
	if initialData != "" {
		fmt.Fprintf(&sb, "<script nonce=\"x\">var ytInitialData = %s;</script>\n", initialData)
	}
	if player != "" {
		fmt.Fprintf(&sb, "<script>var ytInitialPlayerResponse = %s;var meta = {};</script>\n", player)
	}
	fmt.Fprintf(&sb, "<script>ytcfg.set({\"INNERTUBE_API_KEY\":\"test_api_key\",\"INNERTUBE_CONTEXT\":%s});</script>\n", innertubeContext)
	sb.WriteString("</body></html>")
	return sb.String()
}

func videoNode(id, title string) string {
	return fmt.Sprintf(`{"videoRenderer":{"videoId":%q,"title":{"runs":[{"text":%q}]},"ownerText":{"runs":[{"text":"Chan"}]},"lengthText":{"simpleText":"1:00"}}}`, id, title)
}

// videoList builds a search-shaped tree with n videos and an optional
// trailing continuation.
func videoList(n int, token string) gjson.Result {
	return gjson.Parse(videoListJSON(n, token))
}

func videoListJSON(n int, token string) string {
	parts := make([]string, 0, n+1)
	for i := range n {
		parts = append(parts, videoNode(fmt.Sprintf("vid%d", i), fmt.Sprintf("Video %d", i)))
	}
	if token != "" {
		parts = append(parts, fmt.Sprintf(`{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":%q}}}}`, token))
	}
	return `{"contents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[` +
		strings.Join(parts, ",") + `]}}]}}}`
}
