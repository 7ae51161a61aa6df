package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockHTML = `
<!DOCTYPE html>
<html>
<head><title>YouTube</title></head>
<body>
    <script>
        var ytInitialData = {"test": "data"};
        var ytInitialPlayerResponse = {"videoDetails": {"videoId": "test"}};
    </script>
    <script>
        window.ytplayer.config = {
            "INNERTUBE_CONTEXT": {"client": {"name": "WEB"}},
            "innertubeApiKey": "test_api_key"
        };
    </script>
</body>
</html>
`

func TestLocateAllBlobs(t *testing.T) {
	emb := Locate(mockHTML)

	data, ok := emb.Blob(BlobInitialData)
	require.True(t, ok)
	assert.Equal(t, "data", data.Get("test").String())

	player, ok := emb.Blob(BlobPlayerResponse)
	require.True(t, ok)
	assert.Equal(t, "test", player.Get("videoDetails.videoId").String())

	ctx, ok := emb.Blob(BlobInnertubeContext)
	require.True(t, ok)
	assert.Equal(t, "WEB", ctx.Get("client.name").String())

	assert.Equal(t, "test_api_key", emb.APIKey())
	assert.Len(t, emb.Blobs(), 3)
}

func TestLocateBracesInsideStrings(t *testing.T) {
	doc := `<script>var ytInitialData = {"a":"}{\"]","b":[1,{"c":"\\"}],"d":{"e":"x"}};var other = {"z":1};</script>`
	data, ok := Locate(doc).Blob(BlobInitialData)
	require.True(t, ok)
	assert.Equal(t, `}{"]`, data.Get("a").String())
	assert.Equal(t, `\`, data.Get("b.1.c").String())
	assert.Equal(t, "x", data.Get("d.e").String())
	assert.False(t, data.Get("z").Exists())
}

func TestLocateWindowAssignment(t *testing.T) {
	doc := `<script>window["ytInitialData"] = {"k":[1,2,3]};</script>`
	data, ok := Locate(doc, BlobInitialData).Blob(BlobInitialData)
	require.True(t, ok)
	assert.Len(t, data.Get("k").Array(), 3)
}

func TestLocateSkipsNonAssignmentMentions(t *testing.T) {
	doc := `<script>if (window.ytInitialData) {}; var ytInitialData = {"ok":true};</script>`
	data, ok := Locate(doc).Blob(BlobInitialData)
	require.True(t, ok)
	assert.True(t, data.Get("ok").Bool())
}

func TestLocateMissingVersusEmpty(t *testing.T) {
	emb := Locate(`<script>var ytInitialData = {};</script>`)

	data, ok := emb.Blob(BlobInitialData)
	require.True(t, ok, "empty object is present")
	assert.True(t, data.IsObject())

	_, ok = emb.Blob(BlobPlayerResponse)
	assert.False(t, ok, "absent blob is reported missing")
	assert.Empty(t, emb.APIKey())

	_, err := emb.Require("video details", BlobPlayerResponse)
	require.Error(t, err)
	assert.True(t, IsDataExtraction(err))
	assert.ErrorIs(t, err, ErrTubeSearch)
}

func TestLocateWithoutScriptTags(t *testing.T) {
	emb := Locate(`ytInitialData = {"plain": "text"}`)
	data, ok := emb.Blob(BlobInitialData)
	require.True(t, ok)
	assert.Equal(t, "text", data.Get("plain").String())
}

func TestLocateUnbalancedIsAbsent(t *testing.T) {
	_, ok := Locate(`<script>var ytInitialData = {"a": {"b": 1};</script>`).Blob(BlobInitialData)
	assert.False(t, ok)
}

func TestBalancedJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1};rest`, `{"a":1}`, true},
		{`[1,[2],{"x":"]"}] tail`, `[1,[2],{"x":"]"}]`, true},
		{`{"s":"\"}"}x`, `{"s":"\"}"}`, true},
		{`{"open":`, "", false},
	}
	for _, tt := range tests {
		got, ok := balancedJSON(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
