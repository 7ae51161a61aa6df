package youtube

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestExtractContinuation(t *testing.T) {
	ctx := json.RawMessage(innertubeContext)
	np := ExtractContinuation(gjson.Parse(searchInitialData), ctx)
	assert.Equal(t, "test_continuation_token", np.Token)
	assert.Equal(t, innertubeContext, string(np.Context))
	assert.True(t, np.HasMore())
}

func TestExtractContinuationLastWins(t *testing.T) {
	tree := gjson.Parse(`{"a":[
		{"continuationItemRenderer":{"continuationEndpoint":{"continuationCommand":{"token":"first"}}}},
		{"nextContinuationData":{"continuation":"second"}},
		{"continuationItemRenderer":{"button":{"buttonRenderer":{"command":{"continuationCommand":{"token":"third"}}}}}}
	]}`)
	assert.Equal(t, "third", ExtractContinuation(tree, nil).Token)
}

func TestExtractContinuationIgnoresEmptyTokens(t *testing.T) {
	tree := gjson.Parse(`[
		{"nextContinuationData":{"continuation":"real"}},
		{"continuationItemRenderer":{"trigger":"CONTINUATION_TRIGGER_ON_ITEM_SHOWN"}}
	]`)
	assert.Equal(t, "real", ExtractContinuation(tree, nil).Token)
}

func TestExtractContinuationNone(t *testing.T) {
	np := ExtractContinuation(videoList(3, ""), json.RawMessage(innertubeContext))
	assert.Equal(t, NextPage{}, np)
	assert.False(t, np.HasMore())
}

func TestExtractContinuationContextVerbatim(t *testing.T) {
	// Whitespace and key order must survive untouched.
	raw := json.RawMessage(`{ "z": 1,  "a": {"hl" : "de"} }`)
	np := ExtractContinuation(videoList(1, "tok"), raw)
	assert.Equal(t, string(raw), string(np.Context))
}
