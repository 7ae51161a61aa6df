package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
)

// ErrLLMDisabled is returned when no LLM client is configured.
var ErrLLMDisabled = errors.New("llm: no client configured")

// currentDate returns today's date in ISO 8601 format (UTC).
func currentDate() string {
	return time.Now().UTC().Format("2006-01-02")
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
func CallLLM(ctx context.Context, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrLLMDisabled
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// BuildResultsText numbers items for an LLM prompt. Descriptions are not
// part of SearchItem, so each line carries what the listing shows.
func BuildResultsText(items []youtube.SearchItem) string {
	var sb strings.Builder
	for i, it := range items {
		fmt.Fprintf(&sb, "\n[%d] %s (%s)\n", i+1, it.Title, it.Type)
		if it.ChannelTitle != "" {
			fmt.Fprintf(&sb, "Channel: %s\n", it.ChannelTitle)
		}
		if it.Length != "" {
			fmt.Fprintf(&sb, "Length: %s\n", it.Length)
		}
		if it.IsLive {
			sb.WriteString("Live now\n")
		}
		if it.VideoCount > 0 {
			fmt.Fprintf(&sb, "Videos: %d\n", it.VideoCount)
		}
		fmt.Fprintf(&sb, "URL: %s\n", ItemURL(it))
	}
	return sb.String()
}

// SummarizeResults asks the LLM for an overview of a result page.
func SummarizeResults(ctx context.Context, query string, items []youtube.SearchItem) (*Summary, error) {
	if len(items) == 0 {
		return &Summary{Answer: "No results found."}, nil
	}
	prompt := fmt.Sprintf(summarizeResultsPrompt, currentDate(), query, BuildResultsText(items))
	return summarize(ctx, prompt)
}

// SummarizeVideo asks the LLM to describe a single video from its metadata.
func SummarizeVideo(ctx context.Context, d youtube.VideoDetails) (*Summary, error) {
	desc := TruncateRunes(d.Description, cfg.MaxDescriptionChars, "...")
	prompt := fmt.Sprintf(summarizeVideoPrompt, currentDate(), d.Title, d.Channel, strings.Join(d.Keywords, ", "), desc)
	return summarize(ctx, prompt)
}

func summarize(ctx context.Context, prompt string) (*Summary, error) {
	raw, err := CallLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var out Summary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		if answer := ExtractJSONAnswer(raw); answer != "" {
			return &Summary{Answer: answer}, nil
		}
		return &Summary{Answer: raw}, nil
	}
	return &out, nil
}

// ExtractJSONAnswer extracts the "answer" field from malformed JSON
// where the value may contain unescaped newlines or special characters.
func ExtractJSONAnswer(raw string) string {
	prefix := `"answer"`
	idx := strings.Index(raw, prefix)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(raw[idx+len(prefix):])
	if len(rest) == 0 || rest[0] != ':' {
		return ""
	}
	rest = strings.TrimSpace(rest[1:])
	if len(rest) == 0 || rest[0] != '"' {
		return ""
	}
	rest = rest[1:]

	var sb strings.Builder
	for i := 0; i < len(rest); i++ {
		if rest[i] == '\\' && i+1 < len(rest) {
			switch rest[i+1] {
			case '"':
				sb.WriteByte('"')
				i++
				continue
			case 'n':
				sb.WriteByte('\n')
				i++
				continue
			}
			sb.WriteByte(rest[i])
			continue
		}
		if rest[i] == '"' {
			return sb.String()
		}
		sb.WriteByte(rest[i])
	}
	return sb.String()
}
