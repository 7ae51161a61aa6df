package engine

// LLM prompt templates. Data only, no logic.

// summarizeResultsPrompt condenses a list of search results.
// Args: current date, query, numbered results.
const summarizeResultsPrompt = `You are a research assistant. Summarize the YouTube search results below for the query.

Current date: %s

Respond with valid JSON only (no markdown, no ` + "`" + `json` + "`" + ` block):
{
  "answer": "2-3 sentence plain-text overview of what these results cover. No markdown.",
  "facts": [
    {"point": "What a specific result offers, as a complete sentence.", "sources": [1]}
  ]
}

Rules:
- facts: 3-6 points, each citing 1-based result indices
- Judge only from titles, channels, durations and descriptions given
- Answer in the SAME LANGUAGE as the query
- Do NOT invent information not present in the results

Query: %s

Results:
%s`

// summarizeVideoPrompt condenses a single video's metadata.
// Args: current date, title, channel, keywords, description.
const summarizeVideoPrompt = `You are a research assistant. Describe what the YouTube video below is about.

Current date: %s

Respond with valid JSON only (no markdown, no ` + "`" + `json` + "`" + ` block):
{
  "answer": "2-3 sentence plain-text summary. No markdown.",
  "facts": [
    {"point": "A specific topic, claim or detail from the description.", "sources": [1]}
  ]
}

Title: %s
Channel: %s
Keywords: %s

Description:
%s`
