package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

// BatchItem is one raw article submitted for curation, tagged with its
// stable content identifier. The model echoes the key back, so
// decisions are matched by key rather than by position in the batch.
type BatchItem struct {
	Key     string
	Article models.RawArticle
}

// Decision is the per-article curation verdict.
type Decision struct {
	Key     string
	IsHappy bool
	Summary string
	Genre   models.NewsGenre
}

type curationRow struct {
	Key     string `json:"key"`
	IsHappy bool   `json:"isHappy"`
	Summary string `json:"summary"`
	Genre   string `json:"genre"`
}

const curationPreamble = `You are a curator for "World Happy News" - a site that only shows heartwarming, funny, or inspiring news from local/regional stories (not national politics or economy).

Rules:
- REJECT articles that are mainly about: politics, elections, government, economy, stock market, business/finance, war, conflict, crime, scandals. Prefer local news, community stories, small businesses, regional newspapers, human interest.
- For each item, decide: Is it "happy" (heartwarming, funny, inspiring, positive) AND not politics/economy? YES or NO.
- If YES: Write a Japanese summary in about 150 characters, emotional and warm. Choose ONE category: 動物, 親切, ユーモア, 文化, コミュニティ, 勇気, 教育, 人情
- If NO (including politics/economy/national conflict): set isHappy to false.

Format your response as a JSON array. Each item: {"key": "<key from the input>", "isHappy": true/false, "summary": "日本語要約", "genre": "カテゴリ"}
If isHappy is false, summary can be empty and genre can be "親切".`

// Curate classifies and summarizes a batch of articles in a single
// model call. When the model is unavailable or the call fails, every
// article is accepted with a pass-through summary and the default
// genre.
func (c *Client) Curate(ctx context.Context, batch []BatchItem) []Decision {
	if !c.Available() || len(batch) == 0 {
		return failOpenDecisions(batch)
	}

	prompt := buildCurationPrompt(batch)
	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		c.logger.Warn("curation call failed, accepting batch as-is", "err", err)
		return failOpenDecisions(batch)
	}

	var rows []curationRow
	if err := json.Unmarshal([]byte(stripMarkdown(text)), &rows); err != nil {
		c.logger.Warn("curation response unparseable, accepting batch as-is", "err", err)
		return failOpenDecisions(batch)
	}

	byKey := make(map[string]models.RawArticle, len(batch))
	for _, item := range batch {
		byKey[item.Key] = item.Article
	}

	out := make([]Decision, 0, len(rows))
	for _, row := range rows {
		article, ok := byKey[row.Key]
		if !ok {
			// key the model invented; drop it
			continue
		}
		summary := row.Summary
		if summary == "" {
			summary = passThroughSummary(article)
		}
		genre := models.NewsGenre(row.Genre)
		if !models.ValidGenre(genre) {
			genre = models.GenreKindness
		}
		out = append(out, Decision{
			Key:     row.Key,
			IsHappy: row.IsHappy,
			Summary: summary,
			Genre:   genre,
		})
	}
	return out
}

func buildCurationPrompt(batch []BatchItem) string {
	var b strings.Builder
	b.WriteString(curationPreamble)
	b.WriteString("\n\nNews items (key, title, description):\n")
	for _, item := range batch {
		content := item.Article.Content
		if r := []rune(content); len(r) > 200 {
			content = string(r[:200])
		}
		fmt.Fprintf(&b, "[%s] Title: %s\nDescription: %s\nContent: %s\n\n",
			item.Key, item.Article.Title, orNone(item.Article.Description), content)
	}
	b.WriteString("Respond ONLY with the JSON array, no other text.")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func passThroughSummary(a models.RawArticle) string {
	if a.Description != "" {
		return a.Description
	}
	return a.Title
}

func failOpenDecisions(batch []BatchItem) []Decision {
	out := make([]Decision, 0, len(batch))
	for _, item := range batch {
		out = append(out, Decision{
			Key:     item.Key,
			IsHappy: true,
			Summary: passThroughSummary(item.Article),
			Genre:   models.GenreKindness,
		})
	}
	return out
}
