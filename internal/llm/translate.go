package llm

import (
	"context"
	"fmt"
	"strings"
)

// Input bodies are capped before submission to keep token cost bounded.
const translateBodyCap = 8000

const translatePrompt = `あなたは新聞記事の翻訳者です。以下の英語のニュース記事を、読みやすく自然な日本語に翻訳してください。

【ルール】
- 要約や短縮はせず、元の内容をそのまま漏れなく翻訳してください
- 文字数を減らさず、報道内容を充実に伝えてください
- 日本語として自然で読みやすい文体にしてください
- 段落分けや改行は元記事の構造に合わせてください

【元記事のタイトル】
%s

【元記事の本文】
%s

翻訳結果のみを出力してください。他の説明は不要です。`

// Translate produces a full Japanese translation of an article body.
// It returns "" on missing credentials, empty input, or any call
// failure; callers treat "" as "no translation available".
func (c *Client) Translate(ctx context.Context, title, body string) string {
	body = strings.TrimSpace(body)
	if !c.Available() || body == "" {
		return ""
	}
	if r := []rune(body); len(r) > translateBodyCap {
		body = string(r[:translateBodyCap])
	}

	text, err := c.generateContent(ctx, fmt.Sprintf(translatePrompt, title, body))
	if err != nil {
		c.logger.Warn("translation call failed", "err", err)
		return ""
	}
	return strings.TrimSpace(text)
}
