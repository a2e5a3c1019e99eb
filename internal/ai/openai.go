package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	altai "github.com/sashabaranov/go-openai"

	"adminui/internal/model"
	"adminui/internal/util/logx"
)

// maxPromptMembers bounds how many names are sent with a summary request.
const maxPromptMembers = 200

type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	cache   *Cache
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

// WithCache enables the on-disk summary cache.
func (c *OpenAIClient) WithCache(cache *Cache) *OpenAIClient {
	c.cache = cache
	return c
}

// Summarize asks the model for a short overview of the given members (role
// mix, notable groups). Emails are never sent.
func (c *OpenAIClient) Summarize(ctx context.Context, members []model.Member) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", errors.New("openai disabled")
	}
	if len(members) == 0 {
		return "", errors.New("no members to summarize")
	}
	prompt := buildSummaryPrompt(members)
	if s, ok := c.cache.Get(c.model, prompt); ok {
		logx.Debugf("ai: summary served from cache")
		return s, nil
	}
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	cfg := altai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := altai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx2, altai.ChatCompletionRequest{
		Model: c.model,
		Messages: []altai.ChatCompletionMessage{
			{Role: altai.ChatMessageRoleSystem, Content: "You review user tables for administrators. Answer in at most 8 short plain-text lines."},
			{Role: altai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.cache.Put(c.model, prompt, out)
	return out, nil
}

func buildSummaryPrompt(members []model.Member) string {
	counts := model.RoleCounts(members)
	roles := make([]string, 0, len(counts))
	for r := range counts {
		roles = append(roles, r)
	}
	sort.Strings(roles)

	var b strings.Builder
	b.WriteString("Summarize this member list for an administrator: role distribution, anything unusual (duplicate names, empty roles).\n")
	fmt.Fprintf(&b, "Total members: %d\nRoles:\n", len(members))
	for _, r := range roles {
		fmt.Fprintf(&b, "- %s: %d\n", r, counts[r])
	}
	n := len(members)
	if n > maxPromptMembers {
		n = maxPromptMembers
	}
	b.WriteString("Members (name | role):\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s | %s\n", members[i].Name, members[i].Role)
	}
	return b.String()
}
