package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"adminui/internal/model"
)

func TestBuildSummaryPrompt(t *testing.T) {
	ms := []model.Member{
		{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
		{ID: "2", Name: "Arvind Kumar", Email: "arvind@mailinator.com", Role: "admin"},
		{ID: "3", Name: "Nobody", Role: ""},
	}
	p := buildSummaryPrompt(ms)
	if strings.Contains(p, "mailinator") {
		t.Fatal("emails must not be sent")
	}
	for _, want := range []string{"Total members: 3", "- admin: 1", "- (none): 1", "Aaron Miles | member"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt misses %q:\n%s", want, p)
		}
	}
}

func TestSummarizeDisabled(t *testing.T) {
	var c *OpenAIClient
	if _, err := c.Summarize(context.Background(), nil); err == nil {
		t.Fatal("nil client should be disabled")
	}
	c = NewOpenAIClient("", "", "m", time.Second)
	if _, err := c.Summarize(context.Background(), []model.Member{{ID: "1"}}); err == nil {
		t.Fatal("missing key should be disabled")
	}
}
