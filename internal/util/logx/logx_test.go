package logx

import (
	"strings"
	"testing"
)

func reset() {
	mu.Lock()
	buf = buf[:0]
	mu.Unlock()
}

func TestLevelFiltering(t *testing.T) {
	reset()
	SetLevel(Warn)
	defer SetLevel(Info)
	Infof("quiet %d", 1)
	Warnf("loud %d", 2)
	lines := Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "loud 2") || !strings.Contains(lines[0], "WRN") {
		t.Fatalf("unexpected line: %q", lines[0])
	}
}

func TestRingDropsOldest(t *testing.T) {
	reset()
	SetLevel(Debug)
	defer SetLevel(Info)
	for i := 0; i < maxLines+10; i++ {
		Debugf("line %d", i)
	}
	lines := Lines()
	if len(lines) != maxLines {
		t.Fatalf("expected %d lines, got %d", maxLines, len(lines))
	}
	if !strings.HasSuffix(lines[0], "line 10") {
		t.Fatalf("oldest kept line: %q", lines[0])
	}
	if !strings.Contains(Dump(), "line 509") {
		t.Fatalf("dump misses newest line")
	}
}
