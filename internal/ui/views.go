package ui

import (
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

func overlay(base, overlay string) string {
	// Draw overlay on top of base by replacing lines where overlay has content.
	bLines := strings.Split(base, "\n")
	oLines := strings.Split(overlay, "\n")
	n := max(len(bLines), len(oLines))
	for len(bLines) < n {
		bLines = append(bLines, "")
	}
	for len(oLines) < n {
		oLines = append(oLines, "")
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		// whitespace-only overlay lines are transparent
		if strings.TrimSpace(oLines[i]) != "" {
			out[i] = oLines[i]
		} else {
			out[i] = bLines[i]
		}
	}
	return strings.Join(out, "\n")
}

// copyToClipboard uses the system clipboard and falls back to OSC52 when no
// clipboard utility is available (ssh sessions, bare terminals).
func copyToClipboard(s string) {
	s = stripANSI(s)
	if err := clipboard.WriteAll(s); err == nil {
		return
	}
	payload := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(s)))
	// Write to /dev/tty to avoid clobbering the app's stdout buffer
	if f, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
		defer f.Close()
		_, _ = f.WriteString(payload)
		return
	}
	fmt.Fprint(os.Stdout, payload)
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func categoricalStats(field string, counts map[string]int) string {
	if len(counts) == 0 {
		return "No data"
	}
	type kv struct {
		k string
		v int
	}
	arr := make([]kv, 0, len(counts))
	labelW := 0
	for k, v := range counts {
		arr = append(arr, kv{k, v})
		labelW = max(labelW, len([]rune(k)))
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].v != arr[j].v {
			return arr[i].v > arr[j].v
		}
		return arr[i].k < arr[j].k
	})
	maxc := arr[0].v
	var b strings.Builder
	fmt.Fprintf(&b, "Stats for %s (categorical):\n", field)
	for _, it := range arr {
		width := int(math.Round(20 * float64(it.v) / float64(maxc)))
		bar := colorBar(width, float64(it.v), float64(maxc))
		fmt.Fprintf(&b, "%-*s | %s (%d)\n", labelW, it.k, bar, it.v)
	}
	return b.String()
}

// colorBar returns a bar shading from yellow to red as val approaches max.
func colorBar(width int, val, max float64) string {
	if width <= 0 {
		return ""
	}
	r := 0.0
	if max > 0 {
		r = val / max
	}
	color := 226 - int(r*30)
	if color < 196 {
		color = 196
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, strings.Repeat("▇", width))
}
