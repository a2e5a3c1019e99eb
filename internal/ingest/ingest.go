package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nxadm/tail"

	"adminui/internal/model"
	"adminui/internal/parse"
	"adminui/internal/util/logx"
)

type SourceKind string

const (
	SourceURL   SourceKind = "url"
	SourceFile  SourceKind = "file"
	SourceStdin SourceKind = "stdin"
	SourceDemo  SourceKind = "demo"
)

// maxBody caps the size of a members document read from any source.
const maxBody = 32 << 20

type Options struct {
	Source   SourceKind
	URL      string
	Path     string
	Timeout  time.Duration
	Client   *http.Client // nil uses http.DefaultClient
	DemoSize int
	Stdin    io.Reader // nil uses os.Stdin
}

type Result struct {
	Members []model.Member
	Source  string
	Took    time.Duration
}

// Fetch loads the member list once from the configured source. There is no
// retry; the caller decides how to surface the error.
func Fetch(ctx context.Context, opt Options) (Result, error) {
	start := time.Now()
	if opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.Timeout)
		defer cancel()
	}
	var (
		ms  []model.Member
		src string
		err error
	)
	switch opt.Source {
	case SourceURL:
		src = opt.URL
		ms, err = fetchURL(ctx, opt.Client, opt.URL)
	case SourceFile:
		src = opt.Path
		if isNDJSON(opt.Path) {
			ms, err = readFromTail(ctx, opt.Path)
		} else {
			ms, err = readFile(opt.Path)
		}
	case SourceStdin:
		src = "stdin"
		r := opt.Stdin
		if r == nil {
			r = os.Stdin
		}
		ms, err = readFromReader(r)
	case SourceDemo:
		src = "demo"
		n := opt.DemoSize
		if n <= 0 {
			n = 46
		}
		ms = DemoMembers(n, 1)
	default:
		err = errors.New("unknown source kind")
	}
	if err != nil {
		logx.Errorf("ingest: %s: %v", opt.Source, err)
		return Result{Source: src}, err
	}
	res := Result{Members: ms, Source: src, Took: time.Since(start)}
	logx.Infof("ingest: loaded %d members from %s in %s", len(ms), src, res.Took.Round(time.Millisecond))
	return res, nil
}

func fetchURL(ctx context.Context, client *http.Client, url string) ([]model.Member, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("empty url")
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return readFromReader(resp.Body)
}

func readFromReader(r io.Reader) ([]model.Member, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBody))
	if err != nil {
		return nil, err
	}
	return parse.Members(data)
}

func readFile(path string) ([]model.Member, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readFromReader(f)
}

// readFromTail reads an NDJSON file line by line without following it.
func readFromTail(ctx context.Context, path string) ([]model.Member, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    false,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, err
	}
	defer t.Cleanup()
	var out []model.Member
	n := 0
	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return nil, ctx.Err()
		case l, ok := <-t.Lines:
			if !ok {
				return out, nil
			}
			n++
			if l.Err != nil {
				return nil, l.Err
			}
			m, ok, err := parse.Line(l.Text)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, n, err)
			}
			if ok {
				out = append(out, m)
			}
		}
	}
}

func isNDJSON(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ndjson", ".jsonl":
		return true
	}
	return false
}
