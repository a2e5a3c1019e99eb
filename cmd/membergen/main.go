// Command membergen writes a deterministic set of demo members, or serves it
// at GET /members.json for local runs of adminui.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"adminui/internal/ingest"
	"adminui/internal/model"
	"adminui/internal/server"
)

const (
	formatJSON   = "json"
	formatNDJSON = "ndjson"
)

func main() {
	var (
		count   int
		seed    int64
		format  string
		outPath string
		addr    string
	)
	flag.IntVar(&count, "n", 46, "Number of members to generate")
	flag.Int64Var(&seed, "seed", 1, "Random seed; the same seed yields the same members")
	flag.StringVar(&format, "format", formatJSON, "Output format: json (array) or ndjson")
	flag.StringVar(&outPath, "out", "", "Output file path. Empty writes to stdout")
	flag.StringVar(&addr, "serve", "", "Serve the members over HTTP on this address (e.g. :8080) instead of writing them")
	flag.Parse()

	if count < 0 {
		fmt.Fprintln(os.Stderr, "-n must not be negative")
		os.Exit(2)
	}
	members := ingest.DemoMembers(count, seed)

	if addr != "" {
		if err := serve(addr, members); err != nil {
			fmt.Fprintln(os.Stderr, "serve:", err)
			os.Exit(1)
		}
		return
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "create:", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := write(bw, format, members); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	if outPath != "" {
		fmt.Fprintf(os.Stderr, "generated %d members -> %s (%s)\n", len(members), outPath, format)
	}
}

func write(w io.Writer, format string, members []model.Member) error {
	enc := json.NewEncoder(w)
	switch format {
	case formatJSON:
		enc.SetIndent("", "  ")
		return enc.Encode(members)
	case formatNDJSON:
		for _, m := range members {
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

func serve(addr string, members []model.Member) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("service", "membergen").Logger()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(members, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("members", len(members)).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
