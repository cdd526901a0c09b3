// Command annoconv classifies a directory of conversation annotation
// files and optionally splits them into grounding and pure-text sets.
//
// Each input is a JSON record with an image reference and a
// conversation list; assistant turns may embed <p>label</p>[coords]
// annotations. Files that fail to parse are logged and skipped; the
// command fails only when nothing could be processed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vizlab/anno"
	"github.com/vizlab/anno/grounding"
)

func main() {
	var (
		in      = flag.String("in", ".", "input directory of conversation JSON files")
		out     = flag.String("out", "", "output directory for -split (defaults to the input directory)")
		split   = flag.Bool("split", false, "copy files into <out>/grounding and <out>/text by classification")
		jobs    = flag.Int("jobs", 4, "number of files processed concurrently")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	anno.SetLogger(logger)

	if err := run(context.Background(), *in, *out, *split, *jobs); err != nil {
		logger.Error("conversion failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, in, out string, split bool, jobs int) error {
	if out == "" {
		out = in
	}
	if split {
		for _, dir := range []string{filepath.Join(out, "grounding"), filepath.Join(out, "text")} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
	}

	var paths []string
	err := filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .json files under %s", in)
	}

	var processed, groundingCount, textCount, skipped atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !grounding.IsConversationFile(path) {
				slog.Debug("not a conversation file", slog.String("path", path))
				skipped.Add(1)
				return nil
			}
			hasGrounding, err := convertFile(path, out, split)
			if err != nil {
				slog.Warn("skipping file", slog.String("path", path), slog.Any("error", err))
				skipped.Add(1)
				return nil
			}
			processed.Add(1)
			if hasGrounding {
				groundingCount.Add(1)
			} else {
				textCount.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("done",
		slog.Int64("processed", processed.Load()),
		slog.Int64("grounding", groundingCount.Load()),
		slog.Int64("text", textCount.Load()),
		slog.Int64("skipped", skipped.Load()))

	if processed.Load() == 0 {
		return fmt.Errorf("no conversation files processed")
	}
	return nil
}

// convertFile loads, reports on, and (for -split) re-saves one record.
// It reports whether the record carries grounding annotations.
func convertFile(path, out string, split bool) (bool, error) {
	conv, err := grounding.Load(path)
	if err != nil {
		return false, err
	}

	stats := grounding.Analyze(conv.Turns)
	_, warns := conv.Annotations()
	for _, w := range warns {
		slog.Warn("decode warning", slog.String("path", path), slog.String("warning", w.String()))
	}
	slog.Debug("classified",
		slog.String("path", path),
		slog.String("image", conv.Image),
		slog.Int("turns", stats.Turns),
		slog.Int("grounding_turns", stats.Grounding),
		slog.Int("text_turns", stats.PureText),
		slog.Int("annotations", stats.Annotations))

	hasGrounding := stats.Grounding > 0
	if !split {
		return hasGrounding, nil
	}
	sub := "text"
	if hasGrounding {
		sub = "grounding"
	}
	return hasGrounding, conv.Save(filepath.Join(out, sub, filepath.Base(path)))
}
