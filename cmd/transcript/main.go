// Command transcript prints the captions of YouTube videos.
//
//	transcript [-languages en,de] [-format text|json|srt|vtt|md|yaml] [-o dir] [-list] [-info] [-copy] <video>...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/formatter"
	"github.com/anatolykoptev/go_transcript/internal/youtube"
	"github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"
)

type options struct {
	Languages   []string
	Format      string
	List        bool
	Info        bool
	Copy        bool
	Preserve    bool
	Stealth     bool
	Timeout     time.Duration
	Concurrency int
	OutDir      string
	Videos      []string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := engine.Config{
		PageTimeout:      opts.Timeout,
		DefaultLanguages: opts.Languages,
		BatchConcurrency: opts.Concurrency,
	}
	if opts.Stealth {
		bc, err := engine.NewBrowserClient(int(opts.Timeout.Seconds()), os.Getenv("WEBSHARE_API_KEY"))
		if err != nil {
			slog.Warn("stealth client init failed, using net/http", slog.Any("error", err))
		} else {
			cfg.BrowserClient = bc
		}
	}
	engine.Init(cfg)

	out, err := run(ctx, engine.NewYouTubeClient(), opts, os.Stdout)
	if err != nil {
		slog.Error("transcript failed", slog.Any("error", err))
		os.Exit(1)
	}
	if opts.Copy && out != "" {
		if err := clipboard.WriteAll(out); err != nil {
			slog.Error("copy to clipboard failed", slog.Any("error", err))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "copied to clipboard")
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		o     options
		langs string
	)
	fs := flag.NewFlagSet("transcript", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&langs, "languages", "en", "comma separated language codes in priority order")
	fs.StringVar(&o.Format, "format", "text", "output format: "+strings.Join(formatter.Names(), ", "))
	fs.StringVar(&o.OutDir, "o", "", "write each transcript to <dir>/<video id>.<ext> instead of stdout")
	fs.BoolVar(&o.List, "list", false, "list available transcripts instead of fetching one")
	fs.BoolVar(&o.Info, "info", false, "print video metadata")
	fs.BoolVar(&o.Copy, "copy", false, "also copy the output to the clipboard")
	fs.BoolVar(&o.Preserve, "preserve-formatting", false, "keep <i>, <b> and similar tags in caption text")
	fs.BoolVar(&o.Stealth, "stealth", false, "use a Chrome-fingerprinted client (WEBSHARE_API_KEY enables proxies)")
	fs.DurationVar(&o.Timeout, "timeout", youtube.DefaultPageTimeout, "watch page timeout")
	fs.IntVar(&o.Concurrency, "concurrency", 4, "parallel fetches when several videos are given")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: transcript [flags] <video id or URL>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.Videos = fs.Args()
	if len(o.Videos) == 0 {
		fs.Usage()
		return o, errors.New("no video given")
	}
	o.Languages = engine.SplitLanguages(langs)
	return o, nil
}

// run writes the requested output for every video to w and returns it.
func run(ctx context.Context, client *youtube.Client, o options, w io.Writer) (string, error) {
	var sb strings.Builder
	out := io.MultiWriter(w, &sb)

	switch {
	case o.List:
		for i, v := range o.Videos {
			l, err := client.ListTranscripts(ctx, v)
			if err != nil {
				return sb.String(), err
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, l.String())
		}
	case o.Info:
		for _, v := range o.Videos {
			info, err := client.VideoInfo(ctx, v)
			if err != nil {
				return sb.String(), err
			}
			data, err := yaml.Marshal(info)
			if err != nil {
				return sb.String(), fmt.Errorf("marshal video info: %w", err)
			}
			fmt.Fprintf(out, "---\n%s", data)
		}
	default:
		if err := writeTranscripts(ctx, client, o, out); err != nil {
			return sb.String(), err
		}
	}
	return sb.String(), nil
}

func writeTranscripts(ctx context.Context, client *youtube.Client, o options, out io.Writer) error {
	f, err := formatter.ByName(o.Format)
	if err != nil {
		return err
	}
	var fetchOpts []youtube.FetchOption
	if o.Preserve {
		fetchOpts = append(fetchOpts, youtube.WithPreserveFormatting())
	}

	results := client.FetchMany(ctx, o.Videos, o.Languages, o.Concurrency, fetchOpts...)
	var failed []error
	for i, r := range results {
		if r.Err != nil {
			failed = append(failed, r.Err)
			continue
		}
		vf := f
		if md, ok := f.(formatter.Markdown); ok && md.Title == "" {
			if info, err := client.VideoInfo(ctx, r.VideoID); err == nil {
				md.Title = info.Title
				vf = md
			}
		}
		text, err := vf.Format(r.Transcript)
		if err != nil {
			return err
		}
		if o.OutDir != "" {
			path, err := writeFile(o.OutDir, r.Transcript.VideoID, vf.Ext(), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, path)
			continue
		}
		if i > 0 && len(results) > 1 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, text)
	}
	return errors.Join(failed...)
}

func writeFile(dir, videoID, ext, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, videoID+"."+ext)
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
