package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/slack-go/slack"

	slackmd "github.com/goliatone/go-slackmd"
)

const tokenEnv = "SLACK_BOT_TOKEN"

var moduleBuilder = slackmd.New

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "md2slack: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("md2slack", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		filePath      = fs.String("file", "", "Markdown file to convert (reads stdin when empty)")
		checkboxStyle = fs.String("checkbox-style", slackmd.CheckboxStyleBullet, "Task item prefix: bullet, glyph or none")
		extensions    = fs.String("extensions", "gfm", "Comma separated goldmark extensions")
		frontMatter   = fs.Bool("front-matter", true, "Strip YAML/TOML front matter before converting")
		validate      = fs.Bool("validate", false, "Validate output against the Block Kit schema")
		maxBlocks     = fs.Int("max-blocks", slackmd.DefaultMaxBlocks, "Maximum blocks accepted when validating (0 disables)")
		blockIDPrefix = fs.String("block-id-prefix", "", "Assign deterministic block IDs with this prefix")
		channel       = fs.String("channel", "", "Post the blocks to this Slack channel")
		thread        = fs.String("thread", "", "Reply in the thread with this timestamp")
		publish       = fs.Bool("publish", false, "Post using the channel from front matter when -channel is empty")
		token         = fs.String("slack-token", "", "Slack bot token (defaults to $"+tokenEnv+")")
		apiURL        = fs.String("slack-api-url", "", "Override the Slack Web API endpoint")
		logProvider   = fs.String("log-provider", "console", "Logging provider: console or gologger")
		logLevel      = fs.String("log-level", "", "Enable logging at this level (trace, debug, info, warn, error)")
		logFormat     = fs.String("log-format", "", "go-logger output format: json, console or pretty")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := slackmd.DefaultConfig()
	cfg.Lists.CheckboxStyle = *checkboxStyle
	cfg.Parser.Extensions = splitList(*extensions)
	cfg.Parser.FrontMatter = *frontMatter
	cfg.Blocks.ValidateSchema = *validate
	cfg.Blocks.MaxBlocks = *maxBlocks
	cfg.Blocks.IDPrefix = *blockIDPrefix

	posting := *publish || strings.TrimSpace(*channel) != ""
	if posting {
		cfg.Features.Publish = true
		cfg.Slack.Token = firstNonEmpty(*token, os.Getenv(tokenEnv))
		cfg.Slack.APIURL = *apiURL
		cfg.Slack.Channel = *channel
	}
	if strings.TrimSpace(*logLevel) != "" {
		cfg.Features.Logger = true
		cfg.Logging.Provider = *logProvider
		cfg.Logging.Level = *logLevel
		cfg.Logging.Format = *logFormat
	}

	var results []slackmd.CommandResult
	opts := []slackmd.Option{
		slackmd.WithCommandResults(func(_ context.Context, result slackmd.CommandResult) error {
			results = append(results, result)
			return nil
		}),
	}

	var path string
	if *filePath != "" {
		abs, err := filepath.Abs(*filePath)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", *filePath, err)
		}
		dir := filepath.Dir(abs)
		opts = append(opts, slackmd.WithFS(os.DirFS(dir), dir))
		path = filepath.Base(abs)
	}

	module, err := moduleBuilder(cfg, opts...)
	if err != nil {
		return err
	}

	var (
		blocks    []slack.Block
		published *slackmd.PublishResult
	)
	switch {
	case path != "" && posting:
		if err := module.Commands().Publish.Execute(ctx, slackmd.PublishFileCommand{
			Path:     path,
			Channel:  *channel,
			ThreadTS: *thread,
		}); err != nil {
			return err
		}
	case path != "":
		if err := module.Commands().Convert.Execute(ctx, slackmd.ConvertFileCommand{Path: path}); err != nil {
			return err
		}
	default:
		source, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		blocks, err = module.Convert(ctx, source)
		if err != nil {
			return err
		}
		if posting {
			if published, err = module.Publish(ctx, *channel, *thread, blocks); err != nil {
				return err
			}
		}
	}

	if len(results) > 0 {
		last := results[len(results)-1]
		blocks, published = last.Blocks, last.Published
	}
	if blocks == nil {
		blocks = []slack.Block{}
	}

	encoded, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode blocks: %w", err)
	}
	if _, err := fmt.Fprintf(stdout, "%s\n", encoded); err != nil {
		return err
	}
	if published != nil {
		fmt.Fprintf(stderr, "posted to %s at %s\n", published.Channel, published.Timestamp)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
