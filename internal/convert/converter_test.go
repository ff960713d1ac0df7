package convert

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-slackmd/internal/markdown"
	"github.com/goliatone/go-slackmd/internal/runtimeconfig"
	"github.com/goliatone/go-slackmd/internal/validation"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
	md "github.com/goliatone/go-slackmd/pkg/mdast"
)

type entry struct {
	level string
	msg   string
}

type recordingLogger struct {
	entries *[]entry
	fields  map[string]any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: &[]entry{}, fields: map[string]any{}}
}

func (l *recordingLogger) add(level, msg string) { *l.entries = append(*l.entries, entry{level, msg}) }

func (l *recordingLogger) Trace(msg string, _ ...any) { l.add("trace", msg) }
func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error", msg) }
func (l *recordingLogger) Fatal(msg string, _ ...any) { l.add("fatal", msg) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := map[string]any{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{entries: l.entries, fields: merged}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *recordingLogger) has(level, msg string) bool {
	for _, e := range *l.entries {
		if e.level == level && e.msg == msg {
			return true
		}
	}
	return false
}

func newGoldmarkConverter(t *testing.T, mutate func(*runtimeconfig.Config), logger interfaces.Logger) *Converter {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	settings, err := SettingsFromConfig(cfg)
	require.NoError(t, err)
	return New(markdown.NewGoldmarkTokenizer(settings.Parse), settings, logger)
}

func TestConvertMarkdownEndToEnd(t *testing.T) {
	logger := newRecordingLogger()
	conv := newGoldmarkConverter(t, nil, logger)

	source := "# Release *notes*\n\nShipped **bold** and ~~old~~ with [docs](https://example.com).\n\n---\n\n- [x] done\n- [ ] todo\n"
	out, err := conv.Convert(context.Background(), []byte(source))
	require.NoError(t, err)
	require.Len(t, out, 4)

	header, ok := out[0].(*slack.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "Release notes", header.Text.Text)

	section, ok := out[1].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Shipped *bold* and ~old~ with <https://example.com|docs> .", section.Text.Text)

	_, ok = out[2].(*slack.DividerBlock)
	assert.True(t, ok)

	list, ok := out[3].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "• done\n• todo", list.Text.Text)

	assert.True(t, logger.has("debug", "blocks.converted"))
}

func TestConvertAppliesCheckboxStyle(t *testing.T) {
	conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) {
		cfg.Lists.CheckboxStyle = runtimeconfig.CheckboxStyleGlyph
	}, nil)

	out, err := conv.Convert(context.Background(), []byte("- [x] done\n- [ ] todo\n"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "☑ done\n☐ todo", out[0].(*slack.SectionBlock).Text.Text)
}

func TestConvertStripsFrontMatterWhenEnabled(t *testing.T) {
	source := []byte("---\ntitle: Hello\n---\n# Body\n")

	conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) { cfg.Parser.FrontMatter = true }, nil)
	out, err := conv.Convert(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.IsType(t, &slack.HeaderBlock{}, out[0])
}

func TestConvertDocumentUsesBody(t *testing.T) {
	logger := newRecordingLogger()
	conv := newGoldmarkConverter(t, nil, logger)

	doc := &interfaces.Document{
		FilePath:    "notes/release.md",
		Body:        []byte("---\n\nafter the rule\n"),
		FrontMatter: interfaces.FrontMatter{Channel: "C42"},
	}
	out, err := conv.ConvertDocument(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.IsType(t, &slack.DividerBlock{}, out[0])

	empty, err := conv.ConvertDocument(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestConvertAssignsBlockIDs(t *testing.T) {
	conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) { cfg.Blocks.IDPrefix = "release" }, nil)

	first, err := conv.Convert(context.Background(), []byte("# A\n\nbody\n"))
	require.NoError(t, err)
	second, err := conv.Convert(context.Background(), []byte("# A\n\nbody\n"))
	require.NoError(t, err)

	require.Len(t, first, 2)
	headerID := first[0].(*slack.HeaderBlock).BlockID
	sectionID := first[1].(*slack.SectionBlock).BlockID
	assert.True(t, strings.HasPrefix(headerID, "release-"))
	assert.NotEqual(t, headerID, sectionID)
	assert.Equal(t, headerID, second[0].(*slack.HeaderBlock).BlockID)
}

func TestConvertTreeRejectsInvalidTree(t *testing.T) {
	logger := newRecordingLogger()
	conv := New(nil, Settings{}, logger)

	_, err := conv.ConvertTree(context.Background(), md.NewRoot(md.NewHeading(9, md.NewText("deep"))))
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrInvalidNode)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
	assert.True(t, logger.has("warn", "markdown.tree.invalid"))
}

func TestConvertTreeWithoutTokenizer(t *testing.T) {
	conv := New(nil, Settings{}, nil)

	out, err := conv.ConvertTree(context.Background(), md.NewRoot(md.NewThematicBreak()))
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = conv.Convert(context.Background(), []byte("# x"))
	assert.ErrorIs(t, err, ErrNoTokenizer)
}

func TestConvertEnforcesMaxBlocksWhenValidating(t *testing.T) {
	source := []byte(strings.Repeat("---\n\n", 4))

	conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) {
		cfg.Blocks.ValidateSchema = true
		cfg.Blocks.MaxBlocks = 3
	}, nil)
	_, err := conv.Convert(context.Background(), source)
	assert.ErrorIs(t, err, validation.ErrTooManyBlocks)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))

	unchecked := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) { cfg.Blocks.MaxBlocks = 3 }, nil)
	out, err := unchecked.Convert(context.Background(), source)
	require.NoError(t, err)
	assert.Len(t, out, 4)
}

func TestConvertValidatesSchema(t *testing.T) {
	logger := newRecordingLogger()
	conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) { cfg.Blocks.ValidateSchema = true }, logger)

	out, err := conv.Convert(context.Background(), []byte("# Title\n\ntext ![alt](https://example.com/a.png)\n"))
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.False(t, logger.has("warn", "blocks.validation.failed"))
}

func TestConvertHonoursCancelledContext(t *testing.T) {
	conv := newGoldmarkConverter(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, []byte("# x"))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSettingsFromConfigRejectsUnknownStyle(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Lists.CheckboxStyle = "emoji"

	_, err := SettingsFromConfig(cfg)
	assert.ErrorIs(t, err, runtimeconfig.ErrCheckboxStyleInvalid)
}

func TestSettingsFromConfigCarriesBlockOptions(t *testing.T) {
	conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) {
		cfg.Blocks.IDPrefix = "notes"
		cfg.Blocks.MaxBlocks = 10
		cfg.Parser.Extensions = []string{"table"}
	}, nil)

	settings := conv.Settings()
	assert.Equal(t, "notes", settings.IDPrefix)
	assert.Equal(t, 10, settings.MaxBlocks)
	assert.Equal(t, []string{"table"}, settings.Parse.Extensions)
	require.NotNil(t, settings.Render.Lists.CheckboxPrefix)
}
