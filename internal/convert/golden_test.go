package convert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-slackmd/internal/runtimeconfig"
	"github.com/goliatone/go-slackmd/pkg/testsupport"
)

func TestConvertMatchesGolden(t *testing.T) {
	cases := []struct {
		name    string
		fixture string
		golden  string
	}{
		{name: "announcement", fixture: "testdata/announcement.md", golden: "testdata/announcement.blocks.json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conv := newGoldmarkConverter(t, func(cfg *runtimeconfig.Config) {
				cfg.Parser.FrontMatter = true
				cfg.Blocks.ValidateSchema = true
			}, nil)

			out, err := conv.Convert(context.Background(), testsupport.LoadFixture(t, tc.fixture))
			require.NoError(t, err)
			testsupport.AssertGolden(t, tc.golden, out)
		})
	}
}
