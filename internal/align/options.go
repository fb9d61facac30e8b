package align

import (
	"fmt"
	"regexp"
	"slices"

	"subtransfer/internal/config"
	"subtransfer/internal/script"
	"subtransfer/internal/textfilter"
)

// Game-specific defaults for the injectable Options fields.
const (
	DefaultTitleLogoMarker     = "イベントタイトルロゴ表示"
	DefaultDummyTextPattern    = `^※*ダミーテキスト`
	DefaultSimilarityThreshold = 0.6
)

// DefaultSkipNames are speaker names never translated and, unless
// DupeCheckAll is set, never checked for gender duplicates: the blank name,
// the player placeholder and the monologue marker.
var DefaultSkipNames = []string{"", "<username>", "モノローグ"}

// Options configures one run. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// OverrideNames replaces speaker names that are already translated.
	OverrideNames bool
	// DupeCheckAll also checks skip-listed speakers for gender duplicates.
	DupeCheckAll bool
	// Filters are applied to every text written into a block.
	Filters textfilter.Set

	// SkipNames are speakers whose translated name is always cleared.
	SkipNames []string
	// TitleLogoMarker prefixes source text of title-logo blocks.
	TitleLogoMarker string
	// DummyText matches source text of placeholder blocks.
	DummyText *regexp.Regexp
	// NarrativeKind is the script kind that has choices and duplicates.
	NarrativeKind string
	// SimilarityThreshold is the source similarity above which two
	// same-speaker blocks are duplicates.
	SimilarityThreshold float64
}

// DefaultOptions returns options with the game defaults filled in.
func DefaultOptions() Options {
	return Options{
		SkipNames:           slices.Clone(DefaultSkipNames),
		TitleLogoMarker:     DefaultTitleLogoMarker,
		DummyText:           regexp.MustCompile(DefaultDummyTextPattern),
		NarrativeKind:       script.KindStory,
		SimilarityThreshold: DefaultSimilarityThreshold,
	}
}

func (o Options) skipName(name string) bool {
	return slices.Contains(o.SkipNames, name)
}

// FromConfig builds options from the [align] config section.
func FromConfig(cfg config.Align) (Options, error) {
	filters, err := textfilter.NewSet(cfg.Filters...)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions()
	opts.OverrideNames = cfg.OverrideNames
	opts.DupeCheckAll = cfg.DupeCheckAll
	opts.Filters = filters
	if cfg.SkipNames != nil {
		opts.SkipNames = slices.Clone(cfg.SkipNames)
	}
	opts.TitleLogoMarker = cfg.TitleLogoMarker
	opts.DummyText = nil
	if cfg.DummyTextPattern != "" {
		if opts.DummyText, err = regexp.Compile(cfg.DummyTextPattern); err != nil {
			return Options{}, fmt.Errorf("dummy text pattern: %w", err)
		}
	}
	if cfg.NarrativeKind != "" {
		opts.NarrativeKind = cfg.NarrativeKind
	}
	if cfg.SimilarityThreshold > 0 {
		opts.SimilarityThreshold = cfg.SimilarityThreshold
	}
	return opts, nil
}
