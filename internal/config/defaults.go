package config

const (
	defaultConfigPath          = "~/.config/subtransfer/config.toml"
	projectConfigName          = "subtransfer.toml"
	defaultLogDir              = "~/.local/share/subtransfer/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogColor            = "auto"
	defaultJournalPath         = "~/.local/share/subtransfer/journal.db"
	defaultSimilarityThreshold = 0.6
	defaultTitleLogoMarker     = "イベントタイトルロゴ表示"
	defaultDummyTextPattern    = `^※*ダミーテキスト`
	defaultNarrativeKind       = "story"
	defaultChoiceSpeaker       = "trainer"
)

var defaultSkipNames = []string{"", "<username>", "モノローグ"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Color:  defaultLogColor,
		},
		Align: Align{
			Filters:             []string{},
			Backup:              true,
			SimilarityThreshold: defaultSimilarityThreshold,
			SkipNames:           append([]string(nil), defaultSkipNames...),
			TitleLogoMarker:     defaultTitleLogoMarker,
			DummyTextPattern:    defaultDummyTextPattern,
			NarrativeKind:       defaultNarrativeKind,
			ChoiceSpeakers:      []string{defaultChoiceSpeaker},
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
	}
}
