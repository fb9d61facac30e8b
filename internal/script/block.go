package script

// KindStory is the narrative script type. Only story scripts branch into
// choice blocks and gendered duplicate blocks.
const KindStory = "story"

// Entry is one choice option or colored-text run. Order is the only key
// linking it to translator input.
type Entry struct {
	SourceText     string
	TranslatedText string
}

// Block is one translatable unit of a script.
type Block struct {
	// Index is the block's blockIdx, used to point operators at a line.
	Index      int
	SourceText string
	SourceName string
	// Named is false for blocks whose script type carries no speaker field.
	Named bool

	TranslatedText string
	TranslatedName string

	Choices []Entry
	Colored []Entry
}

// HasChoices reports whether the block presents a branching decision.
func (b *Block) HasChoices() bool {
	return b != nil && len(b.Choices) > 0
}
