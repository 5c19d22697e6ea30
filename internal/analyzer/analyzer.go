package analyzer

import (
	"context"
	"log/slog"
	"time"
	"unicode"

	"github.com/sozercan/insight-agent/apimodels"
)

type Analyzer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze counts words and non-whitespace characters in text. The text is
// expected to have been validated already; it is echoed back unchanged.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*apimodels.AnalyzeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	words, chars := Count(text)

	a.logger.DebugContext(ctx, "Analysis completed",
		"bytes", len(text),
		"word_count", words,
		"character_count", chars,
		"duration", time.Since(startTime),
	)

	return &apimodels.AnalyzeResponse{
		OriginalText:   text,
		WordCount:      words,
		CharacterCount: chars,
	}, nil
}

// Count returns the number of tokens and the number of non-whitespace runes
// in text. A token is a maximal run of non-whitespace runes, so leading,
// trailing and repeated whitespace never produce empty tokens.
func Count(text string) (words, chars int) {
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		chars++
		if !inWord {
			words++
			inWord = true
		}
	}
	return words, chars
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	words, _ := Count(text)
	return words
}

// CountCharacters returns the number of runes in text that are not
// whitespace. Each invalid UTF-8 byte counts as one rune.
func CountCharacters(text string) int {
	_, chars := Count(text)
	return chars
}
