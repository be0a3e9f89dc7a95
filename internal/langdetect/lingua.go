// Package langdetect annotates search snippets with a best-effort language
// code. The annotation is informational only and never feeds scoring.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"
)

// Search snippets about founders and startups overwhelmingly arrive in a
// handful of press languages. Restricting the detector to that set keeps
// model loading cheap and avoids exotic false positives on short text.
var snippetLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Dutch,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Hindi,
}

// minSampleLetters guards against one-word fragments the detector cannot
// classify reliably.
const minSampleLetters = 6

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectISO6391 returns the two-letter language code of a snippet, or ""
// when the sample is too short or the detector is unsure.
func DetectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minSampleLetters {
		return ""
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(snippetLanguages...).
			WithPreloadedLanguageModels().
			Build()
	})
	return detector
}
