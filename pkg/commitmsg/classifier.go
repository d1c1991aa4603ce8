package commitmsg

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

// DefaultVocabulary lists the action verbs that mark a descriptive message.
var DefaultVocabulary = []string{
	"fix", "optimize", "add", "test",
	"clean", "update", "refactor", "implement",
}

// wordPattern splits on anything that is not a letter, digit or underscore.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var defaultClassifier = New(DefaultVocabulary...)

// Classifier matches commit messages against a stemmed vocabulary.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	stems map[string]struct{}
}

// New creates a Classifier for the given vocabulary.
// Words are lower-cased and stemmed once here; empty words are ignored.
func New(words ...string) *Classifier {
	stems := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stems[stem(w)] = struct{}{}
	}
	return &Classifier{stems: stems}
}

// IsGood reports whether any word of message stems to a vocabulary stem.
// An empty message is never good.
func (c *Classifier) IsGood(message string) bool {
	for _, tok := range Tokenize(message) {
		if _, ok := c.stems[stem(tok)]; ok {
			return true
		}
	}
	return false
}

// Stems returns the number of distinct stems in the vocabulary.
func (c *Classifier) Stems() int { return len(c.stems) }

// IsGood classifies message with [DefaultVocabulary].
func IsGood(message string) bool {
	return defaultClassifier.IsGood(message)
}

// Tokenize lower-cases message and returns its words with punctuation removed.
func Tokenize(message string) []string {
	return wordPattern.FindAllString(strings.ToLower(message), -1)
}

func stem(word string) string {
	return english.Stem(word, true)
}
