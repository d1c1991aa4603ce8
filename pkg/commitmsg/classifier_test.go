package commitmsg

import (
	"reflect"
	"testing"
)

func TestIsGood(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Fixed the null check", true},
		{"fix bug", true},
		{"fixing flaky build", true},
		{"Tests for the parser", true},
		{"update readme", true},
		{"Updated README.md", true},
		{"Refactoring: split client.go", true},
		{"implemented retries", true},
		{"Optimized hot loop", true},
		{"cleaned up imports", true},
		{"FIX: crash on empty input", true},
		{"Merge branch 'main'", false},
		{"merge", false},
		{"wip", false},
		{"Initial commit", false},
		{"", false},
		{"   ...!!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := IsGood(tt.msg); got != tt.want {
				t.Errorf("IsGood(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestCustomVocabulary(t *testing.T) {
	c := New("Document", "", "  bump ")

	if c.Stems() != 2 {
		t.Fatalf("Stems() = %d, want 2", c.Stems())
	}
	if !c.IsGood("documented the config loader") {
		t.Error("inflected vocabulary word should match")
	}
	if !c.IsGood("Bumps golang.org/x/net") {
		t.Error("bumps should match bump")
	}
	if c.IsGood("fix bug") {
		t.Error("custom vocabulary should not include the defaults")
	}
}

func TestEmptyVocabulary(t *testing.T) {
	if New().IsGood("fix everything") {
		t.Error("empty vocabulary should never match")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		msg  string
		want []string
	}{
		{"Merge branch 'main'", []string{"merge", "branch", "main"}},
		{"fix(api): handle 404s", []string{"fix", "api", "handle", "404s"}},
		{"snake_case stays", []string{"snake_case", "stays"}},
		{"Überarbeitet: tests", []string{"überarbeitet", "tests"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.msg)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
