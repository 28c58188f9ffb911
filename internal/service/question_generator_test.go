package service

import (
	"strings"
	"testing"
)

func TestGenerateProducesWellFormedQuestions(t *testing.T) {
	g := NewTrigQuestionGeneratorWithSeed(1)

	for i := 0; i < 200; i++ {
		question, answer, options := g.Generate()

		if question == "" || !strings.Contains(question, "(") || !strings.HasSuffix(question, ")") {
			t.Fatalf("malformed question: %q", question)
		}

		if len(options) != optionCount {
			t.Fatalf("expected %d options, got %d: %v", optionCount, len(options), options)
		}

		found := false
		seen := map[string]bool{}
		for _, option := range options {
			if seen[option] {
				t.Fatalf("duplicate option %q in %v", option, options)
			}
			seen[option] = true
			if option == answer {
				found = true
			}
		}
		if !found {
			t.Fatalf("answer %q missing from options %v", answer, options)
		}
	}
}

func TestGenerateUsesKnownFunctions(t *testing.T) {
	g := NewTrigQuestionGeneratorWithSeed(42)

	known := map[string]bool{"sin": true, "cos": true, "tg": true, "ctg": true}
	for i := 0; i < 50; i++ {
		question, _, _ := g.Generate()
		name := question[:strings.Index(question, "(")]
		if !known[name] {
			t.Fatalf("unknown function in question %q", question)
		}
	}
}

func TestValueWithSign(t *testing.T) {
	cases := []struct {
		function string
		angleDeg int
		quadrant int
		want     string
	}{
		{"sin", 30, 1, "1/2"},
		{"sin", 90, 1, "1"},
		{"sin", 150, 2, "1/2"},
		{"sin", 210, 3, "-1/2"},
		{"sin", 270, 3, "-1"},
		{"sin", 330, 4, "-1/2"},
		{"sin", 360, 4, "0"},
		{"cos", 0, 1, "1"},
		{"cos", 90, 1, "0"},
		{"cos", 120, 2, "-1/2"},
		{"cos", 180, 2, "-1"},
		{"cos", 240, 3, "-1/2"},
		{"cos", 270, 3, "0"},
		{"cos", 300, 4, "1/2"},
		{"tg", 45, 1, "1"},
		{"tg", 90, 1, "undefined"},
		{"tg", 135, 2, "-1"},
		{"tg", 225, 3, "1"},
		{"tg", 270, 3, "undefined"},
		{"tg", 315, 4, "-1"},
		{"ctg", 0, 1, "undefined"},
		{"ctg", 90, 1, "0"},
		{"ctg", 150, 2, "-sqrt(3)"},
		{"ctg", 240, 3, "sqrt(3)/3"},
		{"ctg", 270, 3, "0"},
		{"ctg", 330, 4, "-sqrt(3)"},
	}

	for _, tc := range cases {
		got := valueWithSign(tc.function, tc.angleDeg, tc.quadrant)
		if got != tc.want {
			t.Errorf("%s(%d°) quadrant %d = %q, want %q", tc.function, tc.angleDeg, tc.quadrant, got, tc.want)
		}
	}
}
