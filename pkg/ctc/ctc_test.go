package ctc

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestDecodeWithSteps(t *testing.T) {
	input := []string{"ε", "H", "H", "ε", "E", "ε", "L", "L", "ε", "L", "O"}
	steps := DecodeWithSteps(input)

	if len(steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(steps))
	}
	for i, s := range steps {
		if s.Index != i {
			t.Errorf("steps[%d].Index = %d", i, s.Index)
		}
		for _, h := range s.Highlighted {
			if h < 0 || h >= len(s.Sequence) {
				t.Errorf("step %d highlight %d out of range", i, h)
			}
		}
	}

	if !slices.Equal(steps[0].Sequence, input) {
		t.Errorf("raw = %v, want %v", steps[0].Sequence, input)
	}
	wantCollapsed := []string{"ε", "H", "ε", "E", "ε", "L", "ε", "L", "O"}
	if !slices.Equal(steps[1].Sequence, wantCollapsed) {
		t.Errorf("collapsed = %v, want %v", steps[1].Sequence, wantCollapsed)
	}
	if got := DecodeSpaced(input); got != "H E L L O" {
		t.Errorf("DecodeSpaced = %q, want %q", got, "H E L L O")
	}
	if got := Decode(input); got != "HELLO" {
		t.Errorf("Decode = %q, want HELLO", got)
	}
}

func TestDecodeDoesNotAlias(t *testing.T) {
	input := []string{"A", "A", "ε", "B"}
	steps := DecodeWithSteps(input)
	steps[0].Sequence[0] = "Z"
	steps[1].Sequence[0] = "Z"
	if input[0] != "A" {
		t.Error("input modified through step sequence")
	}
}

func TestCollapseIsRunLength(t *testing.T) {
	// Non-adjacent repeats survive.
	if got := Decode([]string{"H", "H", "E", "H"}); got != "HEH" {
		t.Errorf("Decode = %q, want HEH", got)
	}
}

func TestBlankForms(t *testing.T) {
	for _, tok := range []string{"ε", "-", "blank", "BLANK", "Blank"} {
		if !IsBlank(tok) {
			t.Errorf("IsBlank(%q) = false", tok)
		}
	}
	for _, tok := range []string{"", "e", "blanks", "_"} {
		if IsBlank(tok) {
			t.Errorf("IsBlank(%q) = true", tok)
		}
	}
	if got := Decode([]string{"A", "blank", "B", "-", "C"}); got != "ABC" {
		t.Errorf("Decode = %q, want ABC", got)
	}
}

func TestDecodeEmpty(t *testing.T) {
	steps := DecodeWithSteps(nil)
	for _, s := range steps {
		if s.Sequence == nil || len(s.Sequence) != 0 {
			t.Errorf("step %d sequence = %#v, want empty", s.Index, s.Sequence)
		}
	}
	if Decode(nil) != "" {
		t.Error("Decode(nil) should be empty")
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"ε-H-H-E-L-L-O", []string{"ε", "H", "H", "E", "L", "L", "O"}},
		{"ε,H, H ,E", []string{"ε", "H", "H", "E"}},
		{"ε  H\tE", []string{"ε", "H", "E"}},
		{"HELLO", []string{"H", "E", "L", "L", "O"}},
		// dash wins over comma
		{"a,b-c", []string{"a,b", "c"}},
		{"--A--", []string{"A"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := ParseInput(tt.in)
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	words := []string{"HELLO", "CAT", "BEAUTIFUL", "APPLE", "BOOKKEEPER", "가나다", "A"}
	for _, w := range words {
		for i := 0; i < 50; i++ {
			trace := GenerateRandom(w, rng)
			if got := Decode(trace); got != w {
				t.Fatalf("Decode(GenerateRandom(%q)) = %q (trace %v)", w, got, trace)
			}
			if trace[len(trace)-1] != Blank {
				t.Fatalf("trace %v does not end with a blank", trace)
			}
		}
	}
}

func TestGenerateRandomShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	trace := GenerateRandom("AB", rng)
	// Each rune contributes at most one blank and three repeats.
	if len(trace) < 3 || len(trace) > 9 {
		t.Errorf("len(trace) = %d, want 3..9", len(trace))
	}
	if got := GenerateRandom("", rng); !slices.Equal(got, []string{Blank}) {
		t.Errorf("GenerateRandom(\"\") = %v, want [ε]", got)
	}
	if got := Decode(GenerateRandom("DOG", nil)); got != "DOG" {
		t.Errorf("nil rng round trip = %q", got)
	}
}

func TestGenerateRandomDeterministic(t *testing.T) {
	a := GenerateRandom("COMPUTER", rand.New(rand.NewPCG(42, 42)))
	b := GenerateRandom("COMPUTER", rand.New(rand.NewPCG(42, 42)))
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestGenerateQuiz(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		q, err := GenerateQuiz(d, rng)
		if err != nil {
			t.Fatalf("GenerateQuiz(%s): %v", d, err)
		}
		if !slices.Contains(d.Words(), q.Answer) {
			t.Errorf("%s answer %q not in word list", d, q.Answer)
		}
		if Decode(q.Input) != q.Answer {
			t.Errorf("%s quiz input %v does not decode to %q", d, q.Input, q.Answer)
		}
		if q.Hint == "" {
			t.Errorf("%s quiz has no hint", d)
		}
		if !q.Check("  " + strings.ToLower(q.Answer) + " ") {
			t.Errorf("Check(answer) = false")
		}
		if q.Check(q.Answer + "X") {
			t.Errorf("Check(wrong) = true")
		}
	}

	if _, err := GenerateQuiz("expert", rng); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("GenerateQuiz(expert) error = %v", err)
	}
}

func TestQuizCheckCaseInsensitive(t *testing.T) {
	q := Quiz{Answer: "MOON"}
	if !q.Check("moon") {
		t.Error("Check should ignore case")
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"", Easy},
		{"easy", Easy},
		{"MEDIUM", Medium},
		{" Hard ", Hard},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := ParseDifficulty("nightmare"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("error = %v, want ErrUnknownDifficulty", err)
	}
}
