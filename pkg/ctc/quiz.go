package ctc

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownDifficulty is returned for a difficulty outside easy/medium/hard.
var ErrUnknownDifficulty = errors.New("ctc: unknown difficulty")

// Difficulty selects the word list of a quiz.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var quizWords = map[Difficulty][]string{
	Easy:   {"HELLO", "CAT", "DOG", "SUN", "MOON"},
	Medium: {"APPLE", "WATER", "HAPPY", "SMILE", "PEACE"},
	Hard:   {"BEAUTIFUL", "COMPUTER", "LANGUAGE", "SCIENCE", "TOGETHER"},
}

var quizHints = map[Difficulty]string{
	Easy:   "힌트: 연속 중복 제거 후 Blank(ε)를 제거하세요.",
	Medium: "힌트: Step 1에서 HH→H, Step 2에서 ε 제거!",
	Hard:   "힌트: 차근차근 두 단계를 거치면 됩니다.",
}

// ParseDifficulty parses a difficulty name case-insensitively. An empty
// string selects Easy.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return Easy, nil
	}
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := quizWords[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Words returns the word list for d.
func (d Difficulty) Words() []string {
	return append([]string(nil), quizWords[d]...)
}

// Quiz asks the player to decode Input into Answer.
type Quiz struct {
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty" msgpack:"difficulty"`
	Input      []string   `json:"input" yaml:"input" msgpack:"input"`
	Answer     string     `json:"answer" yaml:"answer" msgpack:"answer"`
	Hint       string     `json:"hint" yaml:"hint" msgpack:"hint"`
}

// GenerateQuiz picks a random word of the given difficulty and builds its
// trace with GenerateRandom.
func GenerateQuiz(d Difficulty, rng *rand.Rand) (Quiz, error) {
	words, ok := quizWords[d]
	if !ok {
		return Quiz{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	if rng == nil {
		rng = newRand()
	}
	answer := words[rng.IntN(len(words))]
	return Quiz{
		Difficulty: d,
		Input:      GenerateRandom(answer, rng),
		Answer:     answer,
		Hint:       quizHints[d],
	}, nil
}

// Check reports whether answer matches the quiz answer, ignoring case and
// surrounding whitespace.
func (q Quiz) Check(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), q.Answer)
}
