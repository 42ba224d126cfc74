package g2p

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	e := Default()
	if e.Len() != 31 {
		t.Fatalf("default rule count = %d, want 31", e.Len())
	}
	if err := ValidateRules(e.Rules()); err != nil {
		t.Fatalf("embedded rules invalid: %v", err)
	}
	first := e.Rules()[0]
	if first.ID != "pal-1" || first.Input != "같이" || first.Output != "가치" {
		t.Errorf("first rule = %+v, want pal-1 같이→가치", first)
	}
}

func TestConvertPalatalization(t *testing.T) {
	res := Convert("같이")
	if !strings.Contains(res.Result, "가치") {
		t.Errorf("Result = %q, want to contain 가치", res.Result)
	}
	if len(res.Matched) == 0 || res.Matched[0].Category != Palatalization {
		t.Errorf("Matched = %+v, want palatalization rule", res.Matched)
	}
	if res.Input != "같이" {
		t.Errorf("Input = %q", res.Input)
	}
}

func TestConvertNoMatch(t *testing.T) {
	res := Convert("안녕")
	if res.Result != "안녕" {
		t.Errorf("Result = %q, want unchanged", res.Result)
	}
	if res.Matched == nil || len(res.Matched) != 0 {
		t.Errorf("Matched = %#v, want empty non-nil", res.Matched)
	}
}

func TestConvertSentence(t *testing.T) {
	res := Convert("학교에 같이 갑니다")
	want := "학꾜에 가치 감니다"
	if res.Result != want {
		t.Errorf("Result = %q, want %q", res.Result, want)
	}
	var ids []string
	for _, r := range res.Matched {
		ids = append(ids, r.ID)
	}
	// Matched follows table order, not position in the text.
	if got := strings.Join(ids, ","); got != "pal-1,for-1,nas-2" {
		t.Errorf("matched ids = %s", got)
	}
}

func TestConvertReplacesAll(t *testing.T) {
	res := Convert("국민 국민")
	if res.Result != "궁민 궁민" {
		t.Errorf("Result = %q", res.Result)
	}
	if len(res.Matched) != 1 {
		t.Errorf("rule recorded %d times, want once", len(res.Matched))
	}
}

func TestConvertOrderDependence(t *testing.T) {
	e := New([]Rule{
		{ID: "a", Input: "ab", Output: "cd", Category: Liaison},
		{ID: "b", Input: "cd", Output: "ef", Category: Liaison},
	})
	res := e.Convert("ab")
	if res.Result != "ef" || len(res.Matched) != 2 {
		t.Errorf("chained = %+v", res)
	}

	rev := New([]Rule{
		{ID: "b", Input: "cd", Output: "ef", Category: Liaison},
		{ID: "a", Input: "ab", Output: "cd", Category: Liaison},
	})
	if got := rev.Convert("ab").Result; got != "cd" {
		t.Errorf("reversed order = %q, want cd", got)
	}
}

func TestNewCopiesRules(t *testing.T) {
	rules := []Rule{{ID: "x", Input: "a", Output: "b", Category: Fortition}}
	e := New(rules)
	rules[0].Output = "z"
	if got := e.Convert("a").Result; got != "b" {
		t.Errorf("engine saw caller mutation: %q", got)
	}
	e.Rules()[0].Output = "z"
	if got := e.Convert("a").Result; got != "b" {
		t.Errorf("Rules() leaked internal slice: %q", got)
	}
}

func TestLoadRules(t *testing.T) {
	doc := `
rules:
  - id: t-1
    input: 좋아
    output: 조아
    category: h-deletion
  - id: t-2
    input: 축하
    output: 추카
    category: aspiration
`
	rules, err := LoadRules(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 2 || rules[0].ID != "t-1" || rules[1].Category != Aspiration {
		t.Errorf("rules = %+v", rules)
	}

	json := `{"rules":[{"id":"j","input":"a","output":"b","category":"liaison"}]}`
	if rules, err := LoadRules(strings.NewReader(json)); err != nil || len(rules) != 1 {
		t.Errorf("LoadRules(json) = %v, %v", rules, err)
	}

	if rules, err := LoadRules(strings.NewReader("")); err != nil || len(rules) != 0 {
		t.Errorf("LoadRules(empty) = %v, %v", rules, err)
	}
}

func TestLoadRulesInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty input", "rules:\n  - {id: a, input: '', output: b, category: liaison}\n"},
		{"empty output", "rules:\n  - {id: a, input: a, output: '', category: liaison}\n"},
		{"unknown category", "rules:\n  - {id: a, input: a, output: b, category: tone}\n"},
		{"duplicate id", "rules:\n  - {id: a, input: a, output: b, category: liaison}\n  - {id: a, input: c, output: d, category: liaison}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("error = %v, want ErrInvalidRule", err)
			}
		})
	}

	if _, err := LoadRules(strings.NewReader("rules: [")); err == nil || errors.Is(err, ErrInvalidRule) {
		t.Errorf("syntax error = %v, want parse error", err)
	}
}

func TestByCategory(t *testing.T) {
	grouped := Default().ByCategory()
	want := map[Category]int{
		Palatalization: 4,
		Fortition:      5,
		Nasalization:   5,
		Liaison:        9,
		HDeletion:      4,
		Aspiration:     4,
	}
	for c, n := range want {
		if len(grouped[c]) != n {
			t.Errorf("%s: %d rules, want %d", c, len(grouped[c]), n)
		}
	}

	empty := New(nil).ByCategory()
	for _, c := range Categories() {
		if rules, ok := empty[c]; !ok || rules == nil {
			t.Errorf("category %s missing from empty grouping", c)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	for _, c := range Categories() {
		l, ok := CategoryLabel(c)
		if !ok || l.Ko == "" || l.En == "" {
			t.Errorf("CategoryLabel(%s) = %+v, %v", c, l, ok)
		}
	}
	if l, _ := CategoryLabel(HDeletion); l.Ko != "ㅎ탈락" || l.En != "H-deletion" {
		t.Errorf("h-deletion label = %+v", l)
	}
	if _, ok := CategoryLabel("tone"); ok {
		t.Error("unknown category should have no label")
	}
}

func TestRandom(t *testing.T) {
	e := Default()
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 20; i++ {
		r, ok := e.Random(rng)
		if !ok {
			t.Fatal("Random returned false")
		}
		if _, found := e.Lookup(r.ID); !found {
			t.Fatalf("Random returned unknown rule %q", r.ID)
		}

		a, ok := e.RandomByCategory(Aspiration, rng)
		if !ok || a.Category != Aspiration {
			t.Fatalf("RandomByCategory(aspiration) = %+v, %v", a, ok)
		}
	}

	if _, ok := New(nil).Random(nil); ok {
		t.Error("Random on empty engine should return false")
	}
	if _, ok := e.RandomByCategory("tone", rng); ok {
		t.Error("RandomByCategory(unknown) should return false")
	}
}

func TestNumberToKorean(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "영"},
		{1, "일"},
		{10, "십"},
		{11, "십일"},
		{20, "이십"},
		{100, "백"},
		{1100, "천백"},
		{2024, "이천이십사"},
		{10000, "일만"},
		{12345, "일만이천삼백사십오"},
		{100000000, "일억"},
		{100010000, "일억일만"},
		{300000002, "삼억이"},
		{-5, "마이너스 오"},
	}
	for _, tt := range tests {
		if got := NumberToKorean(tt.n); got != tt.want {
			t.Errorf("NumberToKorean(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024년 12월 25일", "이천이십사년 십이월 이십오일"},
		{"회의는 3시에", "회의는 삼시에"},
		{"사과 5 개", "사과 오 개"},
		{"숫자 없음", "숫자 없음"},
		{"99999999999999999999", "99999999999999999999"},
		{"₩50,000", "오만원"},
		{"5000원", "오천원"},
		{"가격은 ₩1,200원입니다", "가격은 천이백원입니다"},
		{"오후 3시 30분", "오후 삼시 삼십분"},
		{"10km", "십킬로미터"},
		{"5KM 달리기", "오킬로미터 달리기"},
		{"2024년 5000원 7", "이천이십사년 오천원 칠"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
