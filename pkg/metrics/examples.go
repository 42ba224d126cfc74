package metrics

// Example is a curated reference/hypothesis pair for demonstrating metrics.
type Example struct {
	Name        string `json:"name" yaml:"name" msgpack:"name"`
	Reference   string `json:"reference" yaml:"reference" msgpack:"reference"`
	Hypothesis  string `json:"hypothesis" yaml:"hypothesis" msgpack:"hypothesis"`
	Description string `json:"description" yaml:"description" msgpack:"description"`
}

// Examples lists pairs that each isolate one kind of error.
var Examples = []Example{
	{
		Name:        "완벽 일치",
		Reference:   "오늘 날씨가 좋습니다",
		Hypothesis:  "오늘 날씨가 좋습니다",
		Description: "WER=0%, CER=0%",
	},
	{
		Name:        "단어 하나 틀림",
		Reference:   "the weather is good",
		Hypothesis:  "the weather is great",
		Description: "WER=25% (1/4), good→great",
	},
	{
		Name:        "조사 하나 틀림 (한국어)",
		Reference:   "학교에 갑니다",
		Hypothesis:  "학교가 갑니다",
		Description: "WER=50% vs CER≈17% (한 글자 차이)",
	},
	{
		Name:        "단어 누락",
		Reference:   "오늘 서울 날씨는 맑음",
		Hypothesis:  "오늘 날씨는 맑음",
		Description: `"서울" 누락 → 삭제 오류`,
	},
	{
		Name:        "단어 추가",
		Reference:   "회의는 3시에",
		Hypothesis:  "오늘 회의는 3시에",
		Description: `"오늘" 추가 → 삽입 오류`,
	},
}
