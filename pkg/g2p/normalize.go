package g2p

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	sinoDigits = [...]string{"", "일", "이", "삼", "사", "오", "육", "칠", "팔", "구"}
	smallUnits = [...]string{"", "십", "백", "천"}
	largeUnits = [...]string{"", "만", "억", "조", "경"}
)

// NumberToKorean spells n with Sino-Korean numerals, grouping digits by
// four (만, 억, 조, 경). Inside a group, 일 is dropped before 십, 백 and 천,
// so 10 is 십 and 1100 is 천백, but 10000 is 일만. Zero is 영 and negative
// numbers are prefixed with 마이너스.
func NumberToKorean(n int64) string {
	if n == 0 {
		return "영"
	}
	if n < 0 {
		// -MinInt64 overflows; spell its magnitude from the unsigned value.
		return "마이너스 " + spellUnsigned(uint64(-(n+1))+1)
	}
	return spellUnsigned(uint64(n))
}

func spellUnsigned(n uint64) string {
	var groups []string
	for unit := 0; n > 0; unit++ {
		chunk := int(n % 10000)
		n /= 10000
		if chunk == 0 {
			continue
		}
		groups = append(groups, spellGroup(chunk)+largeUnits[unit])
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
	}
	return b.String()
}

// spellGroup spells 1..9999.
func spellGroup(chunk int) string {
	var b strings.Builder
	for place := 3; place >= 0; place-- {
		pow := 1
		for range place {
			pow *= 10
		}
		d := chunk / pow % 10
		if d == 0 {
			continue
		}
		if d != 1 || place == 0 {
			b.WriteString(sinoDigits[d])
		}
		b.WriteString(smallUnits[place])
	}
	return b.String()
}

type numberPattern struct {
	re     *regexp.Regexp
	suffix string
	clean  func(string) string
}

// Counters are rewritten before bare numbers so they keep the Sino-Korean
// reading. An amount needs a leading ₩ or a trailing 원.
var numberPatterns = []numberPattern{
	{re: regexp.MustCompile(`(\d{4})년`), suffix: "년"},
	{re: regexp.MustCompile(`(\d{1,2})월`), suffix: "월"},
	{re: regexp.MustCompile(`(\d{1,2})일`), suffix: "일"},
	{re: regexp.MustCompile(`(\d{1,2})시`), suffix: "시"},
	{re: regexp.MustCompile(`(\d{1,2})분`), suffix: "분"},
	{re: regexp.MustCompile(`₩(\d[\d,]*)원?|(\d[\d,]*)원`), suffix: "원", clean: stripCommas},
	{re: regexp.MustCompile(`(?i)(\d+)km`), suffix: "킬로미터"},
	{re: regexp.MustCompile(`\b(\d+)\b`)},
}

func stripCommas(s string) string { return strings.ReplaceAll(s, ",", "") }

// Normalize spells out the digits in text for speech synthesis. Years
// (four digits followed by 년), months, days, hours, minutes, won amounts
// (₩50,000 or 5000원) and kilometres are handled first, then any remaining
// standalone number. Numbers too large for int64 are left as digits.
func Normalize(text string) string {
	for _, p := range numberPatterns {
		text = p.re.ReplaceAllStringFunc(text, func(m string) string {
			var digits string
			for _, g := range p.re.FindStringSubmatch(m)[1:] {
				if g != "" {
					digits = g
					break
				}
			}
			if p.clean != nil {
				digits = p.clean(digits)
			}
			n, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				return m
			}
			return NumberToKorean(n) + p.suffix
		})
	}
	return text
}
