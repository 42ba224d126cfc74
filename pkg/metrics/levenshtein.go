package metrics

// Operations counts the edits of an alignment.
type Operations struct {
	Substitutions int `json:"substitutions" yaml:"substitutions" msgpack:"substitutions"`
	Deletions     int `json:"deletions" yaml:"deletions" msgpack:"deletions"`
	Insertions    int `json:"insertions" yaml:"insertions" msgpack:"insertions"`
}

// Total returns S + D + I.
func (o Operations) Total() int {
	return o.Substitutions + o.Deletions + o.Insertions
}

// Alignment is the result of Levenshtein.
type Alignment struct {
	Distance   int        `json:"distance" yaml:"distance" msgpack:"distance"`
	Operations Operations `json:"operations" yaml:"operations" msgpack:"operations"`
}

// Levenshtein computes the edit distance that turns ref into hyp and breaks
// it down into substitutions, deletions and insertions.
//
// The full (len(ref)+1) x (len(hyp)+1) table is kept and backtracked from
// the bottom-right corner. When several paths are optimal, a match is
// preferred, then a substitution, then an insertion, then a deletion, so the
// breakdown is deterministic and always sums to Distance.
func Levenshtein[T comparable](ref, hyp []T) Alignment {
	m, n := len(ref), len(hyp)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}
			dp[i][j] = min(
				dp[i-1][j]+1,      // deletion
				dp[i][j-1]+1,      // insertion
				dp[i-1][j-1]+cost, // substitution or match
			)
		}
	}

	var ops Operations
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1] && dp[i][j] == dp[i-1][j-1]:
			i--
			j--
		case i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+1:
			ops.Substitutions++
			i--
			j--
		case j > 0 && dp[i][j] == dp[i][j-1]+1:
			ops.Insertions++
			j--
		default:
			ops.Deletions++
			i--
		}
	}

	return Alignment{Distance: dp[m][n], Operations: ops}
}
