// Package related ranks articles and works by similarity to a reference record.
package related

// Score weights.
const (
	CategoryWeight   = 10
	TagWeight        = 3
	TechnologyWeight = 2
)

// TagSet is a set of tag strings. Tags compare exactly; the empty string is
// never a member.
type TagSet map[string]struct{}

// NewTagSet collapses tags into a set, dropping empty entries.
func NewTagSet(tags []string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Overlap counts the members shared by s and other.
func (s TagSet) Overlap(other TagSet) int {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	n := 0
	for t := range small {
		if large.Has(t) {
			n++
		}
	}
	return n
}

// SameCategory reports whether two main categories match. An absent category
// never matches.
func SameCategory(a, b string) bool {
	return a != "" && a == b
}

// Score is the article similarity score of a candidate.
func Score(sameCategory bool, ref, cand TagSet) int {
	score := TagWeight * ref.Overlap(cand)
	if sameCategory {
		score += CategoryWeight
	}
	return score
}

// WorkScore adds TechnologyWeight to Score for every reference tag found among
// the candidate's technologies. A string in both the candidate's tags
// and technologies counts toward both terms.
func WorkScore(sameCategory bool, ref, candTags, candTech TagSet) int {
	return Score(sameCategory, ref, candTags) + TechnologyWeight*ref.Overlap(candTech)
}
