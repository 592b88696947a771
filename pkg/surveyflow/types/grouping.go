package types

// BaseContentID strips a single trailing lowercase letter from a content id
// (e.g. "q5a" and "q5b" both map to "q5"). Ids without such a suffix are
// returned unchanged.
func BaseContentID(id string) string {
	if len(id) > 1 {
		last := id[len(id)-1]
		if last >= 'a' && last <= 'z' {
			return id[:len(id)-1]
		}
	}
	return id
}

// GroupAt computes the extent of the related-question group containing index
// i: consecutive records whose suffix-stripped base id matches. Returns the
// start index and the number of members. A record without related neighbours
// forms a group of size 1.
func GroupAt(questions []QuestionRecord, i int) (start int, size int) {
	if i < 0 || i >= len(questions) {
		return i, 0
	}
	base := BaseContentID(questions[i].ContentID)

	start = i
	for start > 0 && BaseContentID(questions[start-1].ContentID) == base {
		start--
	}

	end := i
	for end < len(questions)-1 && BaseContentID(questions[end+1].ContentID) == base {
		end++
	}

	return start, end - start + 1
}
