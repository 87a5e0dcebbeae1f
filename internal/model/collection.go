package model

// Categories returns AllCategories followed by every distinct category in
// first-seen order.
func Categories(quotes []Quote) []string {
	seen := make(map[string]bool)
	result := []string{AllCategories}
	for _, q := range quotes {
		if seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		result = append(result, q.Category)
	}
	return result
}

// Filter returns the quotes whose category equals selection.
// AllCategories returns a copy of the whole collection.
func Filter(quotes []Quote, selection string) []Quote {
	if selection == AllCategories {
		return Clone(quotes)
	}

	result := []Quote{}
	for _, q := range quotes {
		if q.Category == selection {
			result = append(result, q)
		}
	}
	return result
}

// Merge appends every remote quote whose text is not already present in local.
// Membership is checked against local as it was when the merge started, so
// the local prefix is never reordered and existing texts always win.
// Returns the merged collection and how many quotes were appended.
func Merge(local, remote []Quote) ([]Quote, int) {
	texts := make(map[string]struct{}, len(local))
	for _, q := range local {
		texts[q.Text] = struct{}{}
	}

	merged := make([]Quote, len(local), len(local)+len(remote))
	copy(merged, local)

	added := 0
	for _, r := range remote {
		if _, ok := texts[r.Text]; ok {
			continue
		}
		merged = append(merged, r)
		added++
	}
	return merged, added
}

// ContainsText reports whether any quote has exactly the given text.
func ContainsText(quotes []Quote, text string) bool {
	for _, q := range quotes {
		if q.Text == text {
			return true
		}
	}
	return false
}

// Clone returns a copy of quotes that is never nil.
func Clone(quotes []Quote) []Quote {
	result := make([]Quote, len(quotes))
	copy(result, quotes)
	return result
}
