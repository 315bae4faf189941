package model

// EdgeRecord holds the outgoing links found on one fetched page.
// Links keeps extraction order and may contain duplicates. A page that could
// not be fetched or decoded is recorded with no links.
type EdgeRecord struct {
	// Source is the page the links were extracted from.
	Source string `json:"source"`

	// Links are the candidate page identifiers in the order they appeared.
	Links []string `json:"links"`
}

// CountLinks returns the total number of links across records.
func CountLinks(records []EdgeRecord) int {
	n := 0
	for _, r := range records {
		n += len(r.Links)
	}
	return n
}
