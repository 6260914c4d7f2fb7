package session

import "voice-assistant-client/internal/models"

// NoCursor is the Cursor value of an empty result set.
const NoCursor = -1

// ResultSet holds the most recent provider result list and a bounded
// pagination cursor over it. Sets are replaced wholesale on every push;
// repeated pushes are never merged, since each push is a fresh, complete
// query response.
type ResultSet struct {
	Records []models.ProviderRecord `json:"records"`
	Cursor  int                     `json:"cursor"`
}

// newResultSet discards any prior set and starts the cursor at the first
// record, or NoCursor when the list is empty.
func newResultSet(records []models.ProviderRecord) ResultSet {
	if len(records) == 0 {
		return ResultSet{Cursor: NoCursor}
	}
	return ResultSet{Records: records, Cursor: 0}
}

// navigate moves the cursor to index, clamped to [0, len-1]. Out-of-range
// requests are silently clamped so keyboard navigation can never leave an
// invalid cursor. Navigating an empty set is a no-op.
func navigate(s ResultSet, index int) ResultSet {
	if len(s.Records) == 0 {
		s.Cursor = NoCursor
		return s
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.Records)-1 {
		index = len(s.Records) - 1
	}
	s.Cursor = index
	return s
}

// Len returns the number of records in the set.
func (s ResultSet) Len() int {
	return len(s.Records)
}

// Current returns the record under the cursor, if any.
func (s ResultSet) Current() (models.ProviderRecord, bool) {
	if s.Cursor == NoCursor || s.Cursor < 0 || s.Cursor >= len(s.Records) {
		return models.ProviderRecord{}, false
	}
	return s.Records[s.Cursor], true
}
