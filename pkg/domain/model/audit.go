package model

// WorksheetAudit classifies one worksheet's roster records against the
// chat workspace membership. Every record lands in exactly one bucket.
type WorksheetAudit struct {
	Worksheet     string
	Found         []RosterRecord
	Missing       []RosterRecord
	EmptyUsername []RosterRecord
	Total         int
}

// RosterAudit aggregates the audit over all worksheets.
type RosterAudit struct {
	Worksheets []WorksheetAudit
}

// TotalFound returns the number of roster records found in chat.
func (x *RosterAudit) TotalFound() int {
	var n int
	for _, w := range x.Worksheets {
		n += len(w.Found)
	}
	return n
}

// TotalMissing returns the number of roster records absent from chat.
func (x *RosterAudit) TotalMissing() int {
	var n int
	for _, w := range x.Worksheets {
		n += len(w.Missing)
	}
	return n
}

// TotalEmpty returns the number of records with no username entered.
func (x *RosterAudit) TotalEmpty() int {
	var n int
	for _, w := range x.Worksheets {
		n += len(w.EmptyUsername)
	}
	return n
}

// TotalRecords returns the number of records processed.
func (x *RosterAudit) TotalRecords() int {
	var n int
	for _, w := range x.Worksheets {
		n += w.Total
	}
	return n
}
