package model

import "strings"

// Roster column headers. The sheet is maintained by hand, so lookups
// tolerate header case differences.
const (
	RosterColFirstName = "First Name"
	RosterColLastName  = "Last Name"
	RosterColUsername  = "Username"
	RosterColEmail     = "Email"
	RosterColStatus    = "Status"
)

// RosterRecord is one row of the member roster, keyed by column header.
type RosterRecord map[string]string

// Get returns the trimmed value of the given column, matching the header
// case-insensitively.
func (x RosterRecord) Get(column string) string {
	for k, v := range x {
		if strings.EqualFold(strings.TrimSpace(k), column) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Username returns the chat username column.
func (x RosterRecord) Username() string {
	return x.Get(RosterColUsername)
}

// Status returns the membership status column.
func (x RosterRecord) Status() string {
	return x.Get(RosterColStatus)
}

// FullName joins the first and last name columns.
func (x RosterRecord) FullName() string {
	return strings.TrimSpace(x.Get(RosterColFirstName) + " " + x.Get(RosterColLastName))
}

// Email returns the email column.
func (x RosterRecord) Email() string {
	return x.Get(RosterColEmail)
}
