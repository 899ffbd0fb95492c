// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema names the tables and columns used in hand-written SQL.
*/
package schema

// ThemePreferenceTable represents the 'users.themepreference' table
type ThemePreferenceTable struct {
	Table      string
	VisitorID  string
	Explicit   string
	SystemDark string
	UpdatedAt  string
}

// ThemePreference is the schema definition for users.themepreference
var ThemePreference = ThemePreferenceTable{
	Table:      "users.themepreference",
	VisitorID:  "visitorid",
	Explicit:   "explicit",
	SystemDark: "systemdark",
	UpdatedAt:  "updatedat",
}
