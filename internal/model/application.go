package model

import "time"

// Application is one spreadsheet row: a registration of an applicant for a position on a date.
// Position is stored lower-cased. ApplicationDate carries a calendar date only (UTC midnight).
type Application struct {
	ID              int64     `json:"id"`
	ApplicantID     int64     `json:"applicant_id"`
	Position        string    `json:"position"`
	ApplicationDate time.Time `json:"application_date"`
	SourceFile      string    `json:"source_file"`
}

// ApplicationRecord pairs an application with the applicant that owns it.
type ApplicationRecord struct {
	Application Application
	Applicant   Applicant
}

// PositionCount is the number of applications recorded for one position.
type PositionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RecentActivity is a single recent application with the resolved applicant name.
// ApplicantName is empty when the referenced applicant no longer resolves.
type RecentActivity struct {
	ApplicationID   int64
	ApplicantName   string
	ApplicantFound  bool
	Position        string
	ApplicationDate time.Time
}
