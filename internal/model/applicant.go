package model

// Applicant is a unique person. Phone is stored in canonical international format and is
// unique across applicants when non-empty. Fields are written once at creation and never updated.
type Applicant struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	LaborID  string `json:"labor_id"`
}

// DedupKey identifies the person when collapsing search results: phone, else labor id, else name.
func (a Applicant) DedupKey() string {
	switch {
	case a.Phone != "":
		return a.Phone
	case a.LaborID != "":
		return a.LaborID
	default:
		return a.FullName
	}
}
