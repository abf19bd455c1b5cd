package model

// DoctorSummary врач из ответа GET /api/doctors/specialization/{spec}
type DoctorSummary struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Qualification     string `json:"qualification,omitempty"`
	Specialization    string `json:"specialization"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	YearsOfExperience *int   `json:"yearsOfExperience,omitempty"`
	Email             string `json:"email,omitempty"`
}

// DisplayLabel подпись врача в списке: "name (qualification-or-specialization)"
func (d DoctorSummary) DisplayLabel() string {
	detail := d.Qualification
	if detail == "" {
		detail = d.Specialization
	}
	return d.Name + " (" + detail + ")"
}
