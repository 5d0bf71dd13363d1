package model

// Patient is a person receiving care at the clinic.
type Patient struct {
	Base
	Name       string  `db:"name" json:"name"`
	BirthDate  Date    `db:"birth_date" json:"birth_date"`
	NationalID string  `db:"national_id" json:"national_id"`
	Phone      *string `db:"phone" json:"phone"`
	Email      *string `db:"email" json:"email"`
}

type CreatePatientRequest struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// UpdatePatientRequest holds the fields a patient update may change.
// Nil fields are left untouched.
type UpdatePatientRequest struct {
	Name       *string `json:"name"`
	BirthDate  *string `json:"birth_date"`
	NationalID *string `json:"national_id"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}
