package model

// Doctor is a licensed physician. RegistrationNumber is the professional
// license (CRM) and is unique per doctor.
type Doctor struct {
	Base
	Name               string  `db:"name" json:"name"`
	RegistrationNumber string  `db:"registration_number" json:"registration_number"`
	Specialty          string  `db:"specialty" json:"specialty"`
	BirthDate          Date    `db:"birth_date" json:"birth_date"`
	NationalID         string  `db:"national_id" json:"national_id"`
	Phone              *string `db:"phone" json:"phone"`
	Email              *string `db:"email" json:"email"`
}

type CreateDoctorRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	Specialty          string `json:"specialty"`
	BirthDate          string `json:"birth_date"`
	NationalID         string `json:"national_id"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
}

type UpdateDoctorRequest struct {
	Name               *string `json:"name"`
	RegistrationNumber *string `json:"registration_number"`
	Specialty          *string `json:"specialty"`
	BirthDate          *string `json:"birth_date"`
	NationalID         *string `json:"national_id"`
	Phone              *string `json:"phone"`
	Email              *string `json:"email"`
}
