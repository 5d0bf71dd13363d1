package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	Base
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID    uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	Date        Date              `db:"appointment_date" json:"date"`
	Time        ClockTime         `db:"appointment_time" json:"time"`
	Status      AppointmentStatus `db:"status" json:"status"`
	Description *string           `db:"description" json:"description"`
}

type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type UpdateAppointmentRequest struct {
	PatientID   *string `json:"patient_id"`
	DoctorID    *string `json:"doctor_id"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}
