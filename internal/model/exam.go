package model

import (
	"github.com/google/uuid"
)

// Exam is a diagnostic exam ordered during an appointment. The owning
// patient is reached through the appointment.
type Exam struct {
	Base
	AppointmentID  uuid.UUID `db:"appointment_id" json:"appointment_id"`
	Type           string    `db:"type" json:"type"`
	ExamDate       Date      `db:"exam_date" json:"exam_date"`
	Result         string    `db:"result" json:"result"`
	AttachmentPath *string   `db:"attachment_path" json:"attachment_path"`
}

type CreateExamRequest struct {
	AppointmentID string `json:"appointment_id"`
	Type          string `json:"type"`
	ExamDate      string `json:"exam_date"`
	Result        string `json:"result"`
}

type UpdateExamRequest struct {
	AppointmentID *string `json:"appointment_id"`
	Type          *string `json:"type"`
	ExamDate      *string `json:"exam_date"`
	Result        *string `json:"result"`
}
