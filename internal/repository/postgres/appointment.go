package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

const appointmentColumns = `id, patient_id, doctor_id, appointment_date, appointment_time, status, description, created_at`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, appointment_date, appointment_time,
			status, description, created_at
		) VALUES (
			:id, :patient_id, :doctor_id, :appointment_date, :appointment_time,
			:status, :description, :created_at
		)
	`
	_, err := r.namedExec(ctx, "appointment.create", query, appointment)
	return mapError(err, "create appointment", "appointment", appointment.ID)
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.get(ctx, "appointment.get", &appointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get appointment", "appointment", id)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = :patient_id, doctor_id = :doctor_id,
			appointment_date = :appointment_date, appointment_time = :appointment_time,
			status = :status, description = :description
		WHERE id = :id
	`
	n, err := r.namedExec(ctx, "appointment.update", query, appointment)
	if err != nil {
		return mapError(err, "update appointment", "appointment", appointment.ID)
	}
	if n == 0 {
		return errors.NotFound("appointment", appointment.ID)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.exec(ctx, "appointment.delete", `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete appointment", "appointment", id)
	}
	if n == 0 {
		return errors.NotFound("appointment", id)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.list(ctx, "appointment.list", `SELECT `+appointmentColumns+` FROM appointments
		ORDER BY appointment_date, appointment_time`)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return r.list(ctx, "appointment.list_by_patient", `SELECT `+appointmentColumns+` FROM appointments
		WHERE patient_id = $1 ORDER BY appointment_date, appointment_time`, patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return r.list(ctx, "appointment.list_by_doctor", `SELECT `+appointmentColumns+` FROM appointments
		WHERE doctor_id = $1 ORDER BY appointment_date, appointment_time`, doctorID)
}

func (r *appointmentRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	if err := r.selectAll(ctx, op, &appointments, query, args...); err != nil {
		return nil, mapError(err, "list appointments", "appointment", nil)
	}
	return appointments, nil
}

func (r *appointmentRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.exec(ctx, "appointment.delete_by_patient", `DELETE FROM appointments WHERE patient_id = $1`, patientID)
	return mapError(err, "delete patient appointments", "appointment", nil)
}

func (r *appointmentRepository) DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	_, err := r.exec(ctx, "appointment.delete_by_doctor", `DELETE FROM appointments WHERE doctor_id = $1`, doctorID)
	return mapError(err, "delete doctor appointments", "appointment", nil)
}
