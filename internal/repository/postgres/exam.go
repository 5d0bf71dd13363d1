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

const examColumns = `e.id, e.appointment_id, e.type, e.exam_date, e.result, e.attachment_path, e.created_at`

type examRepository struct {
	BaseRepository
}

func NewExamRepository(db *sqlx.DB, m *metrics.Metrics) repository.ExamRepository {
	return &examRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *examRepository) Create(ctx context.Context, exam *model.Exam) error {
	query := `
		INSERT INTO exams (id, appointment_id, type, exam_date, result, attachment_path, created_at)
		VALUES (:id, :appointment_id, :type, :exam_date, :result, :attachment_path, :created_at)
	`
	_, err := r.namedExec(ctx, "exam.create", query, exam)
	return mapError(err, "create exam", "exam", exam.ID)
}

func (r *examRepository) Get(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	var exam model.Exam
	err := r.get(ctx, "exam.get", &exam, `SELECT `+examColumns+` FROM exams e WHERE e.id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get exam", "exam", id)
	}
	return &exam, nil
}

func (r *examRepository) Update(ctx context.Context, exam *model.Exam) error {
	query := `
		UPDATE exams
		SET appointment_id = :appointment_id, type = :type, exam_date = :exam_date,
			result = :result, attachment_path = :attachment_path
		WHERE id = :id
	`
	n, err := r.namedExec(ctx, "exam.update", query, exam)
	if err != nil {
		return mapError(err, "update exam", "exam", exam.ID)
	}
	if n == 0 {
		return errors.NotFound("exam", exam.ID)
	}
	return nil
}

func (r *examRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.exec(ctx, "exam.delete", `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete exam", "exam", id)
	}
	if n == 0 {
		return errors.NotFound("exam", id)
	}
	return nil
}

func (r *examRepository) List(ctx context.Context) ([]*model.Exam, error) {
	exams := []*model.Exam{}
	err := r.selectAll(ctx, "exam.list", &exams, `SELECT `+examColumns+` FROM exams e ORDER BY e.exam_date DESC`)
	if err != nil {
		return nil, mapError(err, "list exams", "exam", nil)
	}
	return exams, nil
}

func (r *examRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Exam, error) {
	query := `
		SELECT ` + examColumns + `
		FROM exams e
		JOIN appointments a ON a.id = e.appointment_id
		WHERE a.patient_id = $1
		ORDER BY e.exam_date DESC
	`
	exams := []*model.Exam{}
	if err := r.selectAll(ctx, "exam.list_by_patient", &exams, query, patientID); err != nil {
		return nil, mapError(err, "list patient exams", "exam", nil)
	}
	return exams, nil
}

func (r *examRepository) DeleteByAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	_, err := r.exec(ctx, "exam.delete_by_appointment",
		`DELETE FROM exams WHERE appointment_id = $1`, appointmentID)
	return mapError(err, "delete appointment exams", "exam", nil)
}

func (r *examRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	_, err := r.exec(ctx, "exam.delete_by_patient", `
		DELETE FROM exams
		WHERE appointment_id IN (SELECT id FROM appointments WHERE patient_id = $1)`, patientID)
	return mapError(err, "delete patient exams", "exam", nil)
}

func (r *examRepository) DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	_, err := r.exec(ctx, "exam.delete_by_doctor", `
		DELETE FROM exams
		WHERE appointment_id IN (SELECT id FROM appointments WHERE doctor_id = $1)`, doctorID)
	return mapError(err, "delete doctor exams", "exam", nil)
}
