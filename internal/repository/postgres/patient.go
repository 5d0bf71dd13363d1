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

const patientColumns = `id, name, birth_date, national_id, phone, email, created_at`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB, m *metrics.Metrics) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, name, birth_date, national_id, phone, email, created_at)
		VALUES (:id, :name, :birth_date, :national_id, :phone, :email, :created_at)
	`
	_, err := r.namedExec(ctx, "patient.create", query, patient)
	return mapError(err, "create patient", "patient", patient.ID)
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	err := r.get(ctx, "patient.get", &patient, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get patient", "patient", id)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = :name, birth_date = :birth_date, national_id = :national_id,
			phone = :phone, email = :email
		WHERE id = :id
	`
	n, err := r.namedExec(ctx, "patient.update", query, patient)
	if err != nil {
		return mapError(err, "update patient", "patient", patient.ID)
	}
	if n == 0 {
		return errors.NotFound("patient", patient.ID)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.exec(ctx, "patient.delete", `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete patient", "patient", id)
	}
	if n == 0 {
		return errors.NotFound("patient", id)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	err := r.selectAll(ctx, "patient.list", &patients, `SELECT `+patientColumns+` FROM patients ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "list patients", "patient", nil)
	}
	return patients, nil
}

func (r *patientRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	var patient model.Patient
	err := r.get(ctx, "patient.get_by_national_id", &patient,
		`SELECT `+patientColumns+` FROM patients WHERE national_id = $1`, nationalID)
	if err != nil {
		return nil, mapError(err, "get patient", "patient with national ID", nationalID)
	}
	return &patient, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, term string) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	err := r.selectAll(ctx, "patient.search", &patients,
		`SELECT `+patientColumns+` FROM patients WHERE name ILIKE $1 ORDER BY name`, likePattern(term))
	if err != nil {
		return nil, mapError(err, "search patients", "patient", nil)
	}
	return patients, nil
}
