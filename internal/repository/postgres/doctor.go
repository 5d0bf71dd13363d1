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

const doctorColumns = `id, name, registration_number, specialty, birth_date, national_id, phone, email, created_at`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB, m *metrics.Metrics) repository.DoctorRepository {
	return &doctorRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, name, registration_number, specialty, birth_date,
			national_id, phone, email, created_at
		) VALUES (
			:id, :name, :registration_number, :specialty, :birth_date,
			:national_id, :phone, :email, :created_at
		)
	`
	_, err := r.namedExec(ctx, "doctor.create", query, doctor)
	return mapError(err, "create doctor", "doctor", doctor.ID)
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.get(ctx, "doctor.get", &doctor, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	if err != nil {
		return nil, mapError(err, "get doctor", "doctor", id)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = :name, registration_number = :registration_number, specialty = :specialty,
			birth_date = :birth_date, national_id = :national_id, phone = :phone, email = :email
		WHERE id = :id
	`
	n, err := r.namedExec(ctx, "doctor.update", query, doctor)
	if err != nil {
		return mapError(err, "update doctor", "doctor", doctor.ID)
	}
	if n == 0 {
		return errors.NotFound("doctor", doctor.ID)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.exec(ctx, "doctor.delete", `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete doctor", "doctor", id)
	}
	if n == 0 {
		return errors.NotFound("doctor", id)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	err := r.selectAll(ctx, "doctor.list", &doctors, `SELECT `+doctorColumns+` FROM doctors ORDER BY name`)
	if err != nil {
		return nil, mapError(err, "list doctors", "doctor", nil)
	}
	return doctors, nil
}

func (r *doctorRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.get(ctx, "doctor.get_by_national_id", &doctor,
		`SELECT `+doctorColumns+` FROM doctors WHERE national_id = $1`, nationalID)
	if err != nil {
		return nil, mapError(err, "get doctor", "doctor with national ID", nationalID)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByRegistrationNumber(ctx context.Context, registration string) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.get(ctx, "doctor.get_by_registration", &doctor,
		`SELECT `+doctorColumns+` FROM doctors WHERE registration_number = $1`, registration)
	if err != nil {
		return nil, mapError(err, "get doctor", "doctor with registration number", registration)
	}
	return &doctor, nil
}

func (r *doctorRepository) SearchByName(ctx context.Context, term string) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	err := r.selectAll(ctx, "doctor.search", &doctors,
		`SELECT `+doctorColumns+` FROM doctors WHERE name ILIKE $1 ORDER BY name`, likePattern(term))
	if err != nil {
		return nil, mapError(err, "search doctors", "doctor", nil)
	}
	return doctors, nil
}

func (r *doctorRepository) ListBySpecialty(ctx context.Context, term string) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	err := r.selectAll(ctx, "doctor.list_by_specialty", &doctors,
		`SELECT `+doctorColumns+` FROM doctors WHERE specialty ILIKE $1 ORDER BY name`, likePattern(term))
	if err != nil {
		return nil, mapError(err, "filter doctors", "doctor", nil)
	}
	return doctors, nil
}
