package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// Transactor runs fn inside one transaction. The transaction travels in the
// context handed to fn, so every repository call made with that context joins
// it. A non-nil error from fn rolls the transaction back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Lookups return a NotFound *errors.AppError when no row matches. Store
// faults surface as IntegrityError or PersistenceError.
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Patient, error)
		GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error)
		SearchByName(ctx context.Context, term string) ([]*model.Patient, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
		GetByNationalID(ctx context.Context, nationalID string) (*model.Doctor, error)
		GetByRegistrationNumber(ctx context.Context, registration string) (*model.Doctor, error)
		SearchByName(ctx context.Context, term string) ([]*model.Doctor, error)
		ListBySpecialty(ctx context.Context, term string) ([]*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
		DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
		DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error
	}

	ExamRepository interface {
		Create(ctx context.Context, exam *model.Exam) error
		Get(ctx context.Context, id uuid.UUID) (*model.Exam, error)
		Update(ctx context.Context, exam *model.Exam) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Exam, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Exam, error)
		DeleteByAppointment(ctx context.Context, appointmentID uuid.UUID) error
		DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
		DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}
)
