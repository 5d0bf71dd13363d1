package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type PatientService interface {
	Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Patient, error)
	GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error)
	SearchByName(ctx context.Context, name string) ([]*model.Patient, error)
}

type Service struct {
	tx              repository.Transactor
	repo            repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	examRepo        repository.ExamRepository
	now             func() time.Time
}

func NewService(
	tx repository.Transactor,
	repo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	examRepo repository.ExamRepository,
) *Service {
	return &Service{
		tx:              tx,
		repo:            repo,
		appointmentRepo: appointmentRepo,
		examRepo:        examRepo,
		now:             time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := validator.Required(
		validator.Field{Name: "name", Value: req.Name},
		validator.Field{Name: "birth_date", Value: req.BirthDate},
		validator.Field{Name: "national_id", Value: req.NationalID},
	); err != nil {
		return nil, err
	}

	birthDate, err := validator.ParseDate("birth_date", req.BirthDate)
	if err != nil {
		return nil, err
	}
	nationalID, err := validator.NormalizeNationalID(req.NationalID)
	if err != nil {
		return nil, err
	}
	email, err := validator.OptionalEmail(req.Email)
	if err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Base:       model.NewBase(s.now()),
		Name:       strings.TrimSpace(req.Name),
		BirthDate:  birthDate,
		NationalID: nationalID,
		Phone:      validator.OptionalString(req.Phone),
		Email:      email,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.GetByNationalID(ctx, nationalID)
		if err := service.EnsureUnique("national_id", uuid.Nil, existing, err); err != nil {
			return err
		}
		return s.repo.Create(ctx, patient)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := service.RequireValue("name", req.Name); err != nil {
		return nil, err
	}

	var (
		birthDate  *model.Date
		nationalID *string
	)
	if req.BirthDate != nil {
		d, err := validator.ParseDate("birth_date", *req.BirthDate)
		if err != nil {
			return nil, err
		}
		birthDate = &d
	}
	if req.NationalID != nil {
		n, err := validator.NormalizeNationalID(*req.NationalID)
		if err != nil {
			return nil, err
		}
		nationalID = &n
	}
	var email *string
	if req.Email != nil {
		e, err := validator.OptionalEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		email = e
	}

	var patient *model.Patient
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		patient, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if nationalID != nil && *nationalID != patient.NationalID {
			existing, err := s.repo.GetByNationalID(ctx, *nationalID)
			if err := service.EnsureUnique("national_id", id, existing, err); err != nil {
				return err
			}
		}

		if req.Name != nil {
			patient.Name = strings.TrimSpace(*req.Name)
		}
		if birthDate != nil {
			patient.BirthDate = *birthDate
		}
		if nationalID != nil {
			patient.NationalID = *nationalID
		}
		if req.Phone != nil {
			patient.Phone = validator.OptionalString(*req.Phone)
		}
		if req.Email != nil {
			patient.Email = email
		}

		return s.repo.Update(ctx, patient)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// Delete removes the patient with their appointments and the exams of those appointments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Get(ctx, id); err != nil {
			return err
		}
		if err := s.examRepo.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		if err := s.appointmentRepo.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	normalized, err := validator.NormalizeNationalID(nationalID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByNationalID(ctx, normalized)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]*model.Patient, error) {
	term, err := validator.CheckNameTerm(name)
	if err != nil {
		return nil, err
	}
	return s.repo.SearchByName(ctx, term)
}
