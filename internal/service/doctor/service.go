package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type DoctorService interface {
	Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Doctor, error)
	GetByNationalID(ctx context.Context, nationalID string) (*model.Doctor, error)
	GetByRegistrationNumber(ctx context.Context, registration string) (*model.Doctor, error)
	SearchByName(ctx context.Context, name string) ([]*model.Doctor, error)
	FilterBySpecialty(ctx context.Context, specialty string) ([]*model.Doctor, error)
}

type Service struct {
	tx              repository.Transactor
	repo            repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	examRepo        repository.ExamRepository
	now             func() time.Time
}

func NewService(
	tx repository.Transactor,
	repo repository.DoctorRepository,
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

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := validator.Required(
		validator.Field{Name: "name", Value: req.Name},
		validator.Field{Name: "registration_number", Value: req.RegistrationNumber},
		validator.Field{Name: "specialty", Value: req.Specialty},
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

	doctor := &model.Doctor{
		Base:               model.NewBase(s.now()),
		Name:               strings.TrimSpace(req.Name),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Specialty:          strings.TrimSpace(req.Specialty),
		BirthDate:          birthDate,
		NationalID:         nationalID,
		Phone:              validator.OptionalString(req.Phone),
		Email:              email,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUnique(ctx, uuid.Nil, doctor.NationalID, doctor.RegistrationNumber); err != nil {
			return err
		}
		return s.repo.Create(ctx, doctor)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return doctor, nil
}

// ensureUnique checks national ID and registration number against other
// doctors. Empty values are skipped.
func (s *Service) ensureUnique(ctx context.Context, self uuid.UUID, nationalID, registration string) error {
	if nationalID != "" {
		existing, err := s.repo.GetByNationalID(ctx, nationalID)
		if err := service.EnsureUnique("national_id", self, existing, err); err != nil {
			return err
		}
	}
	if registration != "" {
		existing, err := s.repo.GetByRegistrationNumber(ctx, registration)
		if err := service.EnsureUnique("registration_number", self, existing, err); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if err := service.RequireValue("name", req.Name); err != nil {
		return nil, err
	}
	if err := service.RequireValue("registration_number", req.RegistrationNumber); err != nil {
		return nil, err
	}
	if err := service.RequireValue("specialty", req.Specialty); err != nil {
		return nil, err
	}

	var (
		birthDate  *model.Date
		nationalID string
		email      *string
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
		nationalID = n
	}
	if req.Email != nil {
		e, err := validator.OptionalEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		email = e
	}

	var doctor *model.Doctor
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		doctor, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}

		registration := ""
		if req.RegistrationNumber != nil {
			registration = strings.TrimSpace(*req.RegistrationNumber)
		}
		if err := s.ensureUnique(ctx, id, nationalID, registration); err != nil {
			return err
		}

		if req.Name != nil {
			doctor.Name = strings.TrimSpace(*req.Name)
		}
		if registration != "" {
			doctor.RegistrationNumber = registration
		}
		if req.Specialty != nil {
			doctor.Specialty = strings.TrimSpace(*req.Specialty)
		}
		if birthDate != nil {
			doctor.BirthDate = *birthDate
		}
		if nationalID != "" {
			doctor.NationalID = nationalID
		}
		if req.Phone != nil {
			doctor.Phone = validator.OptionalString(*req.Phone)
		}
		if req.Email != nil {
			doctor.Email = email
		}

		return s.repo.Update(ctx, doctor)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return doctor, nil
}

// Delete removes the doctor with their appointments and the exams of those appointments.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Get(ctx, id); err != nil {
			return err
		}
		if err := s.examRepo.DeleteByDoctor(ctx, id); err != nil {
			return err
		}
		if err := s.appointmentRepo.DeleteByDoctor(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByNationalID(ctx context.Context, nationalID string) (*model.Doctor, error) {
	normalized, err := validator.NormalizeNationalID(nationalID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByNationalID(ctx, normalized)
}

func (s *Service) GetByRegistrationNumber(ctx context.Context, registration string) (*model.Doctor, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, errors.MissingField("registration_number")
	}
	return s.repo.GetByRegistrationNumber(ctx, registration)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]*model.Doctor, error) {
	term, err := validator.CheckNameTerm(name)
	if err != nil {
		return nil, err
	}
	return s.repo.SearchByName(ctx, term)
}

// FilterBySpecialty matches doctors whose specialty contains the term. An
// empty result is reported as NotFound.
func (s *Service) FilterBySpecialty(ctx context.Context, specialty string) ([]*model.Doctor, error) {
	term, err := validator.CheckSpecialtyTerm(specialty)
	if err != nil {
		return nil, err
	}
	doctors, err := s.repo.ListBySpecialty(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, errors.NotFound("doctor with specialty", term)
	}
	return doctors, nil
}
