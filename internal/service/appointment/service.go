package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type AppointmentService interface {
	Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error)
}

// Service manages appointments. Patient and doctor references are enforced
// by the store's foreign keys and surface as integrity errors.
type Service struct {
	tx       repository.Transactor
	repo     repository.AppointmentRepository
	examRepo repository.ExamRepository
	now      func() time.Time
}

func NewService(tx repository.Transactor, repo repository.AppointmentRepository, examRepo repository.ExamRepository) *Service {
	return &Service{
		tx:       tx,
		repo:     repo,
		examRepo: examRepo,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := validator.Required(
		validator.Field{Name: "date", Value: req.Date},
		validator.Field{Name: "time", Value: req.Time},
		validator.Field{Name: "patient_id", Value: req.PatientID},
		validator.Field{Name: "doctor_id", Value: req.DoctorID},
	); err != nil {
		return nil, err
	}

	date, err := validator.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	clock, err := validator.ParseTime("time", req.Time)
	if err != nil {
		return nil, err
	}
	patientID, err := validator.ParseID("patient_id", req.PatientID)
	if err != nil {
		return nil, err
	}
	doctorID, err := validator.ParseID("doctor_id", req.DoctorID)
	if err != nil {
		return nil, err
	}
	status, err := validator.CheckStatus(req.Status)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		Base:        model.NewBase(s.now()),
		PatientID:   patientID,
		DoctorID:    doctorID,
		Date:        date,
		Time:        clock,
		Status:      status,
		Description: validator.OptionalString(req.Description),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, appointment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	changes, err := parseUpdate(req)
	if err != nil {
		return nil, err
	}

	var appointment *model.Appointment
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		appointment, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		changes.apply(appointment)
		return s.repo.Update(ctx, appointment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

// Delete removes the appointment and its exams.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.Get(ctx, id); err != nil {
			return err
		}
		if err := s.examRepo.DeleteByAppointment(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// update holds a parsed UpdateAppointmentRequest.
type update struct {
	date        *model.Date
	clock       *model.ClockTime
	status      *model.AppointmentStatus
	patientID   *uuid.UUID
	doctorID    *uuid.UUID
	description *string
	setDesc     bool
}

func parseUpdate(req *model.UpdateAppointmentRequest) (*update, error) {
	u := &update{}
	if req.Date != nil {
		d, err := validator.ParseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		u.date = &d
	}
	if req.Time != nil {
		t, err := validator.ParseTime("time", *req.Time)
		if err != nil {
			return nil, err
		}
		u.clock = &t
	}
	if req.Status != nil {
		st, err := validator.CheckStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		u.status = &st
	}
	if req.PatientID != nil {
		id, err := validator.ParseID("patient_id", *req.PatientID)
		if err != nil {
			return nil, err
		}
		u.patientID = &id
	}
	if req.DoctorID != nil {
		id, err := validator.ParseID("doctor_id", *req.DoctorID)
		if err != nil {
			return nil, err
		}
		u.doctorID = &id
	}
	if req.Description != nil {
		u.setDesc = true
		u.description = validator.OptionalString(*req.Description)
	}
	return u, nil
}

func (u *update) apply(a *model.Appointment) {
	if u.date != nil {
		a.Date = *u.date
	}
	if u.clock != nil {
		a.Time = *u.clock
	}
	if u.status != nil {
		a.Status = *u.status
	}
	if u.patientID != nil {
		a.PatientID = *u.patientID
	}
	if u.doctorID != nil {
		a.DoctorID = *u.doctorID
	}
	if u.setDesc {
		a.Description = u.description
	}
}
