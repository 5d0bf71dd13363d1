package exam

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/storage"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

type ExamService interface {
	Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Exam, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Exam, error)
	Upload(ctx context.Context, id uuid.UUID, r io.Reader, filename string) (*model.Exam, error)
}

type Service struct {
	tx    repository.Transactor
	repo  repository.ExamRepository
	files storage.FileStore
	now   func() time.Time
}

func NewService(tx repository.Transactor, repo repository.ExamRepository, files storage.FileStore) *Service {
	return &Service{
		tx:    tx,
		repo:  repo,
		files: files,
		now:   time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	if err := validator.Required(
		validator.Field{Name: "type", Value: req.Type},
		validator.Field{Name: "exam_date", Value: req.ExamDate},
		validator.Field{Name: "result", Value: req.Result},
		validator.Field{Name: "appointment_id", Value: req.AppointmentID},
	); err != nil {
		return nil, err
	}

	examDate, err := validator.ParseDate("exam_date", req.ExamDate)
	if err != nil {
		return nil, err
	}
	appointmentID, err := validator.ParseID("appointment_id", req.AppointmentID)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Base:          model.NewBase(s.now()),
		AppointmentID: appointmentID,
		Type:          strings.TrimSpace(req.Type),
		ExamDate:      examDate,
		Result:        strings.TrimSpace(req.Result),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, exam)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}
	return exam, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	if err := service.RequireValue("type", req.Type); err != nil {
		return nil, err
	}
	if err := service.RequireValue("result", req.Result); err != nil {
		return nil, err
	}

	var (
		examDate      *model.Date
		appointmentID *uuid.UUID
	)
	if req.ExamDate != nil {
		d, err := validator.ParseDate("exam_date", *req.ExamDate)
		if err != nil {
			return nil, err
		}
		examDate = &d
	}
	if req.AppointmentID != nil {
		aid, err := validator.ParseID("appointment_id", *req.AppointmentID)
		if err != nil {
			return nil, err
		}
		appointmentID = &aid
	}

	var exam *model.Exam
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		exam, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Type != nil {
			exam.Type = strings.TrimSpace(*req.Type)
		}
		if examDate != nil {
			exam.ExamDate = *examDate
		}
		if req.Result != nil {
			exam.Result = strings.TrimSpace(*req.Result)
		}
		if appointmentID != nil {
			exam.AppointmentID = *appointmentID
		}
		return s.repo.Update(ctx, exam)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}
	return exam, nil
}

// Delete removes the exam. Its attachment is removed once the delete commits.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var attachment *string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exam, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		attachment = exam.AttachmentPath
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	if attachment != nil {
		if err := s.files.Remove(ctx, *attachment); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", *attachment).Msg("failed to remove exam attachment")
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Exam, error) {
	return s.repo.List(ctx)
}

// ListByPatient returns the exams of every appointment of the patient.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Exam, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Upload stores the attachment under exams/<id>/ and records its path. Every
// upload gets its own file name, so a failed upload never touches the file the
// committed record points at. The new file is removed again if the record
// cannot be updated; the replaced one is removed once the update commits.
func (s *Service) Upload(ctx context.Context, id uuid.UUID, r io.Reader, filename string) (*model.Exam, error) {
	name := baseName(filename)
	if name == "" {
		return nil, errors.InvalidInput("no file selected")
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to upload exam attachment: %w", err)
	}

	saved, err := s.files.Save(ctx, r, path.Join("exams", id.String(), uuid.NewString()+"-"+name))
	if err != nil {
		return nil, errors.Persistence("store exam attachment", err)
	}

	var (
		exam     *model.Exam
		previous *string
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		exam, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		previous = exam.AttachmentPath
		exam.AttachmentPath = &saved
		return s.repo.Update(ctx, exam)
	})
	if err != nil {
		if rmErr := s.files.Remove(context.WithoutCancel(ctx), saved); rmErr != nil {
			log.Ctx(ctx).Warn().Err(rmErr).Str("path", saved).Msg("failed to remove orphaned attachment")
		}
		return nil, fmt.Errorf("failed to upload exam attachment: %w", err)
	}

	if previous != nil {
		if err := s.files.Remove(ctx, *previous); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("path", *previous).Msg("failed to remove replaced attachment")
		}
	}
	return exam, nil
}

// baseName strips any directory part a client may send with the filename.
func baseName(filename string) string {
	name := strings.TrimSpace(filepath.Base(strings.ReplaceAll(filename, `\`, "/")))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
