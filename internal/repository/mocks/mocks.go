// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

// Transactor runs fn inline. Err, when set, is returned without running fn.
type Transactor struct {
	Calls int
	Err   error
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx)
}

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Patient); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*model.Patient); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PatientRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	args := m.Called(ctx, nationalID)
	if v, ok := args.Get(0).(*model.Patient); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PatientRepository) SearchByName(ctx context.Context, term string) ([]*model.Patient, error) {
	args := m.Called(ctx, term)
	if v, ok := args.Get(0).([]*model.Patient); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *DoctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Doctor); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	return m.Called(ctx, doctor).Error(0)
}

func (m *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *DoctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*model.Doctor); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Doctor, error) {
	args := m.Called(ctx, nationalID)
	if v, ok := args.Get(0).(*model.Doctor); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorRepository) GetByRegistrationNumber(ctx context.Context, registration string) (*model.Doctor, error) {
	args := m.Called(ctx, registration)
	if v, ok := args.Get(0).(*model.Doctor); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorRepository) SearchByName(ctx context.Context, term string) ([]*model.Doctor, error) {
	args := m.Called(ctx, term)
	if v, ok := args.Get(0).([]*model.Doctor); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorRepository) ListBySpecialty(ctx context.Context, term string) ([]*model.Doctor, error) {
	args := m.Called(ctx, term)
	if v, ok := args.Get(0).([]*model.Doctor); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Appointment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AppointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*model.Appointment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Appointment, error) {
	args := m.Called(ctx, patientID)
	if v, ok := args.Get(0).([]*model.Appointment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if v, ok := args.Get(0).([]*model.Appointment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AppointmentRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	return m.Called(ctx, patientID).Error(0)
}

func (m *AppointmentRepository) DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	return m.Called(ctx, doctorID).Error(0)
}

type ExamRepository struct {
	mock.Mock
}

func (m *ExamRepository) Create(ctx context.Context, exam *model.Exam) error {
	return m.Called(ctx, exam).Error(0)
}

func (m *ExamRepository) Get(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Exam); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExamRepository) Update(ctx context.Context, exam *model.Exam) error {
	return m.Called(ctx, exam).Error(0)
}

func (m *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ExamRepository) List(ctx context.Context) ([]*model.Exam, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*model.Exam); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExamRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Exam, error) {
	args := m.Called(ctx, patientID)
	if v, ok := args.Get(0).([]*model.Exam); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExamRepository) DeleteByAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	return m.Called(ctx, appointmentID).Error(0)
}

func (m *ExamRepository) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	return m.Called(ctx, patientID).Error(0)
}

func (m *ExamRepository) DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	return m.Called(ctx, doctorID).Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if v, ok := args.Get(0).(*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if v, ok := args.Get(0).(*model.User); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ repository.Transactor            = (*Transactor)(nil)
	_ repository.PatientRepository     = (*PatientRepository)(nil)
	_ repository.DoctorRepository      = (*DoctorRepository)(nil)
	_ repository.AppointmentRepository = (*AppointmentRepository)(nil)
	_ repository.ExamRepository        = (*ExamRepository)(nil)
	_ repository.UserRepository        = (*UserRepository)(nil)
)
