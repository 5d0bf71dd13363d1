package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository/mocks"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *mocks.AppointmentRepository, *mocks.ExamRepository) {
	repo := &mocks.AppointmentRepository{}
	exams := &mocks.ExamRepository{}
	t.Cleanup(func() {
		repo.AssertExpectations(t)
		exams.AssertExpectations(t)
	})
	return NewService(&mocks.Transactor{}, repo, exams), repo, exams
}

func TestCreateDefaultsToScheduled(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	patientID, doctorID := uuid.New(), uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(a *model.Appointment) bool {
		return a.PatientID == patientID && a.DoctorID == doctorID
	})).Return(nil)

	appointment, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		PatientID: patientID.String(),
		DoctorID:  doctorID.String(),
		Date:      "10-06-2024",
		Time:      "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, appointment.Status)
	assert.Equal(t, "2024-06-10", appointment.Date.String())
	assert.Equal(t, "14:30:00", appointment.Time.String())
	assert.Nil(t, appointment.Description)
}

func TestCreateValidation(t *testing.T) {
	valid := func() *model.CreateAppointmentRequest {
		return &model.CreateAppointmentRequest{
			PatientID: uuid.NewString(),
			DoctorID:  uuid.NewString(),
			Date:      "10-06-2024",
			Time:      "14:30",
		}
	}
	tests := []struct {
		name   string
		mutate func(*model.CreateAppointmentRequest)
		code   errors.ErrorCode
	}{
		{"missing date", func(r *model.CreateAppointmentRequest) { r.Date = "" }, errors.ErrMissingField},
		{"bad time", func(r *model.CreateAppointmentRequest) { r.Time = "2pm" }, errors.ErrInvalidFormat},
		{"bad patient id", func(r *model.CreateAppointmentRequest) { r.PatientID = "7" }, errors.ErrInvalidFormat},
		{"unknown status", func(r *model.CreateAppointmentRequest) { r.Status = "postponed" }, errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			req := valid()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCreateWithUnknownPatient(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(errors.Integrity(&pq.Error{Code: "23503"}))

	_, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		PatientID: uuid.NewString(),
		DoctorID:  uuid.NewString(),
		Date:      "10-06-2024",
		Time:      "14:30",
	})
	assert.True(t, errors.HasCode(err, errors.ErrIntegrity))
}

func TestUpdateAppliesOnlyGivenFields(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	id := uuid.New()
	description := "follow-up"
	existing := &model.Appointment{
		Base:        model.Base{ID: id},
		Status:      model.AppointmentStatusScheduled,
		Description: &description,
		Date:        model.NewDate(2024, 6, 10),
	}

	status := "COMPLETED"
	blank := ""
	repo.On("Get", ctx, id).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	appointment, err := svc.Update(ctx, id, &model.UpdateAppointmentRequest{Status: &status, Description: &blank})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, appointment.Status)
	assert.Nil(t, appointment.Description)
	assert.Equal(t, "2024-06-10", appointment.Date.String())
}

func TestUpdateRejectsBadDateBeforeLookup(t *testing.T) {
	svc, repo, _ := newTestService(t)
	date := "2024-06-10"

	_, err := svc.Update(context.Background(), uuid.New(), &model.UpdateAppointmentRequest{Date: &date})
	assert.True(t, errors.HasCode(err, errors.ErrInvalidFormat))
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDeleteRemovesExamsFirst(t *testing.T) {
	svc, repo, exams := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	mock.InOrder(
		repo.On("Get", ctx, id).Return(&model.Appointment{Base: model.Base{ID: id}}, nil),
		exams.On("DeleteByAppointment", ctx, id).Return(nil),
		repo.On("Delete", ctx, id).Return(nil),
	)

	require.NoError(t, svc.Delete(ctx, id))
}

func TestDeleteMissingAppointment(t *testing.T) {
	svc, repo, exams := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	repo.On("Get", ctx, id).Return(nil, errors.NotFound("appointment", id))

	err := svc.Delete(ctx, id)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
	exams.AssertNotCalled(t, "DeleteByAppointment", mock.Anything, mock.Anything)
}
