package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository/mocks"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

type fixture struct {
	svc          *Service
	tx           *mocks.Transactor
	repo         *mocks.PatientRepository
	appointments *mocks.AppointmentRepository
	exams        *mocks.ExamRepository
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		tx:           &mocks.Transactor{},
		repo:         &mocks.PatientRepository{},
		appointments: &mocks.AppointmentRepository{},
		exams:        &mocks.ExamRepository{},
	}
	f.svc = NewService(f.tx, f.repo, f.appointments, f.exams)
	f.svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 123456789, time.UTC) }
	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.appointments.AssertExpectations(t)
		f.exams.AssertExpectations(t)
	})
	return f
}

func validCreate() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		Name:       " Ana Souza ",
		BirthDate:  "04-05-1990",
		NationalID: "123.456.789-00",
		Phone:      "11999999999",
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.On("GetByNationalID", ctx, "12345678900").Return(nil, errors.NotFound("patient", "12345678900"))
	f.repo.On("Create", ctx, mock.AnythingOfType("*model.Patient")).Return(nil)

	patient, err := f.svc.Create(ctx, validCreate())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, patient.ID)
	assert.Equal(t, "Ana Souza", patient.Name)
	assert.Equal(t, "12345678900", patient.NationalID)
	assert.Equal(t, "1990-05-04", patient.BirthDate.String())
	require.NotNil(t, patient.Phone)
	assert.Nil(t, patient.Email)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC), patient.CreatedAt)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestCreateDuplicateNationalIDWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.On("GetByNationalID", ctx, "12345678900").
		Return(&model.Patient{Base: model.Base{ID: uuid.New()}}, nil)

	_, err := f.svc.Create(ctx, validCreate())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrDuplicateValue))
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.CreatePatientRequest)
		code   errors.ErrorCode
	}{
		{"missing name", func(r *model.CreatePatientRequest) { r.Name = "  " }, errors.ErrMissingField},
		{"iso birth date", func(r *model.CreatePatientRequest) { r.BirthDate = "1990-05-04" }, errors.ErrInvalidFormat},
		{"short national id", func(r *model.CreatePatientRequest) { r.NationalID = "123" }, errors.ErrInvalidIdentifier},
		{"bad email", func(r *model.CreatePatientRequest) { r.Email = "ana" }, errors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validCreate()
			tt.mutate(req)

			_, err := f.svc.Create(context.Background(), req)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
			assert.Zero(t, f.tx.Calls)
		})
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.New()
	existing := &model.Patient{
		Base:       model.Base{ID: id},
		Name:       "Ana",
		NationalID: "12345678900",
		BirthDate:  model.NewDate(1990, time.May, 4),
	}

	name := "Ana Maria"
	email := "ana@clinic.com"
	f.repo.On("Get", ctx, id).Return(existing, nil)
	f.repo.On("Update", ctx, existing).Return(nil)

	patient, err := f.svc.Update(ctx, id, &model.UpdatePatientRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", patient.Name)
	assert.Equal(t, "ana@clinic.com", *patient.Email)
	assert.Equal(t, "12345678900", patient.NationalID)
}

func TestUpdateMissingPatientWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.New()

	name := "Ana"
	f.repo.On("Get", ctx, id).Return(nil, errors.NotFound("patient", id))

	_, err := f.svc.Update(ctx, id, &model.UpdatePatientRequest{Name: &name})
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	blank := " "

	_, err := f.svc.Update(context.Background(), uuid.New(), &model.UpdatePatientRequest{Name: &blank})
	assert.True(t, errors.HasCode(err, errors.ErrMissingField))
}

func TestUpdateNationalIDTakenByAnotherPatient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.New()

	taken := "98765432100"
	f.repo.On("Get", ctx, id).Return(&model.Patient{Base: model.Base{ID: id}, NationalID: "12345678900"}, nil)
	f.repo.On("GetByNationalID", ctx, taken).Return(&model.Patient{Base: model.Base{ID: uuid.New()}}, nil)

	_, err := f.svc.Update(ctx, id, &model.UpdatePatientRequest{NationalID: &taken})
	assert.True(t, errors.HasCode(err, errors.ErrDuplicateValue))
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteCascadesInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.New()

	mock.InOrder(
		f.repo.On("Get", ctx, id).Return(&model.Patient{Base: model.Base{ID: id}}, nil),
		f.exams.On("DeleteByPatient", ctx, id).Return(nil),
		f.appointments.On("DeleteByPatient", ctx, id).Return(nil),
		f.repo.On("Delete", ctx, id).Return(nil),
	)

	require.NoError(t, f.svc.Delete(ctx, id))
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.repo.On("Get", ctx, id).Return(&model.Patient{Base: model.Base{ID: id}}, nil).Once()
	f.exams.On("DeleteByPatient", ctx, id).Return(nil).Once()
	f.appointments.On("DeleteByPatient", ctx, id).Return(nil).Once()
	f.repo.On("Delete", ctx, id).Return(nil).Once()
	f.repo.On("Get", ctx, id).Return(nil, errors.NotFound("patient", id)).Once()

	require.NoError(t, f.svc.Delete(ctx, id))
	err := f.svc.Delete(ctx, id)
	assert.True(t, errors.HasCode(err, errors.ErrNotFound))
}

func TestLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.On("GetByNationalID", ctx, "12345678900").Return(&model.Patient{NationalID: "12345678900"}, nil)
	f.repo.On("SearchByName", ctx, "an").Return([]*model.Patient{{Name: "Ana"}}, nil)

	p, err := f.svc.GetByNationalID(ctx, "123.456.789-00")
	require.NoError(t, err)
	assert.Equal(t, "12345678900", p.NationalID)

	found, err := f.svc.SearchByName(ctx, " an ")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = f.svc.SearchByName(ctx, "a")
	assert.True(t, errors.HasCode(err, errors.ErrInvalidInput))
}
