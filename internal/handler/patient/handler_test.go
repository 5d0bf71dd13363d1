package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository/mocks"
	"github.com/jwalitptl/clinic-api/internal/service/patient"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

type recordingPublisher struct {
	events []model.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, message interface{}) error {
	p.events = append(p.events, message.(model.Event))
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testServer struct {
	engine       *gin.Engine
	repo         *mocks.PatientRepository
	appointments *mocks.AppointmentRepository
	exams        *mocks.ExamRepository
	publisher    *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	s := &testServer{
		engine:       gin.New(),
		repo:         &mocks.PatientRepository{},
		appointments: &mocks.AppointmentRepository{},
		exams:        &mocks.ExamRepository{},
		publisher:    &recordingPublisher{},
	}
	svc := patient.NewService(&mocks.Transactor{}, s.repo, s.appointments, s.exams)
	NewHandler(svc, handler.NewBaseHandler(s.publisher, "clinic.events", nil)).RegisterRoutes(s.engine.Group("/api/v1"))
	t.Cleanup(func() { s.repo.AssertExpectations(t) })
	return s
}

func (s *testServer) do(method, target, body string) (*httptest.ResponseRecorder, httputil.Response) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp httputil.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCreatePatient(t *testing.T) {
	s := newTestServer(t)

	s.repo.On("GetByNationalID", mock.Anything, "12345678900").Return(nil, errors.NotFound("patient", nil))
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(nil)

	w, resp := s.do(http.MethodPost, "/api/v1/patients",
		`{"name":"Ana Souza","birth_date":"04-05-1990","national_id":"123.456.789-00"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, httputil.StatusSuccess, resp.Status)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "12345678900", data["national_id"])
	assert.Equal(t, "1990-05-04", data["birth_date"])

	require.Len(t, s.publisher.events, 1)
	assert.Equal(t, "patient.created", s.publisher.events[0].Type)
}

func TestCreatePatientMissingField(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodPost, "/api/v1/patients", `{"name":"Ana Souza","birth_date":"04-05-1990"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FIELD", resp.Code)
	assert.Equal(t, "national_id", resp.Field)
	assert.Empty(t, s.publisher.events)
}

func TestCreatePatientMalformedBody(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodPost, "/api/v1/patients", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestCreatePatientDuplicate(t *testing.T) {
	s := newTestServer(t)

	s.repo.On("GetByNationalID", mock.Anything, "12345678900").
		Return(&model.Patient{Base: model.Base{ID: uuid.New()}}, nil)

	w, resp := s.do(http.MethodPost, "/api/v1/patients",
		`{"name":"Ana Souza","birth_date":"04-05-1990","national_id":"12345678900"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_VALUE", resp.Code)
}

func TestGetPatient(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()

	s.repo.On("Get", mock.Anything, id).Return(&model.Patient{Base: model.Base{ID: id}, Name: "Ana"}, nil)
	s.repo.On("Get", mock.Anything, mock.Anything).Return(nil, errors.NotFound("patient", nil))

	w, resp := s.do(http.MethodGet, "/api/v1/patients/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", resp.Data.(map[string]interface{})["name"])

	w, resp = s.do(http.MethodGet, "/api/v1/patients/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/patients/42", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPatientsCarriesCount(t *testing.T) {
	s := newTestServer(t)

	s.repo.On("List", mock.Anything).Return([]*model.Patient{{Name: "Ana"}, {Name: "Bruno"}}, nil)

	w, resp := s.do(http.MethodGet, "/api/v1/patients", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
}

func TestSearchPatientsShortTerm(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodGet, "/api/v1/patients/search?name=a", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", resp.Code)
}

func TestGetPatientByNationalID(t *testing.T) {
	s := newTestServer(t)

	s.repo.On("GetByNationalID", mock.Anything, "12345678900").Return(&model.Patient{NationalID: "12345678900"}, nil)

	w, _ := s.do(http.MethodGet, "/api/v1/patients/national-id/123.456.789-00", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp := s.do(http.MethodGet, "/api/v1/patients/national-id/123", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_IDENTIFIER", resp.Code)
}

func TestDeletePatient(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()

	s.repo.On("Get", mock.Anything, id).Return(&model.Patient{Base: model.Base{ID: id}}, nil)
	s.exams.On("DeleteByPatient", mock.Anything, id).Return(nil)
	s.appointments.On("DeleteByPatient", mock.Anything, id).Return(nil)
	s.repo.On("Delete", mock.Anything, id).Return(nil)

	w, resp := s.do(http.MethodDelete, "/api/v1/patients/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "patient deleted", resp.Message)
	require.Len(t, s.publisher.events, 1)
	assert.Equal(t, "patient.deleted", s.publisher.events[0].Type)
}
