package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Syeddabbas07/chest-ray/config"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/handler"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/middleware"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/cache"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/classifier"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/database"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/messaging"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/storage"
	"github.com/Syeddabbas07/chest-ray/internal/repository"
	"github.com/Syeddabbas07/chest-ray/internal/service"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/jwt"
	"github.com/Syeddabbas07/chest-ray/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const sessionCookie = "chest_ray_session"

type pneumoniaClassifier struct{}

func (pneumoniaClassifier) Classify(ctx context.Context, img classifier.Image) (*classifier.Analysis, error) {
	return &classifier.Analysis{
		Report:              "Negative certainty: 0.1000\nPositive certainty: 0.9000\nPrediction: " + classifier.VerdictPneumonia,
		PneumoniaConfidence: decimal.NewNullDecimal(decimal.RequireFromString("0.9")),
	}, nil
}

type testServer struct {
	db      *gorm.DB
	handler http.Handler
	admin   usecase.AdminUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.NewInMemorySQLite(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := cache.NewMemorySessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	images, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	views, err := view.NewRenderer(log)
	require.NoError(t, err)

	accountRepo := repository.NewAccountRepository()
	patientRepo := repository.NewPatientRepository()
	healthWorkerRepo := repository.NewHealthWorkerRepository()
	expertRepo := repository.NewExpertRepository()
	adminRepo := repository.NewAdminRepository()
	xrayRepo := repository.NewXrayRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	reportRepo := repository.NewReportRepository()

	auditService := service.NewAuditService(db, log, repository.NewAuditLogRepository())
	sessionService := service.NewSessionService(log, jwt.NewJWTService(config.SessionConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
	}), store)
	publisher := messaging.NewLogPublisher(log)
	customValidator := validator.NewValidator()

	authUsecase := usecase.NewAuthUsecase(db, log, accountRepo, patientRepo, sessionService, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, xrayRepo, treatmentRepo, reportRepo)
	healthWorkerUsecase := usecase.NewHealthWorkerUsecase(db, log, accountRepo, healthWorkerRepo, patientRepo, auditService)
	xrayUsecase := usecase.NewXrayUsecase(db, log, xrayRepo, patientRepo, healthWorkerRepo, images, pneumoniaClassifier{}, publisher, auditService)
	expertUsecase := usecase.NewExpertUsecase(db, log, expertRepo, patientRepo, xrayRepo, treatmentRepo, reportRepo, publisher, auditService)
	adminUsecase := usecase.NewAdminUsecase(db, log, accountRepo, patientRepo, healthWorkerRepo, expertRepo, adminRepo, xrayRepo, treatmentRepo, reportRepo, auditService)

	sessionMiddleware := middleware.NewSessionMiddleware(log, sessionService, sessionCookie, false)

	router := NewRouter(
		handler.NewAuthHandler(authUsecase, customValidator, sessionMiddleware, views),
		handler.NewPatientHandler(patientUsecase, views),
		handler.NewHealthWorkerHandler(healthWorkerUsecase, customValidator, views),
		handler.NewXrayHandler(xrayUsecase, views),
		handler.NewExpertHandler(expertUsecase, patientUsecase, customValidator, views),
		handler.NewAdminHandler(adminUsecase, customValidator, views),
		sessionMiddleware,
	)

	return &testServer{db: db, handler: router.Setup(), admin: adminUsecase}
}

func (s *testServer) do(t *testing.T, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req, cookie)
}

// login signs in through the form and returns the session cookie.
func (s *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := s.postForm(t, "/login", url.Values{"username": {username}, "password": {password}}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := findCookie(rec, sessionCookie)
	require.NotNil(t, cookie, "session cookie not set")
	return cookie
}

func (s *testServer) registerPatient(t *testing.T, email string) (*http.Cookie, *entity.Patient) {
	t.Helper()
	rec := s.postForm(t, "/patient/register", url.Values{
		"Fname":    {"Amina Otieno"},
		"Dob":      {"1990-01-02"},
		"email":    {email},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/patient/dashboard", rec.Header().Get("Location"))

	cookie := findCookie(rec, sessionCookie)
	require.NotNil(t, cookie)

	var patient entity.Patient
	require.NoError(t, s.db.Where("email = ?", email).First(&patient).Error)
	return cookie, &patient
}

func (s *testServer) createHealthWorker(t *testing.T, login string) {
	t.Helper()
	_, err := s.admin.CreateHealthWorker(context.Background(), nil, &dto.CreateHealthWorkerRequest{
		Login:            login,
		Password:         "secret123",
		Name:             "Worker " + login,
		AppointedCountry: "Kenya",
		AppointedClinic:  "Nairobi West",
		ContactDetails:   login + "-contact",
	})
	require.NoError(t, err)
}

// counts snapshots the row counts that write routes could change.
func (s *testServer) counts(t *testing.T) map[string]int64 {
	t.Helper()
	out := map[string]int64{}
	for name, model := range map[string]any{
		"accounts":   &entity.Account{},
		"patients":   &entity.Patient{},
		"xrays":      &entity.Xray{},
		"treatments": &entity.Treatment{},
		"reports":    &entity.Report{},
	} {
		var n int64
		require.NoError(t, s.db.Model(model).Count(&n).Error)
		out[name] = n
	}
	return out
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestRouter_HealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.get(t, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok","data":{"status":"ok"}}`, rec.Body.String())

	rec = s.get(t, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Not found"}`, rec.Body.String())

	rec = s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/health", nil), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, rec.Body.String())
}

func TestRouter_PublicPages(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/", "/register_choice", "/login", "/patient/register"} {
		rec := s.get(t, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestRouter_AnonymousRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/patient/dashboard", "/health_worker/dashboard", "/expert/dashboard", "/admin/dashboard", "/patient-list"} {
		rec := s.get(t, path, nil)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestRouter_WrongRoleIsForbidden(t *testing.T) {
	s := newTestServer(t)
	cookie, _ := s.registerPatient(t, "amina@example.com")

	for _, path := range []string{"/admin/dashboard", "/health_worker/dashboard", "/expert/dashboard", "/patient-list"} {
		rec := s.get(t, path, cookie)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, "Unauthorized", rec.Body.String(), path)
	}

	rec := s.get(t, "/patient/dashboard", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amina Otieno")
}

func TestRouter_WrongRoleCannotWrite(t *testing.T) {
	s := newTestServer(t)
	s.createHealthWorker(t, "wanjiru")
	patientCookie, patient := s.registerPatient(t, "amina@example.com")
	workerCookie := s.login(t, "wanjiru", "secret123")
	patientID := strconv.FormatUint(uint64(patient.ID), 10)

	before := s.counts(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("patient_id", patientID))
	part, err := mw.CreateFormFile("xray_file", "chest.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/health_worker/upload_xray", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := s.do(t, req, patientCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())

	staff := url.Values{
		"username":        {"mallory"},
		"password":        {"secret123"},
		"name":            {"Mallory"},
		"speciality":      {"Radiology"},
		"country":         {"Kenya"},
		"clinic":          {"Nairobi West"},
		"contact_details": {"mallory-contact"},
	}
	treatment := url.Values{
		"prescription": {"Amoxicillin 500mg"},
		"notes":        {"three times daily"},
	}

	cases := []struct {
		name   string
		path   string
		form   url.Values
		cookie *http.Cookie
	}{
		{"patient creates staff", "/admin/create_staff/expert", staff, patientCookie},
		{"worker creates staff", "/admin/create_staff/health_worker", staff, workerCookie},
		{"patient prescribes", "/expert/treatment/" + patientID, treatment, patientCookie},
		{"worker prescribes", "/expert/treatment/" + patientID, treatment, workerCookie},
		{"worker reports", "/expert/reports/1", url.Values{"report": {"clear lungs"}}, workerCookie},
		{"worker changes status", "/expert/patients/" + patientID + "/status", url.Values{"health_status": {"Critical"}}, workerCookie},
		{"patient registers patients", "/health_worker/register_patient", url.Values{"email": {"bob@example.com"}}, patientCookie},
		{"worker assigns", "/admin/edit_user/" + strconv.FormatUint(uint64(patient.AccountID), 10), url.Values{"health_worker_id": {"1"}}, workerCookie},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.postForm(t, tc.path, tc.form, tc.cookie)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Equal(t, "Unauthorized", rec.Body.String())
		})
	}

	assert.Equal(t, before, s.counts(t))

	var stored entity.Patient
	require.NoError(t, s.db.First(&stored, patient.ID).Error)
	assert.Equal(t, patient.HealthStatus, stored.HealthStatus)
	assert.Nil(t, stored.HealthWorkerID)
}

func TestRouter_LoginFlow(t *testing.T) {
	s := newTestServer(t)
	s.createHealthWorker(t, "wanjiru")

	t.Run("wrong password", func(t *testing.T) {
		rec := s.postForm(t, "/login", url.Values{"username": {"wanjiru"}, "password": {"nope"}}, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Nil(t, findCookie(rec, sessionCookie))
		assert.NotNil(t, findCookie(rec, view.FlashCookieName))
	})

	t.Run("redirects to the role dashboard", func(t *testing.T) {
		rec := s.postForm(t, "/login", url.Values{"username": {"wanjiru"}, "password": {"secret123"}}, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/health_worker/dashboard", rec.Header().Get("Location"))

		cookie := findCookie(rec, sessionCookie)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)

		dashboard := s.get(t, "/health_worker/dashboard", cookie)
		assert.Equal(t, http.StatusOK, dashboard.Code)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		cookie := s.login(t, "wanjiru", "secret123")

		rec := s.get(t, "/logout", cookie)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		after := s.get(t, "/health_worker/dashboard", cookie)
		assert.Equal(t, http.StatusFound, after.Code)
		assert.Equal(t, "/login", after.Header().Get("Location"))
	})
}

func TestRouter_UploadFlow(t *testing.T) {
	s := newTestServer(t)
	s.createHealthWorker(t, "wanjiru")
	_, patient := s.registerPatient(t, "amina@example.com")
	cookie := s.login(t, "wanjiru", "secret123")

	upload := func(patientID string, withFile bool) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("patient_id", patientID))
		if withFile {
			part, err := mw.CreateFormFile("xray_file", "chest.png")
			require.NoError(t, err)
			_, err = part.Write([]byte("\x89PNG fake image"))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/health_worker/upload_xray", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return s.do(t, req, cookie)
	}

	t.Run("unknown patient", func(t *testing.T) {
		rec := upload("999", true)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/health_worker/dashboard", rec.Header().Get("Location"))
	})

	t.Run("missing file", func(t *testing.T) {
		rec := upload(strconv.FormatUint(uint64(patient.ID), 10), false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("classifies and stores the scan", func(t *testing.T) {
		rec := upload(strconv.FormatUint(uint64(patient.ID), 10), true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), classifier.VerdictPneumonia)

		var xray entity.Xray
		require.NoError(t, s.db.Where("patient_id = ?", patient.ID).First(&xray).Error)
		assert.Equal(t, entity.PredictionPneumonia, xray.Prediction)

		image := s.get(t, "/xrays/"+strconv.FormatUint(uint64(xray.ID), 10)+"/image", cookie)
		assert.Equal(t, http.StatusOK, image.Code)
		assert.Equal(t, "\x89PNG fake image", image.Body.String())

		analysis := s.get(t, "/ml_analysis/"+strconv.FormatUint(uint64(xray.ID), 10), cookie)
		assert.Equal(t, http.StatusOK, analysis.Code)
	})
}

func TestRouter_AdminCreatesStaff(t *testing.T) {
	s := newTestServer(t)
	_, err := s.admin.CreateAdmin(context.Background(), nil, &dto.CreateAdminRequest{
		Login:          "root",
		Password:       "secret123",
		ContactDetails: "root-contact",
	})
	require.NoError(t, err)
	cookie := s.login(t, "root", "secret123")

	form := url.Values{
		"username":        {"dr-kamau"},
		"password":        {"secret123"},
		"name":            {"Dr Kamau"},
		"speciality":      {"Radiology"},
		"country":         {"Kenya"},
		"clinic":          {"Nairobi West"},
		"contact_details": {"kamau-contact"},
	}

	rec := s.postForm(t, "/admin/create_staff/expert", form, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get("Location"))

	rec = s.postForm(t, "/admin/create_staff/expert", form, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.postForm(t, "/admin/create_staff/janitor", form, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	expertCookie := s.login(t, "dr-kamau", "secret123")
	assert.Equal(t, http.StatusOK, s.get(t, "/expert/dashboard", expertCookie).Code)
	assert.Equal(t, http.StatusOK, s.get(t, "/patient-list", expertCookie).Code)
}

func TestRouter_DuplicateRegistration(t *testing.T) {
	s := newTestServer(t)
	s.registerPatient(t, "amina@example.com")

	rec := s.postForm(t, "/patient/register", url.Values{
		"Fname":    {"Someone Else"},
		"Dob":      {"1985-05-05"},
		"email":    {"amina@example.com"},
		"password": {"secret123"},
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "This email is already registered. Please use a different email.")
	assert.Nil(t, findCookie(rec, sessionCookie))

	var accounts int64
	require.NoError(t, s.db.Model(&entity.Account{}).Count(&accounts).Error)
	assert.EqualValues(t, 1, accounts)
}
