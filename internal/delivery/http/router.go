package http

import (
	"io"
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/handler"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/middleware"
	"github.com/Syeddabbas07/chest-ray/internal/domain/access"
	"github.com/Syeddabbas07/chest-ray/pkg/response"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	healthWorkerHandler *handler.HealthWorkerHandler
	xrayHandler         *handler.XrayHandler
	expertHandler       *handler.ExpertHandler
	adminHandler        *handler.AdminHandler
	sessionMiddleware   *middleware.SessionMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	healthWorkerHandler *handler.HealthWorkerHandler,
	xrayHandler *handler.XrayHandler,
	expertHandler *handler.ExpertHandler,
	adminHandler *handler.AdminHandler,
	sessionMiddleware *middleware.SessionMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		healthWorkerHandler: healthWorkerHandler,
		xrayHandler:         xrayHandler,
		expertHandler:       expertHandler,
		adminHandler:        adminHandler,
		sessionMiddleware:   sessionMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.sessionMiddleware.Authenticate)

	// Health check
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.NotFoundHandler = http.HandlerFunc(apiNotFound)
	api.MethodNotAllowedHandler = http.HandlerFunc(apiMethodNotAllowed)

	// Public pages
	r.router.HandleFunc("/", r.authHandler.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/register_choice", r.authHandler.RegisterChoice).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.authHandler.LoginPage).Methods(http.MethodGet)
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/patient/register", r.authHandler.RegisterPage).Methods(http.MethodGet)
	r.router.HandleFunc("/patient/register", r.authHandler.Register).Methods(http.MethodPost)
	r.router.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodGet, http.MethodPost)

	// Patient pages
	r.route("/patient/dashboard", access.PatientDashboard, r.patientHandler.Dashboard, http.MethodGet)
	r.route("/patient/health_tips", access.PatientHealthTips, r.patientHandler.HealthTips, http.MethodGet)
	r.route("/patient/prescriptions", access.PatientPrescriptions, r.patientHandler.Prescriptions, http.MethodGet)
	r.route("/patient/xrays", access.PatientXrays, r.patientHandler.Xrays, http.MethodGet)
	r.route("/patient/reports", access.PatientReports, r.patientHandler.Reports, http.MethodGet)
	r.route("/patient/support", access.PatientSupport, r.patientHandler.Support, http.MethodGet)

	// Health worker pages
	r.route("/health_worker/dashboard", access.HealthWorkerDashboard, r.healthWorkerHandler.Dashboard, http.MethodGet)
	r.route("/health_worker/profile", access.HealthWorkerProfile, r.healthWorkerHandler.Profile, http.MethodGet)
	r.route("/health_worker/records", access.HealthWorkerRecords, r.healthWorkerHandler.Records, http.MethodGet)
	r.route("/health_worker/register_patient", access.HealthWorkerRegisterPatient, r.healthWorkerHandler.RegisterPatientPage, http.MethodGet)
	r.route("/health_worker/register_patient", access.HealthWorkerRegisterPatient, r.healthWorkerHandler.RegisterPatient, http.MethodPost)
	r.route("/health_worker/upload_xray", access.HealthWorkerUploadXray, r.xrayHandler.Upload, http.MethodPost)
	r.route("/ml_analysis/{scan_id:[0-9]+}", access.XrayAnalysis, r.xrayHandler.Analysis, http.MethodGet)

	// Expert pages
	r.route("/expert/dashboard", access.ExpertDashboard, r.expertHandler.Dashboard, http.MethodGet)
	r.route("/expert/patients", access.ExpertPatients, r.expertHandler.Patients, http.MethodGet)
	r.route("/expert/xrays/{patient_id:[0-9]+}", access.ExpertXrays, r.expertHandler.Xrays, http.MethodGet)
	r.route("/expert/reports/{scan_id:[0-9]+}", access.ExpertReports, r.expertHandler.ReportForm, http.MethodGet)
	r.route("/expert/reports/{scan_id:[0-9]+}", access.ExpertReports, r.expertHandler.CreateReport, http.MethodPost)
	r.route("/expert/treatment/{patient_id:[0-9]+}", access.ExpertTreatment, r.expertHandler.TreatmentForm, http.MethodGet)
	r.route("/expert/treatment/{patient_id:[0-9]+}", access.ExpertTreatment, r.expertHandler.CreateTreatment, http.MethodPost)
	r.route("/expert/patients/{patient_id:[0-9]+}/status", access.ExpertPatientStatus, r.expertHandler.UpdatePatientStatus, http.MethodPost)

	// Admin pages
	r.route("/admin/dashboard", access.AdminDashboard, r.adminHandler.Dashboard, http.MethodGet)
	r.route("/admin/database", access.AdminDatabase, r.adminHandler.Database, http.MethodGet)
	r.route("/admin/users", access.AdminUsers, r.adminHandler.Users, http.MethodGet)
	r.route("/admin/search", access.AdminSearch, r.adminHandler.Search, http.MethodGet)
	r.route("/admin/edit_user/{user_id:[0-9]+}", access.AdminEditUser, r.adminHandler.EditUser, http.MethodGet)
	r.route("/admin/edit_user/{user_id:[0-9]+}", access.AdminAssignWorker, r.adminHandler.AssignWorker, http.MethodPost)
	r.route("/admin/user_logs/{user_id:[0-9]+}", access.AdminUserLogs, r.adminHandler.UserLogs, http.MethodGet)
	r.route("/admin/create_staff", access.AdminCreateStaff, r.adminHandler.CreateStaffPage, http.MethodGet)
	r.route("/admin/create_staff/{role}", access.AdminCreateStaff, r.adminHandler.CreateStaff, http.MethodPost)

	// Shared pages
	r.route("/patient-list", access.PatientList, r.patientHandler.List, http.MethodGet)
	r.route("/xrays/{scan_id:[0-9]+}/image", access.XrayImage, r.xrayHandler.Image, http.MethodGet)

	return r.router
}

// Handler returns the routes wrapped with panic recovery and access logging.
func (r *Router) Handler(log *logrus.Logger) http.Handler {
	var h http.Handler = r.Setup()
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(false))(h)
	return handlers.CombinedLoggingHandler(logWriter(log), h)
}

func (r *Router) route(path string, op access.Operation, fn http.HandlerFunc, method string) {
	r.router.Handle(path, middleware.RequireOperation(op)(fn)).Methods(method)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

func apiNotFound(w http.ResponseWriter, req *http.Request) {
	response.Error(w, http.StatusNotFound, "Not found", nil)
}

func apiMethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

// logWriter sends access log lines to the application logger.
func logWriter(log *logrus.Logger) io.Writer {
	return log.WriterLevel(logrus.InfoLevel)
}
