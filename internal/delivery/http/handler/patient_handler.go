package handler

import (
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	views          *view.Renderer
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, views *view.Renderer) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		views:          views,
	}
}

func (h *PatientHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderRecord(w, r, "patient_dashboard", "Dashboard")
}

func (h *PatientHandler) Prescriptions(w http.ResponseWriter, r *http.Request) {
	h.renderRecord(w, r, "patient_prescriptions", "Prescriptions")
}

func (h *PatientHandler) Xrays(w http.ResponseWriter, r *http.Request) {
	h.renderRecord(w, r, "patient_xrays", "X-rays")
}

func (h *PatientHandler) Reports(w http.ResponseWriter, r *http.Request) {
	h.renderRecord(w, r, "patient_reports", "Reports")
}

func (h *PatientHandler) HealthTips(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "patient_health_tips", page(w, r, "Health tips", nil))
}

func (h *PatientHandler) Support(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "patient_support", page(w, r, "Support", nil))
}

// List shows every patient. Admins and experts share it.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	h.views.Render(w, http.StatusOK, "patient_list", page(w, r, "Patients", patients))
}

func (h *PatientHandler) renderRecord(w http.ResponseWriter, r *http.Request, name, title string) {
	record, err := h.patientUsecase.GetRecord(r.Context(), session(r).AccountID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	h.views.Render(w, http.StatusOK, name, page(w, r, title, record))
}
