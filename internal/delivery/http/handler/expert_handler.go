package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
	"github.com/Syeddabbas07/chest-ray/pkg/validator"
)

const (
	msgTreatmentExists  = "A treatment for this patient already exists."
	msgReportExists     = "A report for this patient already exists."
	msgTreatmentSaved   = "Treatment saved."
	msgReportSaved      = "Report submitted and scan marked as reviewed."
	msgStatusUpdated    = "Health status updated."
	msgInvalidTreatment = "Please choose a valid priority, duration and dosage frequency."
	msgInvalidStatus    = "Please choose a valid health status."
	msgExpertNotFound   = "Expert profile not found. Please contact the administrator."
)

// treatmentForm backs the expert's treatment page.
type treatmentForm struct {
	Record         *dto.PatientRecordResponse
	Form           dto.CreateTreatmentRequest
	HealthStatuses []entity.HealthStatus
	Priorities     []entity.Priority
	Durations      []entity.Duration
	Frequencies    []entity.DosageFrequency
}

type ExpertHandler struct {
	expertUsecase  usecase.ExpertUsecase
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
	views          *view.Renderer
}

func NewExpertHandler(expertUsecase usecase.ExpertUsecase, patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator, views *view.Renderer) *ExpertHandler {
	return &ExpertHandler{
		expertUsecase:  expertUsecase,
		patientUsecase: patientUsecase,
		validator:      validator,
		views:          views,
	}
}

func (h *ExpertHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.expertUsecase.GetDashboard(r.Context(), session(r).AccountID)
	if err != nil {
		switch err {
		case usecase.ErrExpertNotFound:
			h.views.Render(w, http.StatusOK, "expert_dashboard", page(w, r, "Dashboard", nil, msgExpertNotFound))
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	h.views.Render(w, http.StatusOK, "expert_dashboard", page(w, r, "Dashboard", dashboard))
}

func (h *ExpertHandler) Patients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	h.views.Render(w, http.StatusOK, "expert_patients", page(w, r, "Patients", patients))
}

func (h *ExpertHandler) Xrays(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patient_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	xrays, err := h.expertUsecase.GetPatientXrays(r.Context(), patientID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.views.Render(w, http.StatusOK, "expert_xrays", page(w, r, "X-rays", xrays))
}

func (h *ExpertHandler) ReportForm(w http.ResponseWriter, r *http.Request) {
	scanID, ok := pathID(r, "scan_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	form, err := h.expertUsecase.GetReportForm(r.Context(), session(r).AccountID, scanID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.views.Render(w, http.StatusOK, "expert_report", page(w, r, "Report", form))
}

func (h *ExpertHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	scanID, ok := pathID(r, "scan_id")
	if !ok {
		response.NotFound(w, "")
		return
	}
	back := fmt.Sprintf("/expert/reports/%d", scanID)

	var req dto.CreateReportRequest
	if err := decodeForm(r, &req); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		redirectWithFlash(w, r, back, view.FlashError, strings.Join(h.validator.Messages(err), " "))
		return
	}

	if _, err := h.expertUsecase.CreateReport(r.Context(), session(r).AccountID, scanID, &req); err != nil {
		switch err {
		case usecase.ErrReportAlreadyExists:
			redirectWithFlash(w, r, back, view.FlashError, msgReportExists)
		default:
			h.fail(w, err)
		}
		return
	}

	redirectWithFlash(w, r, back, view.FlashSuccess, msgReportSaved)
}

func (h *ExpertHandler) TreatmentForm(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patient_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	record, err := h.expertUsecase.GetPatientRecord(r.Context(), patientID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.views.Render(w, http.StatusOK, "expert_treatment", page(w, r, "Treatment", newTreatmentForm(record)))
}

func (h *ExpertHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patient_id")
	if !ok {
		response.NotFound(w, "")
		return
	}
	back := fmt.Sprintf("/expert/treatment/%d", patientID)

	var req dto.CreateTreatmentRequest
	if err := decodeForm(r, &req); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		record, rerr := h.expertUsecase.GetPatientRecord(r.Context(), patientID)
		if rerr != nil {
			h.fail(w, rerr)
			return
		}
		form := newTreatmentForm(record)
		form.Form = req
		h.views.Render(w, http.StatusBadRequest, "expert_treatment", page(w, r, "Treatment", form, h.validator.Messages(err)...))
		return
	}

	if _, err := h.expertUsecase.CreateTreatment(r.Context(), session(r).AccountID, patientID, &req); err != nil {
		switch err {
		case usecase.ErrTreatmentAlreadyExists:
			redirectWithFlash(w, r, back, view.FlashError, msgTreatmentExists)
		case usecase.ErrInvalidTreatment:
			redirectWithFlash(w, r, back, view.FlashError, msgInvalidTreatment)
		case usecase.ErrInvalidDateFormat:
			redirectWithFlash(w, r, back, view.FlashError, "Date of diagnosis must be in the format YYYY-MM-DD.")
		default:
			h.fail(w, err)
		}
		return
	}

	redirectWithFlash(w, r, back, view.FlashSuccess, msgTreatmentSaved)
}

func (h *ExpertHandler) UpdatePatientStatus(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patient_id")
	if !ok {
		response.NotFound(w, "")
		return
	}
	back := fmt.Sprintf("/expert/treatment/%d", patientID)

	var req dto.UpdateHealthStatusRequest
	if err := decodeForm(r, &req); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if _, err := h.expertUsecase.UpdatePatientStatus(r.Context(), session(r).AccountID, patientID, &req); err != nil {
		switch err {
		case usecase.ErrInvalidHealthStatus:
			redirectWithFlash(w, r, back, view.FlashError, msgInvalidStatus)
		default:
			h.fail(w, err)
		}
		return
	}

	redirectWithFlash(w, r, back, view.FlashSuccess, msgStatusUpdated)
}

// fail answers the errors shared by every expert page.
func (h *ExpertHandler) fail(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrXrayNotFound:
		response.NotFound(w, "X-ray not found")
	case usecase.ErrExpertNotFound:
		response.Forbidden(w, msgExpertNotFound)
	default:
		response.InternalServerError(w, "")
	}
}

func newTreatmentForm(record *dto.PatientRecordResponse) *treatmentForm {
	return &treatmentForm{
		Record:         record,
		HealthStatuses: entity.HealthStatuses,
		Priorities:     entity.Priorities,
		Durations:      entity.Durations,
		Frequencies:    entity.DosageFrequencies,
	}
}
