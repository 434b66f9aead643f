package handler

import (
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
	"github.com/Syeddabbas07/chest-ray/pkg/validator"
)

const (
	msgProfileNotFound      = "Health Worker profile not found. Please contact the administrator."
	msgPatientRegisteredFor = "Patient registered and assigned to you."
)

type HealthWorkerHandler struct {
	healthWorkerUsecase usecase.HealthWorkerUsecase
	validator           *validator.CustomValidator
	views               *view.Renderer
}

func NewHealthWorkerHandler(healthWorkerUsecase usecase.HealthWorkerUsecase, validator *validator.CustomValidator, views *view.Renderer) *HealthWorkerHandler {
	return &HealthWorkerHandler{
		healthWorkerUsecase: healthWorkerUsecase,
		validator:           validator,
		views:               views,
	}
}

// Dashboard renders without a profile too: the other pages redirect here
// when it is missing.
func (h *HealthWorkerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.healthWorkerUsecase.GetDashboard(r.Context(), session(r).AccountID)
	if err != nil {
		switch err {
		case usecase.ErrHealthWorkerNotFound:
			h.views.Render(w, http.StatusOK, "hw_dashboard", page(w, r, "Dashboard", nil, msgProfileNotFound))
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	h.views.Render(w, http.StatusOK, "hw_dashboard", page(w, r, "Dashboard", dashboard))
}

func (h *HealthWorkerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.healthWorkerUsecase.GetDashboard(r.Context(), session(r).AccountID)
	if err != nil {
		switch err {
		case usecase.ErrHealthWorkerNotFound:
			h.views.Render(w, http.StatusOK, "hw_profile", page(w, r, "Profile", nil))
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	h.views.Render(w, http.StatusOK, "hw_profile", page(w, r, "Profile", &dashboard.Profile))
}

func (h *HealthWorkerHandler) Records(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.healthWorkerUsecase.GetDashboard(r.Context(), session(r).AccountID)
	if err != nil {
		switch err {
		case usecase.ErrHealthWorkerNotFound:
			redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgProfileNotFound)
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	h.views.Render(w, http.StatusOK, "hw_records", page(w, r, "Records", dashboard))
}

func (h *HealthWorkerHandler) RegisterPatientPage(w http.ResponseWriter, r *http.Request) {
	form := &registerForm{Action: "/health_worker/register_patient"}
	h.views.Render(w, http.StatusOK, "hw_register_patient", page(w, r, "Register a patient", form))
}

func (h *HealthWorkerHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	form := &registerForm{Action: "/health_worker/register_patient"}
	if err := decodeForm(r, &form.Form); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if err := h.validator.Validate(&form.Form); err != nil {
		form.Form.Password = ""
		h.views.Render(w, http.StatusBadRequest, "hw_register_patient", page(w, r, "Register a patient", form, h.validator.Messages(err)...))
		return
	}

	_, err := h.healthWorkerUsecase.RegisterPatient(r.Context(), session(r).AccountID, &form.Form)
	if err != nil {
		form.Form.Password = ""
		if err == usecase.ErrHealthWorkerNotFound {
			redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgProfileNotFound)
			return
		}
		if status, msg, ok := registrationError(err); ok {
			h.views.Render(w, status, "hw_register_patient", page(w, r, "Register a patient", form, msg))
			return
		}
		response.InternalServerError(w, "")
		return
	}

	redirectWithFlash(w, r, "/health_worker/records", view.FlashSuccess, msgPatientRegisteredFor)
}
