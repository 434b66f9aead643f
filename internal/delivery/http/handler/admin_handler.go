package handler

import (
	"fmt"
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
	"github.com/Syeddabbas07/chest-ray/pkg/validator"

	"github.com/gorilla/mux"
)

const (
	msgLoginTaken      = "This username is already taken."
	msgContactTaken    = "These contact details are already registered."
	msgWorkerAssigned  = "Health worker assigned."
	msgWorkerNotFound  = "Health worker not found."
	msgNotAPatient     = "Only patients can be assigned a health worker."
	msgStaffCreatedFmt = "%s account %q created."
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
	views        *view.Renderer
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator, views *view.Renderer) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
		views:        views,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.adminUsecase.GetDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	h.views.Render(w, http.StatusOK, "admin_dashboard", page(w, r, "Dashboard", dashboard))
}

func (h *AdminHandler) Database(w http.ResponseWriter, r *http.Request) {
	overview, err := h.adminUsecase.GetDatabaseOverview(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	h.views.Render(w, http.StatusOK, "admin_database", page(w, r, "Database", overview))
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminUsecase.ListUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	h.views.Render(w, http.StatusOK, "admin_users", page(w, r, "Users", users))
}

func (h *AdminHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		response.BadRequest(w, "Invalid query")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.views.Render(w, http.StatusBadRequest, "admin_search", page(w, r, "Search", &dto.SearchResponse{Query: req.Query}, h.validator.Messages(err)...))
		return
	}

	result, err := h.adminUsecase.Search(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}
	h.views.Render(w, http.StatusOK, "admin_search", page(w, r, "Search", result))
}

func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "user_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	user, err := h.adminUsecase.GetUser(r.Context(), accountID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.views.Render(w, http.StatusOK, "admin_edit_user", page(w, r, "Edit user", user))
}

// AssignWorker assigns a health worker to the patient behind an account.
func (h *AdminHandler) AssignWorker(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "user_id")
	if !ok {
		response.NotFound(w, "")
		return
	}
	back := fmt.Sprintf("/admin/edit_user/%d", accountID)

	var req dto.AssignHealthWorkerRequest
	if err := decodeForm(r, &req); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		redirectWithFlash(w, r, back, view.FlashError, msgWorkerNotFound)
		return
	}

	user, err := h.adminUsecase.GetUser(r.Context(), accountID)
	if err != nil {
		h.fail(w, err)
		return
	}
	if user.Patient == nil {
		redirectWithFlash(w, r, back, view.FlashError, msgNotAPatient)
		return
	}

	actorID := session(r).AccountID
	if _, err := h.adminUsecase.AssignHealthWorker(r.Context(), &actorID, user.Patient.ID, &req); err != nil {
		switch err {
		case usecase.ErrHealthWorkerNotFound:
			redirectWithFlash(w, r, back, view.FlashError, msgWorkerNotFound)
		default:
			h.fail(w, err)
		}
		return
	}

	redirectWithFlash(w, r, back, view.FlashSuccess, msgWorkerAssigned)
}

func (h *AdminHandler) UserLogs(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "user_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	logs, err := h.adminUsecase.GetUserLogs(r.Context(), accountID)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.views.Render(w, http.StatusOK, "admin_user_logs", page(w, r, "User logs", logs))
}

func (h *AdminHandler) CreateStaffPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "admin_create_staff", page(w, r, "Create staff", nil))
}

// CreateStaff creates a health worker, expert or admin account.
func (h *AdminHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	role := entity.Role(mux.Vars(r)["role"])
	actorID := session(r).AccountID

	var (
		req    interface{}
		create func() (string, error)
	)
	switch role {
	case entity.RoleHealthWorker:
		form := &dto.CreateHealthWorkerRequest{}
		req = form
		create = func() (string, error) {
			_, err := h.adminUsecase.CreateHealthWorker(r.Context(), &actorID, form)
			return form.Login, err
		}
	case entity.RoleExpert:
		form := &dto.CreateExpertRequest{}
		req = form
		create = func() (string, error) {
			_, err := h.adminUsecase.CreateExpert(r.Context(), &actorID, form)
			return form.Login, err
		}
	case entity.RoleAdmin:
		form := &dto.CreateAdminRequest{}
		req = form
		create = func() (string, error) {
			_, err := h.adminUsecase.CreateAdmin(r.Context(), &actorID, form)
			return form.Login, err
		}
	default:
		response.NotFound(w, "")
		return
	}

	if err := decodeForm(r, req); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if err := h.validator.Validate(req); err != nil {
		h.views.Render(w, http.StatusBadRequest, "admin_create_staff", page(w, r, "Create staff", nil, h.validator.Messages(err)...))
		return
	}

	login, err := create()
	if err != nil {
		switch err {
		case usecase.ErrLoginAlreadyExists:
			h.views.Render(w, http.StatusConflict, "admin_create_staff", page(w, r, "Create staff", nil, msgLoginTaken))
		case usecase.ErrContactAlreadyExists:
			h.views.Render(w, http.StatusConflict, "admin_create_staff", page(w, r, "Create staff", nil, msgContactTaken))
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	redirectWithFlash(w, r, "/admin/users", view.FlashSuccess, fmt.Sprintf(msgStaffCreatedFmt, role.Label(), login))
}

func (h *AdminHandler) fail(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrUserNotFound:
		response.NotFound(w, "User not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	default:
		response.InternalServerError(w, "")
	}
}
