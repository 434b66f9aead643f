package handler

import (
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/middleware"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
	"github.com/Syeddabbas07/chest-ray/pkg/validator"
)

const (
	msgInvalidCredentials = "Invalid credentials, please try again."
	msgEmailRegistered    = "This email is already registered. Please use a different email."
	msgNextOfKinTaken     = "This next of kin contact is already registered."
	msgInvalidDate        = "Date of birth must be in the format YYYY-MM-DD."
	msgPatientRegistered  = "Patient registered successfully!"
)

// registerForm backs both patient registration pages.
type registerForm struct {
	Action string
	Form   dto.RegisterPatientRequest
}

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	sessions    *middleware.SessionMiddleware
	views       *view.Renderer
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, sessions *middleware.SessionMiddleware, views *view.Renderer) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		sessions:    sessions,
		views:       views,
	}
}

func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "home", page(w, r, "", nil))
}

func (h *AuthHandler) RegisterChoice(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "register_choice", page(w, r, "Register", nil))
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "login", page(w, r, "Log in", nil))
}

// Login signs the account in. Every failure, whatever its cause, produces the
// same flash and the same redirect.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeForm(r, &req); err != nil {
		redirectWithFlash(w, r, "/login", view.FlashError, msgInvalidCredentials)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		redirectWithFlash(w, r, "/login", view.FlashError, msgInvalidCredentials)
		return
	}

	resp, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			redirectWithFlash(w, r, "/login", view.FlashError, msgInvalidCredentials)
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	h.sessions.SetCookie(w, resp.Token, resp.ExpiresIn)
	response.Redirect(w, r, resp.Redirect)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, "register", page(w, r, "Patient registration", &registerForm{Action: "/patient/register"}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := &registerForm{Action: "/patient/register"}
	if err := decodeForm(r, &form.Form); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	if err := h.validator.Validate(&form.Form); err != nil {
		form.Form.Password = ""
		h.views.Render(w, http.StatusBadRequest, "register", page(w, r, "Patient registration", form, h.validator.Messages(err)...))
		return
	}

	resp, err := h.authUsecase.RegisterPatient(r.Context(), &form.Form)
	if err != nil {
		form.Form.Password = ""
		if status, msg, ok := registrationError(err); ok {
			h.views.Render(w, status, "register", page(w, r, "Patient registration", form, msg))
			return
		}
		response.InternalServerError(w, "")
		return
	}

	h.sessions.SetCookie(w, resp.Token, resp.ExpiresIn)
	redirectWithFlash(w, r, resp.Redirect, view.FlashSuccess, msgPatientRegistered)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := middleware.GetSession(r.Context()); ok {
		if err := h.authUsecase.Logout(r.Context(), s); err != nil {
			response.InternalServerError(w, "")
			return
		}
	}
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// registrationError maps the user-facing registration failures.
func registrationError(err error) (int, string, bool) {
	switch err {
	case usecase.ErrEmailAlreadyExists:
		return http.StatusConflict, msgEmailRegistered, true
	case usecase.ErrNextOfKinContactExists:
		return http.StatusConflict, msgNextOfKinTaken, true
	case usecase.ErrInvalidDateFormat:
		return http.StatusBadRequest, msgInvalidDate, true
	}
	return 0, "", false
}
