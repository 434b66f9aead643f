package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/dto"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/usecase"
	"github.com/Syeddabbas07/chest-ray/pkg/response"
)

const (
	maxUploadSize = 32 << 20

	msgPatientIDRequired = "Patient ID is required."
	msgInvalidPatientID  = "Invalid Patient ID. Please check and try again."
	msgUploadFailed      = "Failed to upload X-ray. Please try again."
	msgXrayUpdated       = "Existing X-ray record updated successfully."
)

type XrayHandler struct {
	xrayUsecase usecase.XrayUsecase
	views       *view.Renderer
}

func NewXrayHandler(xrayUsecase usecase.XrayUsecase, views *view.Renderer) *XrayHandler {
	return &XrayHandler{
		xrayUsecase: xrayUsecase,
		views:       views,
	}
}

// Upload stores and classifies an x-ray, then renders the classifier report.
func (h *XrayHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgUploadFailed)
		return
	}

	var req dto.UploadXrayRequest
	if err := decoder.Decode(&req, r.PostForm); err != nil {
		response.BadRequest(w, "Invalid form")
		return
	}

	file, header, err := r.FormFile("xray_file")
	if err == nil {
		defer file.Close()
		req.File = file
		req.Filename = header.Filename
		req.ContentType = header.Header.Get("Content-Type")
		req.Size = header.Size
	}

	result, err := h.xrayUsecase.Upload(r.Context(), session(r).AccountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientIDRequired):
			redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgPatientIDRequired)
		case errors.Is(err, usecase.ErrPatientNotFound):
			redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgInvalidPatientID)
		case errors.Is(err, usecase.ErrXrayFileRequired):
			redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgUploadFailed)
		case errors.Is(err, usecase.ErrHealthWorkerNotFound):
			redirectWithFlash(w, r, "/health_worker/dashboard", view.FlashError, msgProfileNotFound)
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	p := page(w, r, "X-ray analysis", result)
	if result.Updated {
		p.Flashes = append(p.Flashes, view.Flash{Category: view.FlashSuccess, Message: msgXrayUpdated})
	}
	h.views.Render(w, http.StatusOK, "ml_result", p)
}

func (h *XrayHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	scanID, ok := pathID(r, "scan_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	xray, err := h.xrayUsecase.GetXray(r.Context(), scanID)
	if err != nil {
		switch err {
		case usecase.ErrXrayNotFound:
			response.NotFound(w, "X-ray not found")
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	h.views.Render(w, http.StatusOK, "ml_analysis", page(w, r, "Scan", xray))
}

// Image streams the stored image of a scan.
func (h *XrayHandler) Image(w http.ResponseWriter, r *http.Request) {
	scanID, ok := pathID(r, "scan_id")
	if !ok {
		response.NotFound(w, "")
		return
	}

	rc, contentType, err := h.xrayUsecase.OpenImage(r.Context(), scanID)
	if err != nil {
		switch err {
		case usecase.ErrXrayNotFound:
			response.NotFound(w, "X-ray not found")
		default:
			response.InternalServerError(w, "")
		}
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, rc)
}
