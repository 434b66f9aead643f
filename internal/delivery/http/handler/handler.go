package handler

import (
	"net/http"
	"strconv"

	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/middleware"
	"github.com/Syeddabbas07/chest-ray/internal/delivery/http/view"
	"github.com/Syeddabbas07/chest-ray/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// decodeForm parses the request form into dst.
func decodeForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, r.PostForm)
}

// pathID reads a positive numeric route variable.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// session returns the signed-in account. Gated routes always have one.
func session(r *http.Request) *service.Session {
	s, _ := middleware.GetSession(r.Context())
	return s
}

// page assembles the template data shared by every page.
func page(w http.ResponseWriter, r *http.Request, title string, data any, errs ...string) view.Page {
	p := view.Page{
		Title:   title,
		Flashes: view.PopFlashes(w, r),
		Errors:  errs,
		Data:    data,
	}
	if s, ok := middleware.GetSession(r.Context()); ok {
		p.User = s.Login
		p.Role = s.Role.Label()
	}
	return p
}

// redirectWithFlash queues message and sends the browser to url.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, url, category, message string) {
	view.AddFlash(w, r, category, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
