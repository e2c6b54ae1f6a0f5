package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *APIHandler) ListCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.ListCourses(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *APIHandler) GetCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalog.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *APIHandler) CreateCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalog.CreateCourse(r.Context(), chi.URLParam(r, "courseID"), r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "course created", Data: course})
}

func (h *APIHandler) UpdateCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalog.UpdateCourse(r.Context(), chi.URLParam(r, "courseID"), r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "course updated", Data: course})
}

func (h *APIHandler) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "course removed"})
}

func (h *APIHandler) ListDisciplinesHandler(w http.ResponseWriter, r *http.Request) {
	disciplines, err := h.catalog.ListDisciplines(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, disciplines)
}

func (h *APIHandler) GetDisciplineHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.GetDiscipline(r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "disciplineID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *APIHandler) CreateDisciplineHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.CreateDiscipline(r.Context(),
		chi.URLParam(r, "courseID"), chi.URLParam(r, "disciplineID"), r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "discipline created", Data: d})
}

func (h *APIHandler) UpdateDisciplineHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.catalog.UpdateDiscipline(r.Context(),
		chi.URLParam(r, "courseID"), chi.URLParam(r, "disciplineID"), r.URL.Query().Get("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "discipline updated", Data: d})
}

func (h *APIHandler) DeleteDisciplineHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteDiscipline(r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "disciplineID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "discipline removed"})
}
