package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"studyhelp.app/backend/internal/core"
)

type CreateProfileRequest struct {
	Name string `json:"name"`
}

type CreateProfileResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
}

func (h *APIHandler) CreateProfileHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.users.CreateProfile(r.Context(), id.Subject, id.Email, req.Name); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateProfileResponse{Message: "user profile created", UID: id.Subject})
}

func (h *APIHandler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	u, err := h.users.GetMe(r.Context(), id.Subject)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *APIHandler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	var req core.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	u, err := h.users.UpdateMe(r.Context(), id.Subject, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *APIHandler) HelpersHandler(w http.ResponseWriter, r *http.Request) {
	id := identityFrom(r.Context())

	helpers, err := h.users.Helpers(r.Context(), r.URL.Query().Get("subject"), id.Subject)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, helpers)
}

// PublicProfilesHandler answers /users/public?uids=a,b,c.
func (h *APIHandler) PublicProfilesHandler(w http.ResponseWriter, r *http.Request) {
	uids := strings.Split(r.URL.Query().Get("uids"), ",")

	profiles, err := h.users.PublicProfiles(r.Context(), uids)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}
