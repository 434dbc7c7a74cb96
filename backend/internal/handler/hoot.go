package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/hoots/shared/api"
	"github.com/itchan-dev/hoots/shared/domain"
	mw "github.com/itchan-dev/hoots/shared/middleware"
	"github.com/itchan-dev/hoots/shared/utils"
)

func (h *Handler) CreateHoot(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateHootRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	hoot, err := h.hoot.Create(r.Context(), domain.HootCreationData{
		Author: user.Id,
		Title:  domain.HootTitle(body.Title),
		Text:   domain.HootText(body.Text),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.HootResponse{HootView: h.hydrator.Hoot(r.Context(), hoot)})
}

func (h *Handler) ListHoots(w http.ResponseWriter, r *http.Request) {
	hoots, err := h.hoot.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.HootListResponse{Hoots: h.hydrator.Hoots(r.Context(), hoots)})
}

func (h *Handler) GetHoot(w http.ResponseWriter, r *http.Request) {
	hoot, err := h.hoot.Get(r.Context(), chi.URLParam(r, "hootId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.HootResponse{HootView: h.hydrator.Hoot(r.Context(), hoot)})
}

func (h *Handler) UpdateHoot(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.UpdateHootRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	hoot, err := h.hoot.Update(r.Context(), chi.URLParam(r, "hootId"), user.Id, domain.HootPatch{Title: body.Title, Text: body.Text})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.HootResponse{HootView: h.hydrator.Hoot(r.Context(), hoot)})
}

func (h *Handler) DeleteHoot(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	hoot, err := h.hoot.Delete(r.Context(), chi.URLParam(r, "hootId"), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.HootResponse{HootView: h.hydrator.Hoot(r.Context(), hoot)})
}
