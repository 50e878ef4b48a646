package http

import (
	"net/http"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/directory"
	"github.com/cmlabs-hris/leave-tracker/internal/handler/http/response"
)

type MasterHandler interface {
	ListRoles(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	ListLeaveStatuses(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService directory.Service
}

func NewMasterHandler(masterService directory.Service) MasterHandler {
	return &masterHandlerImpl{masterService: masterService}
}

func (h *masterHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.masterService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, roles)
}

func (h *masterHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	leaveTypes, err := h.masterService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaveTypes)
}

func (h *masterHandlerImpl) ListLeaveStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.masterService.ListLeaveStatuses(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, statuses)
}
