package handlers

import (
	"net/http"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

// CreateAdmin provisions a back-office account. It is guarded by the master
// password in the body rather than an admin session so the first admin can be
// bootstrapped.
func (h *Handlers) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	var input services.CreateAdminInput
	if !decodeJSON(w, r, &input) {
		return
	}

	admin, err := h.adminService.CreateAdmin(r.Context(), input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

func (h *Handlers) ListAdmins(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	admins, err := h.adminService.ListAdmins(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if admins == nil {
		admins = []*models.AdminUser{}
	}
	writeJSON(w, http.StatusOK, admins)
}
