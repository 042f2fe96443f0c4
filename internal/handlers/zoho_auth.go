package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
)

// The accounting OAuth flow is a one-time interactive authorization done by
// an operator; tokens refresh automatically afterwards. State is kept in a
// short-lived cookie rather than server-side session storage.

const oauthStateCookie = "zoho_oauth_state"

func (h *Handlers) ZohoAuthRedirect(w http.ResponseWriter, r *http.Request) {
	if h.zohoAuth == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Accounting integration is not configured"})
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.zohoAuth.AuthCodeURL(state), http.StatusFound)
}

func (h *Handlers) ZohoAuthCallback(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.zohoAuth == nil || h.credentialManager == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Accounting integration is not configured"})
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "OAuth state mismatch"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing authorization code"})
		return
	}

	token, err := h.zohoAuth.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("authorization code exchange failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Authorization exchange failed"})
		return
	}
	if err := h.credentialManager.StoreZohoToken(r.Context(), token); err != nil {
		logger.Error("failed to store accounting token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store token"})
		return
	}

	logger.Info("accounting system authorized")
	writeJSON(w, http.StatusOK, map[string]string{"status": "authorized"})
}
