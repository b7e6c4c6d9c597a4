package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/mlongerich/DonationTracker-sub002/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteBaseError serializes a coded error. The locale key, when set,
// travels in the envelope meta so clients can translate.
func WriteBaseError(w http.ResponseWriter, status int, err *serrors.BaseError) error {
	var meta map[string]string
	if err.LocaleKey != "" {
		meta = map[string]string{"locale_key": err.LocaleKey}
	}
	return WriteError(w, status, err.Code, err.Message, meta)
}
