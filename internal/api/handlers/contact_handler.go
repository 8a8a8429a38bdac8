package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/isdelr/contactos-api/internal/models"
	"github.com/isdelr/contactos-api/internal/services"
	"github.com/rs/zerolog/log"
)

// ContactHandler handles HTTP requests for contacts.
type ContactHandler struct {
	service  services.ContactServiceProvider
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service services.ContactServiceProvider) *ContactHandler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &ContactHandler{service: service, validate: validate}
}

// contactPayload is the request body for create and update. Pointer fields
// let an empty string through while a missing or null field is rejected.
type contactPayload struct {
	Email    *string `json:"email" validate:"required"`
	Nombre   *string `json:"nombre" validate:"required"`
	Telefono *string `json:"telefono" validate:"required"`
}

func (p contactPayload) contact() models.Contact {
	return models.Contact{Email: *p.Email, Nombre: *p.Nombre, Telefono: *p.Telefono}
}

// fieldError describes one rejected body field.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// GetAll handles the request to list every contact.
func (h *ContactHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve contacts", "Failed to retrieve contacts")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// Get handles the request to get a single contact by email.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := emailParam(w, r)
	if !ok {
		return
	}
	contact, err := h.service.GetContact(r.Context(), email)
	if err != nil {
		writeServiceError(w, err, "Contacto no encontrado", "Failed to get contact")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// Create handles the request to create a new contact.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	contact, ok := h.decodeContact(w, r)
	if !ok {
		return
	}
	created, err := h.service.CreateContact(r.Context(), contact)
	if err != nil {
		writeServiceError(w, err, "El contacto ya existe", "Failed to create contact")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles the request to update the contact named in the path. The
// email in the body does not select the row.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	email, ok := emailParam(w, r)
	if !ok {
		return
	}
	contact, ok := h.decodeContact(w, r)
	if !ok {
		return
	}
	updated, err := h.service.UpdateContact(r.Context(), email, contact)
	if err != nil {
		writeServiceError(w, err, "Failed to update contact", "Failed to update contact")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles the request to delete a contact.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := emailParam(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteContact(r.Context(), email); err != nil {
		writeServiceError(w, err, "Failed to delete contact", "Failed to delete contact")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contacto eliminado exitosamente"})
}

func (h *ContactHandler) decodeContact(w http.ResponseWriter, r *http.Request) (models.Contact, bool) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return models.Contact{}, false
	}
	if err := h.validate.Struct(payload); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeServiceError(w, err, "Invalid request body", "Failed to validate contact payload")
			return models.Contact{}, false
		}
		log.Debug().Err(err).Msg("Contact payload failed validation")
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErr := fieldError{Loc: []string{"body", fe.Field()}, Msg: "field " + fe.Tag(), Type: "value_error." + fe.Tag()}
			if fe.Tag() == "required" {
				fieldErr.Msg, fieldErr.Type = "field required", "value_error.missing"
			}
			details = append(details, fieldErr)
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string][]fieldError{"detail": details})
		return models.Contact{}, false
	}
	return payload.contact(), true
}

// emailParam returns the {email} path segment. chi matches on the raw path
// when the request carried one, and only then is the segment still escaped.
func emailParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := chi.URLParam(r, "email")
	if r.URL.RawPath == "" {
		return email, true
	}
	email, err := url.PathUnescape(email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email in path")
		return "", false
	}
	return email, true
}
