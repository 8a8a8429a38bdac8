package models

// Contact is a single entry of the address book, keyed by email.
type Contact struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
}
