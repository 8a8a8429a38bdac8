package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/contactos-api/internal/database"
	"github.com/isdelr/contactos-api/internal/models"
)

// ContactServiceProvider defines the interface for contact services.
type ContactServiceProvider interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	GetContact(ctx context.Context, email string) (models.Contact, error)
	CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error)
	UpdateContact(ctx context.Context, email string, contact models.Contact) (models.Contact, error)
	DeleteContact(ctx context.Context, email string) error
}

// ContactService provides business logic for the contacts table.
type ContactService struct {
	db *database.DB
}

// NewContactService creates a new ContactService.
func NewContactService(db *database.DB) *ContactService {
	return &ContactService{db: db}
}

// ListContacts returns every contact in table order.
func (s *ContactService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT email, nombre, telefono FROM contactos")
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.Email, &c.Nombre, &c.Telefono); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

// GetContact retrieves a single contact by email.
func (s *ContactService) GetContact(ctx context.Context, email string) (models.Contact, error) {
	var c models.Contact
	row := s.db.QueryRowContext(ctx, s.db.Rebind("SELECT email, nombre, telefono FROM contactos WHERE email = ?"), email)
	if err := row.Scan(&c.Email, &c.Nombre, &c.Telefono); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Contact{}, fmt.Errorf("contact %s: %w", email, ErrNotFound)
		}
		return models.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// CreateContact inserts a new contact. The primary key on email decides
// duplicates, so two concurrent creates cannot both succeed.
func (s *ContactService) CreateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("INSERT INTO contactos (email, nombre, telefono) VALUES (?, ?, ?)"),
		contact.Email, contact.Nombre, contact.Telefono)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return models.Contact{}, fmt.Errorf("contact %s: %w", contact.Email, ErrConflict)
		}
		return models.Contact{}, fmt.Errorf("failed to insert contact: %w", err)
	}
	return contact, nil
}

// UpdateContact overwrites nombre and telefono of the contact with the given
// email. An unknown email matches no row and is not an error; the submitted
// contact is returned either way.
func (s *ContactService) UpdateContact(ctx context.Context, email string, contact models.Contact) (models.Contact, error) {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind("UPDATE contactos SET nombre = ?, telefono = ? WHERE email = ?"),
		contact.Nombre, contact.Telefono, email)
	if err != nil {
		return models.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

// DeleteContact removes the contact with the given email, if any.
func (s *ContactService) DeleteContact(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM contactos WHERE email = ?"), email)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
