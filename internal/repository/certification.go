package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/umeshgupta05/SmartPathAI/internal/model"
)

// ErrCertificationExists is returned when a certification name is already stored.
var ErrCertificationExists = errors.New("certification already exists")

// CreateCertification inserts one certification.
func (r *Repository) CreateCertification(ctx context.Context, cert *model.Certification) error {
	query := `
		INSERT INTO certifications (name, difficulty, description, link)
		VALUES (:1, :2, :3, :4)
	`

	_, err := r.db.ExecContext(ctx, query,
		cert.Name,
		cert.Difficulty,
		cert.Description,
		cert.Link,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCertificationExists
		}
		return fmt.Errorf("failed to create certification: %w", err)
	}

	return nil
}

// SaveCertifications inserts a batch of certifications, skipping duplicates.
func (r *Repository) SaveCertifications(ctx context.Context, certs []model.Certification) error {
	for i := range certs {
		if err := r.CreateCertification(ctx, &certs[i]); err != nil && !errors.Is(err, ErrCertificationExists) {
			return err
		}
	}
	return nil
}

// ListCertifications returns up to limit stored certifications in insertion order.
func (r *Repository) ListCertifications(ctx context.Context, limit int) ([]model.Certification, error) {
	query := fmt.Sprintf(`
		SELECT id, name, difficulty, description, link
		FROM certifications
		ORDER BY id
		FETCH FIRST %d ROWS ONLY
	`, limit)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}
	defer rows.Close()

	var certs []model.Certification
	for rows.Next() {
		var cert model.Certification
		var difficulty, description, link sql.NullString

		if err := rows.Scan(&cert.ID, &cert.Name, &difficulty, &description, &link); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		cert.Difficulty = difficulty.String
		cert.Description = description.String
		cert.Link = link.String
		certs = append(certs, cert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}

	return certs, nil
}
