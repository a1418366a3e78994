package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/pkg/auth"
)

// CreateDefaultData seeds a bootstrap teacher account on an empty database
// so a fresh deployment has someone able to create courses. No-op once any
// teacher exists.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count teachers: %w", err)
	}
	if count > 0 {
		return nil
	}

	password, err := auth.HashPassword("changeme123")
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		"admin@vidyavichar.local", password, "Default Teacher", models.RoleTeacher,
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO teachers (user_id, teacher_code) VALUES ($1, $2)`,
		userID, "T000")
	if err != nil {
		return fmt.Errorf("failed to create default teacher: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	lgr.Warn().
		Str("email", "admin@vidyavichar.local").
		Msg("Seeded default teacher account; change its password before exposing this deployment")
	return nil
}
