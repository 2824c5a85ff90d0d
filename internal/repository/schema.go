package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// EnsureSchema creates the products table when it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect, logger *logrus.Logger) error {
	if _, err := db.ExecContext(ctx, dialect.schema); err != nil {
		logger.Errorf("Repository: Failed to create products table (%s): %v", dialect.Driver, err)
		return fmt.Errorf("could not create products table: %w", err)
	}
	logger.Infof("Repository: products table ready (%s)", dialect.Driver)
	return nil
}
