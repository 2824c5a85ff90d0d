package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"product_service/internal/domain"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

type sqlProductRepository struct {
	db  *sql.DB
	log *logrus.Logger

	listQuery    string
	getQuery     string
	insertQuery  string
	replaceQuery string
	deleteQuery  string
	existsQuery  string
}

func NewSQLProductRepository(db *sql.DB, dialect Dialect, logger *logrus.Logger) domain.ProductRepository {
	return &sqlProductRepository{
		db:  db,
		log: logger,

		listQuery: `
        SELECT id, name, price, description
        FROM products`,
		getQuery: dialect.Rebind(`
        SELECT id, name, price, description
        FROM products
        WHERE id = ?`),
		insertQuery: dialect.Rebind(`
        INSERT INTO products (name, price, description)
        VALUES (?, ?, ?)
        RETURNING id`),
		replaceQuery: dialect.Rebind(`
        UPDATE products
        SET name = ?, price = ?, description = ?
        WHERE id = ?`),
		deleteQuery: dialect.Rebind(`DELETE FROM products WHERE id = ?`),
		existsQuery: dialect.Rebind(`SELECT EXISTS (SELECT 1 FROM products WHERE id = ?)`),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		product     domain.Product
		name        sql.NullString
		description sql.NullString
	)
	if err := row.Scan(&product.ID, &name, &product.Price, &description); err != nil {
		return domain.Product{}, err
	}
	product.Name = stringPtr(name)
	product.Description = stringPtr(description)
	return product, nil
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// driverFields extracts the driver-level error code for logging.
func driverFields(err error) logrus.Fields {
	fields := logrus.Fields{}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		fields["pg_code"] = string(pqErr.Code)
		fields["pg_condition"] = pqErr.Code.Name()
		return fields
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		fields["sqlite_code"] = int(liteErr.Code)
		fields["sqlite_extended_code"] = int(liteErr.ExtendedCode)
	}
	return fields
}

func (r *sqlProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, r.listQuery)
	if err != nil {
		r.log.WithFields(driverFields(err)).Errorf("Repository: Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Repository: Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Repository: Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Debugf("Repository: Retrieved %d products", len(products))
	return products, nil
}

func (r *sqlProductRepository) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, r.getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debugf("Repository: Product with ID %d not found", id)
			return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrProductNotFound)
		}
		r.log.WithFields(driverFields(err)).Errorf("Repository: Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	r.log.Debugf("Repository: Product retrieved with ID: %d", id)
	return &product, nil
}

func (r *sqlProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created := *product
	created.ID = 0

	err := r.db.QueryRowContext(ctx, r.insertQuery,
		nullString(created.Name),
		created.Price,
		nullString(created.Description),
	).Scan(&created.ID)
	if err != nil {
		r.log.WithFields(driverFields(err)).Errorf("Repository: Failed to create product: %v", err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Repository: Product created with ID: %d", created.ID)
	return &created, nil
}

func (r *sqlProductRepository) Replace(ctx context.Context, id int, product *domain.Product) (domain.ReplaceResult, error) {
	result, err := r.db.ExecContext(ctx, r.replaceQuery,
		nullString(product.Name),
		product.Price,
		nullString(product.Description),
		id,
	)
	if err != nil {
		r.log.WithFields(driverFields(err)).Errorf("Repository: Failed to replace product ID %d: %v", id, err)
		return domain.ReplaceNoMatch, fmt.Errorf("could not replace product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after replacing product ID %d: %v", id, err)
		return domain.ReplaceNoMatch, fmt.Errorf("could not confirm product replace: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %d not matched for replace (0 rows affected)", id)
		return domain.ReplaceNoMatch, nil
	}

	r.log.Infof("Repository: Product ID %d replaced (%d rows affected)", id, rowsAffected)
	return domain.ReplaceApplied, nil
}

func (r *sqlProductRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.deleteQuery, id)
	if err != nil {
		r.log.WithFields(driverFields(err)).Errorf("Repository: Failed to delete product ID %d: %v", id, err)
		return false, fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after deleting product ID %d: %v", id, err)
		return false, fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Attempted to delete non-existent product ID %d", id)
		return false, nil
	}
	r.log.Infof("Repository: Product deleted with ID: %d", id)
	return true, nil
}

func (r *sqlProductRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, r.existsQuery, id).Scan(&exists); err != nil {
		r.log.WithFields(driverFields(err)).Errorf("Repository: Failed to check existence of product ID %d: %v", id, err)
		return false, fmt.Errorf("could not check product existence: %w", err)
	}
	return exists, nil
}
