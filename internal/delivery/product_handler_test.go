package delivery_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"product_service/internal/delivery"
	"product_service/internal/domain"
	"product_service/internal/repository"
	"product_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	logger := newLogger()
	require.NoError(t, repository.EnsureSchema(context.Background(), db, repository.SQLiteDialect, logger))

	repo := repository.NewSQLProductRepository(db, repository.SQLiteDialect, logger)
	handler := delivery.NewProductHandler(usecase.NewProductUseCase(repo, logger), logger)
	return delivery.NewRouter(handler, db, time.Second, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type productBody struct {
	ID          int             `json:"id"`
	Name        *string         `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
}

func decodeProduct(t *testing.T, rr *httptest.ResponseRecorder) productBody {
	t.Helper()
	var p productBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func TestProductLifecycle(t *testing.T) {
	h := setupRouter(t)

	rr := do(t, h, http.MethodPost, "/products", `{"name":"Pen","price":1.50,"description":null}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeProduct(t, rr)
	require.Equal(t, 1, created.ID)
	require.Equal(t, "Pen", *created.Name)
	require.Nil(t, created.Description)
	require.Equal(t, "/products/1", rr.Header().Get("Location"))

	rr = do(t, h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	fetched := decodeProduct(t, rr)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, *created.Name, *fetched.Name)
	require.True(t, created.Price.Equal(fetched.Price))
	require.Nil(t, fetched.Description)

	rr = do(t, h, http.MethodPut, "/products/1", `{"id":1,"name":"Pen","price":2.00,"description":"blue"}`)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Empty(t, rr.Body.Bytes())

	rr = do(t, h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeProduct(t, rr)
	require.True(t, updated.Price.Equal(decimal.NewFromInt(2)))
	require.Equal(t, "blue", *updated.Description)

	rr = do(t, h, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Empty(t, rr.Body.Bytes())

	rr = do(t, h, http.MethodDelete, "/products/1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProductHandler(t *testing.T) {
	t.Run("List_EmptyArray", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("List_AllProducts", func(t *testing.T) {
		h := setupRouter(t)
		for i := 0; i < 3; i++ {
			rr := do(t, h, http.MethodPost, "/products", fmt.Sprintf(`{"name":"p%d","price":%d}`, i, i+1))
			require.Equal(t, http.StatusCreated, rr.Code)
		}

		rr := do(t, h, http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, rr.Code)
		var products []productBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
		require.Len(t, products, 3)
	})

	t.Run("Create_PriceIsAJSONNumber", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodPost, "/products", `{"name":"Pen","price":1.25}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		require.JSONEq(t, `{"id":1,"name":"Pen","price":1.25,"description":null}`, rr.Body.String())
	})

	t.Run("Create_IgnoresClientID", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodPost, "/products", `{"id":77,"name":"Pen","price":1}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		require.Equal(t, 1, decodeProduct(t, rr).ID)

		rr = do(t, h, http.MethodGet, "/products/77", "")
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Create_MalformedBody", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodPost, "/products", `{"name":`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Empty(t, rr.Body.Bytes())

		rr = do(t, h, http.MethodPost, "/products", `{"name":"Pen","price":"cheap"}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Get_NeverCreatedID", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodGet, "/products/12", "")
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("NonPositiveIDsAreNotFound", func(t *testing.T) {
		h := setupRouter(t)

		for _, id := range []string{"0", "-1"} {
			rr := do(t, h, http.MethodGet, "/products/"+id, "")
			require.Equal(t, http.StatusNotFound, rr.Code, "GET %s", id)

			rr = do(t, h, http.MethodDelete, "/products/"+id, "")
			require.Equal(t, http.StatusNotFound, rr.Code, "DELETE %s", id)

			rr = do(t, h, http.MethodPut, "/products/"+id, fmt.Sprintf(`{"id":%s,"name":"x","price":1}`, id))
			require.Equal(t, http.StatusNotFound, rr.Code, "PUT %s", id)
		}

		rr := do(t, h, http.MethodGet, "/products", "")
		require.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Get_MalformedID", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodGet, "/products/abc", "")
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Update_IDMismatchLeavesRowUnchanged", func(t *testing.T) {
		h := setupRouter(t)
		rr := do(t, h, http.MethodPost, "/products", `{"name":"Pen","price":1.50}`)
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = do(t, h, http.MethodPut, "/products/1", `{"id":2,"name":"Other","price":9}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		rr = do(t, h, http.MethodGet, "/products/1", "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "Pen", *decodeProduct(t, rr).Name)
	})

	t.Run("Update_IDMismatchOnMissingRow", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodPut, "/products/5", `{"id":6,"name":"x","price":1}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Update_MissingRowCreatesNothing", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodPut, "/products/5", `{"id":5,"name":"x","price":1}`)
		require.Equal(t, http.StatusNotFound, rr.Code)

		rr = do(t, h, http.MethodGet, "/products", "")
		require.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("Update_MalformedBody", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodPut, "/products/1", `not json`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("RequestIDEchoed", func(t *testing.T) {
		h := setupRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))

		rr = do(t, h, http.MethodGet, "/products", "")
		require.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("DocsAndHealth", func(t *testing.T) {
		h := setupRouter(t)

		rr := do(t, h, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "/products/{id}")

		rr = do(t, h, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})
}

func TestProductHandler_FailuresSurfaceAsServerErrors(t *testing.T) {
	logger := newLogger()
	uc := &failingUseCase{err: fmt.Errorf("product with id 3: %w", domain.ErrWriteConflict)}
	h := delivery.NewRouter(delivery.NewProductHandler(uc, logger), downPinger{}, time.Second, logger)

	rr := do(t, h, http.MethodPut, "/products/3", `{"id":3,"price":1}`)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(t, h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

type downPinger struct{}

func (downPinger) PingContext(ctx context.Context) error { return errors.New("connection refused") }

var _ usecase.ProductUseCase = (*failingUseCase)(nil)

type failingUseCase struct {
	err error
}

func (f *failingUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return nil, f.err
}

func (f *failingUseCase) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	return nil, f.err
}

func (f *failingUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return nil, f.err
}

func (f *failingUseCase) UpdateProduct(ctx context.Context, id int, product *domain.Product) error {
	return f.err
}

func (f *failingUseCase) DeleteProduct(ctx context.Context, id int) error {
	return f.err
}

func TestHealthz_UsesPingTimeout(t *testing.T) {
	logger := newLogger()
	uc := &failingUseCase{err: errors.New("unused")}
	h := delivery.NewRouter(delivery.NewProductHandler(uc, logger), slowPinger{}, 20*time.Millisecond, logger)

	start := time.Now()
	rr := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Less(t, time.Since(start), time.Second)
}

// slowPinger answers only when the caller gives up.
type slowPinger struct{}

func (slowPinger) PingContext(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
