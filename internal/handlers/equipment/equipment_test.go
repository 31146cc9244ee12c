package equipment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "helios-service/internal/domain/equipment"
	xerrors "helios-service/internal/pkg/errors"
	service "helios-service/internal/service/equipment"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]domain.Equipment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]domain.Equipment{}}
}

func (r *fakeRepo) Create(_ context.Context, e *domain.Equipment) error {
	r.nextID++
	e.ID = r.nextID
	r.items[e.ID] = *e
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*domain.Equipment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := e
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, e *domain.Equipment) error {
	if _, ok := r.items[e.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[e.ID] = *e
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ *domain.ListFilters) ([]domain.Equipment, error) {
	out := []domain.Equipment{}
	for _, e := range r.items {
		out = append(out, e)
	}
	return out, nil
}

func newRouter(repo domain.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEquipmentHandler(service.NewEquipmentService(repo, zap.NewNop()))
	r := gin.New()
	r.PUT("/equipment/:id/stock", h.AdjustStock)
	return r
}

func adjustStock(t *testing.T, router *gin.Engine, id string, delta int) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(domain.StockAdjustmentRequest{Delta: delta})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/equipment/"+id+"/stock", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdjustStock_ZeroDeltaIsCleanNoOp(t *testing.T) {
	repo := newFakeRepo()
	repo.items[1] = domain.Equipment{ID: 1, Name: "400W Panel", Quantity: 10, LowStockThreshold: 5}
	repo.nextID = 1
	router := newRouter(repo)

	w := adjustStock(t, router, "1", 0)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, 10, repo.items[1].Quantity)
}

func TestAdjustStock_NegativeDeltaFloorsAtZero(t *testing.T) {
	repo := newFakeRepo()
	repo.items[1] = domain.Equipment{ID: 1, Name: "400W Panel", Quantity: 3}
	repo.nextID = 1
	router := newRouter(repo)

	w := adjustStock(t, router, "1", -10)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, repo.items[1].Quantity)
}

func TestAdjustStock_UnknownItem(t *testing.T) {
	router := newRouter(newFakeRepo())
	w := adjustStock(t, router, "42", 1)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdjustStock_BadID(t *testing.T) {
	router := newRouter(newFakeRepo())
	w := adjustStock(t, router, "abc", 1)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
