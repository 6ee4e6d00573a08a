package discounts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nexusems/pkg/apperrors"
	"nexusems/pkg/cache"
	"nexusems/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, d *Discount) error {
	args := m.Called(ctx, d)
	if d.DiscountID == "" {
		d.DiscountID = "D-004"
	}
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, d *Discount) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Discount, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*Discount); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]Discount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Discount), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// memoryCache stores JSON the way the Redis cache does
type memoryCache struct {
	data    map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
	return nil
}

func (c *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	v, err := fetcher()
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, v, ttl); err != nil {
		return err
	}
	return c.Get(ctx, key, dest)
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func newTestService(repo Repository, c cache.Service) Service {
	return NewService(repo, c, ServiceConfig{CacheTTL: time.Minute, Now: func() time.Time { return now }}, logger.Discard())
}

func nexus10() Discount {
	return Discount{DiscountID: "D-001", Name: "NEXUS10", Percentage: decimal.NewFromInt(10), ExpiryDate: now.Add(48 * time.Hour)}
}

func TestSaveCreatesAndUpdates(t *testing.T) {
	ctx := context.Background()
	expiry := now.Add(72 * time.Hour)

	t.Run("creates with next id", func(t *testing.T) {
		repo := new(mockRepository)
		mc := newMemoryCache()
		svc := newTestService(repo, mc)

		repo.On("List", ctx).Return([]Discount{nexus10()}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(d *Discount) bool {
			return d.Name == "SPRING" && d.Percentage.String() == "12.5"
		})).Return(nil)

		d, created, err := svc.Save(ctx, SaveDiscountRequest{Name: " SPRING ", Percentage: decimal.RequireFromString("12.5"), ExpiryDate: expiry})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "D-004", d.DiscountID)
		assert.Empty(t, mc.data)
		repo.AssertExpectations(t)
	})

	t.Run("existing id is replaced", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)
		existing := nexus10()

		repo.On("List", ctx).Return([]Discount{existing}, nil)
		repo.On("GetByID", ctx, "D-001").Return(&existing, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(d *Discount) bool {
			return d.DiscountID == "D-001" && d.Percentage.Equal(decimal.NewFromInt(15))
		})).Return(nil)

		_, created, err := svc.Save(ctx, SaveDiscountRequest{DiscountID: "D-001", Name: "NEXUS10", Percentage: decimal.NewFromInt(15), ExpiryDate: expiry})
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown supplied id is created", func(t *testing.T) {
		repo := new(mockRepository)
		svc := newTestService(repo, nil)

		repo.On("List", ctx).Return([]Discount{}, nil)
		repo.On("GetByID", ctx, "D-050").Return(nil, apperrors.NotFound("discount", "D-050"))
		repo.On("Create", ctx, mock.Anything).Return(nil)

		d, created, err := svc.Save(ctx, SaveDiscountRequest{DiscountID: "D-050", Name: "VIP", Percentage: decimal.NewFromInt(5), ExpiryDate: expiry})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "D-050", d.DiscountID)
	})
}

func TestSaveValidation(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)
	repo.On("List", ctx).Return([]Discount{nexus10()}, nil)

	tests := []struct {
		name string
		req  SaveDiscountRequest
		want error
	}{
		{"percentage above 100", SaveDiscountRequest{Name: "BIG", Percentage: decimal.NewFromInt(101), ExpiryDate: now}, apperrors.ErrValidation},
		{"negative percentage", SaveDiscountRequest{Name: "NEG", Percentage: decimal.NewFromInt(-1), ExpiryDate: now}, apperrors.ErrValidation},
		{"missing expiry", SaveDiscountRequest{Name: "NOEXP", Percentage: decimal.NewFromInt(5)}, apperrors.ErrValidation},
		{"code taken", SaveDiscountRequest{Name: "nexus10", Percentage: decimal.NewFromInt(5), ExpiryDate: now}, apperrors.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Save(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaveAcceptsZeroPercentage(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	repo.On("List", ctx).Return([]Discount{nexus10()}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(d *Discount) bool {
		return d.Name == "FREEBIE" && d.Percentage.IsZero()
	})).Return(nil)

	d, created, err := svc.Save(ctx, SaveDiscountRequest{Name: "FREEBIE", Percentage: decimal.Zero, ExpiryDate: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "D-004", d.DiscountID)
	repo.AssertExpectations(t)
}

func TestSaveAllowsSameCodeOnDifferentEvents(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)

	scoped := nexus10()
	scoped.EventID = strPtr("E-001")
	repo.On("List", ctx).Return([]Discount{scoped}, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, created, err := svc.Save(ctx, SaveDiscountRequest{Name: "NEXUS10", Percentage: decimal.NewFromInt(20), ExpiryDate: now, EventID: strPtr("E-002")})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestListUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	mc := newMemoryCache()
	svc := newTestService(repo, mc)

	repo.On("List", ctx).Return([]Discount{nexus10()}, nil).Once()

	for i := 0; i < 3; i++ {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "NEXUS10", list[0].Name)
	}
	repo.AssertNumberOfCalls(t, "List", 1)

	repo.On("Delete", ctx, "D-001").Return(nil)
	require.NoError(t, svc.Delete(ctx, "D-001"))
	assert.Equal(t, 1, mc.deletes)
	assert.NotContains(t, mc.data, listCacheKey)
}

func TestQuote(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	svc := newTestService(repo, nil)
	repo.On("List", ctx).Return([]Discount{nexus10()}, nil)

	q, err := svc.Quote(ctx, "NEXUS10", "E-001", twoSeats())
	require.NoError(t, err)
	assert.Equal(t, "225", q.Total.String())
}

func TestApplyRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(mockRepository)
	repo.On("List", mock.Anything).Return([]Discount{nexus10()}, nil)

	r := gin.New()
	SetupDiscountRoutes(r.Group("/api/v1"), NewController(newTestService(repo, nil)), func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})

	body := `{"code":"nexus10","event_id":"E-001","seats":[{"ticket_id":"T-010","ticket_type":"VIP","price":"150"},{"ticket_id":"T-011","ticket_type":"GA","price":"100"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discounts/apply", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"discount":"25"`)
	assert.Contains(t, w.Body.String(), `"total":"225"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/discounts/apply", strings.NewReader(`{"code":"BOGUS","seats":[{"ticket_id":"T-1","price":"10"}]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), MsgInvalidCode)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/discounts/D-001", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
