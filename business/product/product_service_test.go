package product

import (
	"context"
	"errors"
	"testing"

	"smartPricer/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductRepo struct {
	products map[uint64]domain.Product
	nextID   uint64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint64]domain.Product), nextID: 1}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errors.New("record not found")
	}
	r.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint64) error {
	delete(r.products, id)
	return nil
}

type stubPricer struct {
	resp domain.ServingResponse
	err  error
}

func (p *stubPricer) Predict(context.Context, uint64, domain.MarketState, string) (domain.ServingResponse, error) {
	return p.resp, p.err
}

type stubCache struct {
	entries map[uint64]domain.ServingResponse
}

func (c *stubCache) Get(_ context.Context, id uint64) (*domain.ServingResponse, error) {
	if r, ok := c.entries[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *stubCache) Set(_ context.Context, id uint64, resp domain.ServingResponse) error {
	c.entries[id] = resp
	return nil
}

func validProduct() domain.Product {
	return domain.Product{
		Name:         "widget",
		ActualPrice:  10,
		SellingPrice: 20,
		EbayPrice:    19,
		Stock:        5,
		DemandIndex:  0.5,
		UserInterest: 0.5,
		Sales:        30,
	}
}

func TestCreateProduct_StoresPredictedPrice(t *testing.T) {
	repo := newStubProductRepo()
	pricer := &stubPricer{resp: domain.ServingResponse{PredictedPrice: 21.5}}
	svc := NewProductService(repo, pricer, nil)

	p := validProduct()
	created, err := svc.CreateProduct(context.Background(), &p)
	require.NoError(t, err)

	assert.Equal(t, 21.5, created.PredictedPrice)
	assert.NotZero(t, created.ID)
}

func TestCreateProduct_FallsBackToSellingPriceOnPredictorError(t *testing.T) {
	repo := newStubProductRepo()
	pricer := &stubPricer{err: errors.New("artifact unavailable")}
	svc := NewProductService(repo, pricer, nil)

	p := validProduct()
	created, err := svc.CreateProduct(context.Background(), &p)
	require.NoError(t, err)

	assert.Equal(t, p.SellingPrice, created.PredictedPrice)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), &stubPricer{}, nil)

	cases := map[string]func(*domain.Product){
		"missing name":   func(p *domain.Product) { p.Name = "" },
		"zero cost":      func(p *domain.Product) { p.ActualPrice = 0 },
		"zero price":     func(p *domain.Product) { p.SellingPrice = 0 },
		"negative stock": func(p *domain.Product) { p.Stock = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(&p)

			_, err := svc.CreateProduct(context.Background(), &p)
			assert.Error(t, err)
		})
	}
}

func TestRepriceProduct_PersistsAndCaches(t *testing.T) {
	repo := newStubProductRepo()
	pricer := &stubPricer{resp: domain.ServingResponse{PredictedPrice: 30}}
	cache := &stubCache{entries: make(map[uint64]domain.ServingResponse)}
	svc := NewProductService(repo, pricer, cache)

	p := validProduct()
	created, err := svc.CreateProduct(context.Background(), &p)
	require.NoError(t, err)

	pricer.resp.PredictedPrice = 33.3

	repriced, err := svc.RepriceProduct(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, 33.3, repriced.PredictedPrice)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 33.3, stored.PredictedPrice)

	cached, ok := cache.entries[created.ID]
	require.True(t, ok)
	assert.Equal(t, 33.3, cached.PredictedPrice)
}

func TestGetPrediction_ReadsThroughCache(t *testing.T) {
	repo := newStubProductRepo()
	pricer := &stubPricer{resp: domain.ServingResponse{PredictedPrice: 30}}
	cache := &stubCache{entries: make(map[uint64]domain.ServingResponse)}
	svc := NewProductService(repo, pricer, cache)

	p := validProduct()
	created, err := svc.CreateProduct(context.Background(), &p)
	require.NoError(t, err)

	first, err := svc.GetPrediction(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, first.PredictedPrice)

	// subsequent reads come from the cache, not the pricer
	pricer.err = errors.New("pricer down")

	second, err := svc.GetPrediction(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, second.PredictedPrice)
}

func TestDeleteProduct_UnknownID(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), &stubPricer{}, nil)

	err := svc.DeleteProduct(context.Background(), 404)
	assert.Error(t, err)
}
