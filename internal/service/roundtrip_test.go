package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"

	"carcatalog/internal/logging"
	"carcatalog/internal/model"
	"carcatalog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCars is a map-backed CarRepository for lifecycle tests.
type memCars struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]model.Car
	cats   map[int]model.Category
}

func newMemCars(cats ...model.Category) *memCars {
	m := &memCars{rows: map[int]model.Car{}, cats: map[int]model.Category{}}
	for _, c := range cats {
		m.cats[c.ID] = c
	}
	return m
}

func (m *memCars) Create(_ context.Context, car *model.Car) (*model.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := *car
	c.ID = m.nextID
	m.rows[c.ID] = c
	return &c, nil
}

func (m *memCars) FindByID(_ context.Context, id int) (*model.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (m *memCars) List(_ context.Context, q repository.CarQuery) (*repository.PageResult[model.Car], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Car
	for _, c := range m.rows {
		if q.CategoryNormalizedName != "" && m.cats[c.CategoryID].NormalizedName != q.CategoryNormalizedName {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	res := &repository.PageResult[model.Car]{Total: len(all), Items: []model.Car{}}
	if q.Offset < len(all) {
		res.Items = all[q.Offset:min(q.Offset+q.Limit, len(all))]
	}
	return res, nil
}

func (m *memCars) Update(_ context.Context, id int, car *model.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	old.Name, old.Description, old.Price, old.CategoryID = car.Name, car.Description, car.Price, car.CategoryID
	m.rows[id] = old
	return nil
}

func (m *memCars) UpdateImage(_ context.Context, id int, image, mimeType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	old.Image, old.MimeType = image, mimeType
	m.rows[id] = old
	return nil
}

func (m *memCars) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

type memCategories struct{ m *memCars }

func (c memCategories) List(context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(c.m.cats))
	for _, cat := range c.m.cats {
		out = append(out, cat)
	}
	return out, nil
}

func (c memCategories) FindByID(_ context.Context, id int) (*model.Category, error) {
	cat, ok := c.m.cats[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &cat, nil
}

func TestCarService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemCars(
		model.Category{ID: 1, Name: "Sedans", NormalizedName: "sedan"},
		model.Category{ID: 2, Name: "SUVs", NormalizedName: "suv"},
	)
	svc := NewCarService(repo, memCategories{repo}, nil, testOpts, logging.Nop())

	for _, name := range []string{"Camry", "Civic", "Accord", "Golf"} {
		res := svc.CreateCar(ctx, model.Car{Name: name, Price: 20000, CategoryID: 1})
		require.True(t, res.Success, res.ErrorMessage)
	}
	res := svc.CreateCar(ctx, model.Car{Name: "RAV4", Price: 30000, CategoryID: 2})
	require.True(t, res.Success)
	rav4 := res.Data.ID

	t.Run("pages cover every car exactly once", func(t *testing.T) {
		seen := map[int]int{}
		first := svc.GetCarList(ctx, "", 1, 2)
		require.True(t, first.Success)
		assert.Equal(t, 3, first.Data.TotalPages)
		for p := 1; p <= first.Data.TotalPages; p++ {
			page := svc.GetCarList(ctx, "", p, 2)
			assert.LessOrEqual(t, len(page.Data.Items), 2)
			for _, c := range page.Data.Items {
				seen[c.ID]++
			}
		}
		assert.Len(t, seen, 5)
		for _, n := range seen {
			assert.Equal(t, 1, n)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		page := svc.GetCarList(ctx, "suv", 1, 3)
		require.True(t, page.Success)
		require.Len(t, page.Data.Items, 1)
		assert.Equal(t, rav4, page.Data.Items[0].ID)
	})

	t.Run("update then get", func(t *testing.T) {
		err := svc.UpdateCar(ctx, rav4, model.Car{Name: "RAV4 Hybrid", Description: "AWD", Price: 35000, CategoryID: 2})
		require.NoError(t, err)

		got := svc.GetCarByID(ctx, rav4)
		require.True(t, got.Success)
		assert.Equal(t, "RAV4 Hybrid", got.Data.Name)
		assert.Equal(t, "AWD", got.Data.Description)
		assert.Equal(t, 35000.0, got.Data.Price)
	})

	t.Run("delete then get", func(t *testing.T) {
		require.NoError(t, svc.DeleteCar(ctx, rav4))

		got := svc.GetCarByID(ctx, rav4)
		assert.False(t, got.Success)
		assert.ErrorIs(t, svc.DeleteCar(ctx, rav4), ErrNotFound)
		assert.ErrorIs(t, svc.UpdateCar(ctx, rav4, model.Car{Name: "x", CategoryID: 2}), ErrNotFound)
	})
}
