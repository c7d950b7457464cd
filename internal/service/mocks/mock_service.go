package mocks

import (
	"context"
	"io"

	"carcatalog/internal/model"
	"carcatalog/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) GetCarList(ctx context.Context, category string, pageNo, pageSize int) service.CarListResult {
	args := m.Called(ctx, category, pageNo, pageSize)
	return args.Get(0).(service.CarListResult)
}

func (m *MockCarService) GetCarByID(ctx context.Context, id int) model.ResponseData[*model.Car] {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ResponseData[*model.Car])
}

func (m *MockCarService) CreateCar(ctx context.Context, car model.Car) model.ResponseData[*model.Car] {
	args := m.Called(ctx, car)
	return args.Get(0).(model.ResponseData[*model.Car])
}

func (m *MockCarService) UpdateCar(ctx context.Context, id int, car model.Car) error {
	args := m.Called(ctx, id, car)
	return args.Error(0)
}

func (m *MockCarService) DeleteCar(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCarService) SaveImage(ctx context.Context, id int, r io.Reader, filename, contentType string, size int64) (string, error) {
	args := m.Called(ctx, id, r, filename, contentType, size)
	return args.String(0), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryList(ctx context.Context) model.ResponseData[[]model.Category] {
	args := m.Called(ctx)
	return args.Get(0).(model.ResponseData[[]model.Category])
}
