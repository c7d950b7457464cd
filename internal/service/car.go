package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"carcatalog/internal/model"
	"carcatalog/internal/repository"
	"carcatalog/internal/storage"
)

var tracer = otel.Tracer("carcatalog/internal/service")

// CarListResult is the envelope returned by GetCarList.
type CarListResult = model.ResponseData[model.ListModel[model.Car]]

// CarService defines the use cases for the car catalog.
type CarService interface {
	// GetCarList returns one page of cars, optionally filtered by category slug.
	// A page past the end yields an empty, successful page.
	GetCarList(ctx context.Context, category string, pageNo, pageSize int) CarListResult

	// GetCarByID returns a single car or a failed envelope when it does not exist.
	GetCarByID(ctx context.Context, id int) model.ResponseData[*model.Car]

	// CreateCar validates and stores a new car.
	CreateCar(ctx context.Context, car model.Car) model.ResponseData[*model.Car]

	// UpdateCar overwrites an existing car. Errors wrap ErrNotFound or ErrValidation.
	UpdateCar(ctx context.Context, id int, car model.Car) error

	// DeleteCar removes a car and its picture. Errors wrap ErrNotFound or ErrValidation.
	DeleteCar(ctx context.Context, id int) error

	// SaveImage stores a picture for the car and returns a download URL.
	SaveImage(ctx context.Context, id int, r io.Reader, filename, contentType string, size int64) (string, error)
}

// Options configure pagination and image links.
type Options struct {
	PageSize    int
	MaxPageSize int
	ImageURLTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = 3
	}
	if o.MaxPageSize <= 0 {
		o.MaxPageSize = 20
	}
	if o.MaxPageSize < o.PageSize {
		o.MaxPageSize = o.PageSize
	}
	if o.ImageURLTTL <= 0 {
		o.ImageURLTTL = time.Hour
	}
	return o
}

type carService struct {
	cars       repository.CarRepository
	categories repository.CategoryRepository
	store      storage.Storage
	opts       Options
	logger     *slog.Logger
}

// NewCarService constructs a CarService. store may be nil, which disables pictures.
func NewCarService(
	cars repository.CarRepository,
	categories repository.CategoryRepository,
	store storage.Storage,
	opts Options,
	logger *slog.Logger,
) CarService {
	return &carService{
		cars:       cars,
		categories: categories,
		store:      store,
		opts:       opts.withDefaults(),
		logger:     logger.With("component", "car_service"),
	}
}

func (s *carService) GetCarList(ctx context.Context, category string, pageNo, pageSize int) CarListResult {
	if pageNo < 1 {
		return model.Fail[model.ListModel[model.Car]]("page number must be positive")
	}
	if pageSize <= 0 {
		pageSize = s.opts.PageSize
	}
	if pageSize > s.opts.MaxPageSize {
		pageSize = s.opts.MaxPageSize
	}

	ctx, span := tracer.Start(ctx, "CarService.GetCarList", trace.WithAttributes(
		attribute.String("car.category", category),
		attribute.Int("page.number", pageNo),
		attribute.Int("page.size", pageSize),
	))
	defer span.End()

	res, err := s.cars.List(ctx, repository.CarQuery{
		PageQuery:              repository.PageQuery{Limit: pageSize, Offset: pageOffset(pageNo, pageSize)},
		CategoryNormalizedName: category,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list cars")
		s.logger.ErrorContext(ctx, "car_list_failed", "category", category, "page", pageNo, "error", err)
		return model.Fail[model.ListModel[model.Car]]("failed to load cars")
	}

	totalPages := int(math.Ceil(float64(res.Total) / float64(pageSize)))
	page := model.ListModel[model.Car]{
		Items:       res.Items,
		TotalPages:  totalPages,
		CurrentPage: pageNo,
	}
	if pageNo > totalPages {
		page.Items = []model.Car{}
		page.CurrentPage = max(totalPages, 1)
	}
	if page.Items == nil {
		page.Items = []model.Car{}
	}
	return model.OK(page)
}

// pageOffset returns the row offset of pageNo. Offsets that do not fit in an int
// saturate at math.MaxInt, which lies past the end of any table.
func pageOffset(pageNo, pageSize int) int {
	if pageNo-1 > (math.MaxInt-1)/pageSize {
		return math.MaxInt
	}
	return (pageNo - 1) * pageSize
}

func (s *carService) GetCarByID(ctx context.Context, id int) model.ResponseData[*model.Car] {
	if id <= 0 {
		return model.Fail[*model.Car](fmt.Sprintf("invalid car id %d", id))
	}
	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Fail[*model.Car](fmt.Sprintf("car with id %d not found", id))
		}
		s.logger.ErrorContext(ctx, "car_get_failed", "car_id", id, "error", err)
		return model.Fail[*model.Car]("failed to load car")
	}

	if car.Image != "" && s.store != nil {
		u, err := s.store.PresignGet(ctx, car.Image, s.opts.ImageURLTTL)
		if err != nil {
			s.logger.WarnContext(ctx, "car_image_presign_failed", "car_id", id, "error", err)
		} else {
			car.ImageURL = u
		}
	}
	return model.OK(car)
}

func (s *carService) CreateCar(ctx context.Context, car model.Car) model.ResponseData[*model.Car] {
	cat, err := s.validate(ctx, &car)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return model.Fail[*model.Car](err.Error())
		}
		s.logger.ErrorContext(ctx, "car_create_failed", "error", err)
		return model.Fail[*model.Car]("failed to create car")
	}

	car.ID = 0
	car.Image, car.MimeType, car.ImageURL = "", "", ""
	created, err := s.cars.Create(ctx, &car)
	if err != nil {
		s.logger.ErrorContext(ctx, "car_create_failed", "error", err)
		return model.Fail[*model.Car]("failed to create car")
	}
	created.Category = cat

	s.logger.InfoContext(ctx, "car_created", "car_id", created.ID, "category_id", created.CategoryID)
	return model.OK(created)
}

func (s *carService) UpdateCar(ctx context.Context, id int, car model.Car) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid car id %d", ErrValidation, id)
	}
	if _, err := s.validate(ctx, &car); err != nil {
		return err
	}

	if err := s.cars.Update(ctx, id, &car); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return fmt.Errorf("update car: %w", err)
	}

	s.logger.InfoContext(ctx, "car_updated", "car_id", id)
	return nil
}

func (s *carService) DeleteCar(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid car id %d", ErrValidation, id)
	}
	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return fmt.Errorf("find car: %w", err)
	}

	// Remove the picture first; if that fails the row still points at it.
	if car.Image != "" && s.store != nil {
		if err := s.store.Delete(ctx, car.Image); err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
	}

	if err := s.cars.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete car: %w", err)
	}

	s.logger.InfoContext(ctx, "car_deleted", "car_id", id)
	return nil
}

func (s *carService) SaveImage(ctx context.Context, id int, r io.Reader, filename, contentType string, size int64) (u string, err error) {
	ctx, span := tracer.Start(ctx, "CarService.SaveImage", trace.WithAttributes(
		attribute.Int("car.id", id),
		attribute.String("image.content_type", contentType),
		attribute.Int64("image.size", size),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "save image")
		}
		span.End()
	}()

	if s.store == nil {
		return "", ErrNoStorage
	}
	if r == nil {
		return "", fmt.Errorf("%w: file is required", ErrValidation)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrValidation, contentType)
	}

	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return "", fmt.Errorf("find car: %w", err)
	}

	key := filepath.ToSlash(filepath.Join("cars", uuid.NewString()+strings.ToLower(filepath.Ext(filename))))
	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	})
	if err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.cars.UpdateImage(ctx, id, info.Key, contentType); err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return "", fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return "", fmt.Errorf("db save failed: %w", err)
	}

	if car.Image != "" && car.Image != info.Key {
		if err := s.store.Delete(ctx, car.Image); err != nil {
			s.logger.WarnContext(ctx, "car_old_image_delete_failed", "car_id", id, "key", car.Image, "error", err)
		}
	}

	u, err = s.store.PresignGet(ctx, info.Key, s.opts.ImageURLTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "car_image_presign_failed", "car_id", id, "error", err)
		return info.Key, nil
	}
	return u, nil
}

// validate checks the editable fields and resolves the category.
func (s *carService) validate(ctx context.Context, car *model.Car) (*model.Category, error) {
	car.Name = strings.TrimSpace(car.Name)
	if car.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if car.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if car.CategoryID <= 0 {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	cat, err := s.categories.FindByID(ctx, car.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, car.CategoryID)
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return cat, nil
}
