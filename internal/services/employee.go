package services

//go:generate mockgen -source=employee.go -destination=mock_employee.go -package=services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
	"github.com/segmentio/kafka-go"
)

var (
	ErrEmployeeNotFound    = fmt.Errorf("employee not found: %w", apperr.ErrNotFound)
	ErrEmployeeEmailExists = fmt.Errorf("employee email already exists: %w", apperr.ErrConflict)
)

// EmployeeReader reads employees from the store.
type EmployeeReader interface {
	List(ctx context.Context) ([]models.EmployeeDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.EmployeeDB, error)
	Search(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDB, error)
}

// EmployeeWriter mutates employees in the store.
type EmployeeWriter interface {
	Save(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error)
	Update(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// EmployeeCache is an optional read-through cache keyed by employee id.
type EmployeeCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.EmployeeDB, error)
	Set(ctx context.Context, e *models.EmployeeDB) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PhotoStore persists uploaded photos and returns where they can be fetched.
type PhotoStore interface {
	Save(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
}

// TxCallbacks defers work until the request transaction is resolved.
type TxCallbacks interface {
	OnCommit(ctx context.Context, fn func())
	OnRollback(ctx context.Context, fn func())
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EmployeeService implements employee CRUD with caching and lifecycle events.
// cache, kafkaWriter and tx may be nil. Without tx, cache eviction and events
// happen as soon as the write returns.
type EmployeeService struct {
	reader      EmployeeReader
	writer      EmployeeWriter
	cache       EmployeeCache
	photos      PhotoStore
	kafkaWriter KafkaWriter
	tx          TxCallbacks
	now         func() time.Time
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(
	reader EmployeeReader,
	writer EmployeeWriter,
	cache EmployeeCache,
	photos PhotoStore,
	kafkaWriter KafkaWriter,
	tx TxCallbacks,
) *EmployeeService {
	return &EmployeeService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		photos:      photos,
		kafkaWriter: kafkaWriter,
		tx:          tx,
		now:         time.Now,
	}
}

// List returns every employee, newest first.
func (s *EmployeeService) List(ctx context.Context) ([]models.EmployeeDB, error) {
	employees, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// Search filters employees by department and/or position.
func (s *EmployeeService) Search(ctx context.Context, filter models.EmployeeFilter) ([]models.EmployeeDB, error) {
	employees, err := s.reader.Search(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to search employees", "department", filter.Department, "position", filter.Position, "error", err)
		return nil, err
	}
	return employees, nil
}

// Get returns one employee, consulting the cache first.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*models.EmployeeDB, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Log.Warnw("employee cache read failed", "employee_id", id, "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	employee, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get employee", "employee_id", id, "error", err)
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, employee); err != nil {
			logger.Log.Warnw("employee cache write failed", "employee_id", id, "error", err)
		}
	}
	return employee, nil
}

// Create stores a new employee. The email is normalized before saving.
func (s *EmployeeService) Create(ctx context.Context, actor string, e *models.EmployeeDB) (*models.EmployeeDB, error) {
	e.Email = NormalizeEmail(e.Email)

	saved, err := s.writer.Save(ctx, e)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrEmployeeEmailExists
		}
		logger.Log.Errorw("failed to create employee", "error", err)
		return nil, err
	}

	logger.Log.Infow("employee created", "employee_id", saved.EmployeeID, "actor", actor)
	s.afterCommit(ctx, func(ctx context.Context) {
		s.publishEvent(ctx, models.EmployeeCreated, saved.EmployeeID, actor)
	})
	return saved, nil
}

// Update applies a partial update and returns the stored result.
func (s *EmployeeService) Update(ctx context.Context, actor string, id uuid.UUID, upd models.EmployeeUpdate) (*models.EmployeeDB, error) {
	if upd.Email != nil {
		email := NormalizeEmail(*upd.Email)
		upd.Email = &email
	}

	current, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to load employee for update", "employee_id", id, "error", err)
		return nil, err
	}
	if current == nil {
		return nil, ErrEmployeeNotFound
	}

	upd.Apply(current)
	updated, err := s.save(ctx, current)
	if err != nil {
		return nil, err
	}

	logger.Log.Infow("employee updated", "employee_id", id, "actor", actor)
	s.afterCommit(ctx, func(ctx context.Context) {
		s.evict(ctx, id)
		s.publishEvent(ctx, models.EmployeeUpdated, id, actor)
	})
	return updated, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	deleted, err := s.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete employee", "employee_id", id, "error", err)
		return err
	}
	if !deleted {
		return ErrEmployeeNotFound
	}

	logger.Log.Infow("employee deleted", "employee_id", id, "actor", actor)
	s.afterCommit(ctx, func(ctx context.Context) {
		s.evict(ctx, id)
		s.publishEvent(ctx, models.EmployeeDeleted, id, actor)
	})
	return nil
}

// UploadPhoto stores a profile photo under a random name and records its location on the employee.
// The stored file is removed again if the employee row cannot be updated.
func (s *EmployeeService) UploadPhoto(ctx context.Context, actor string, id uuid.UUID, originalName string, body io.Reader, size int64, contentType string) (string, error) {
	current, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to load employee for photo", "employee_id", id, "error", err)
		return "", err
	}
	if current == nil {
		return "", ErrEmployeeNotFound
	}

	name, err := s.photoName(originalName)
	if err != nil {
		return "", err
	}

	location, err := s.photos.Save(ctx, name, body, size, contentType)
	if err != nil {
		logger.Log.Errorw("failed to store photo", "employee_id", id, "error", err)
		return "", err
	}

	current.ProfileImageURL = &location
	if _, err := s.save(ctx, current); err != nil {
		s.deletePhoto(context.WithoutCancel(ctx), id, name)
		return "", err
	}
	if s.tx != nil {
		s.tx.OnRollback(ctx, func() { s.deletePhoto(context.WithoutCancel(ctx), id, name) })
	}

	logger.Log.Infow("employee photo uploaded", "employee_id", id, "actor", actor, "location", location)
	s.afterCommit(ctx, func(ctx context.Context) {
		s.evict(ctx, id)
		s.publishEvent(ctx, models.EmployeePhotoUploaded, id, actor)
	})
	return location, nil
}

// save writes e. Callers evict the cache entry once the write is committed.
func (s *EmployeeService) save(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error) {
	updated, err := s.writer.Update(ctx, e)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, ErrEmployeeEmailExists
		}
		logger.Log.Errorw("failed to update employee", "employee_id", e.EmployeeID, "error", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrEmployeeNotFound
	}
	return updated, nil
}

// afterCommit runs fn once the request transaction commits, or right away without one.
// fn gets a context that outlives the request.
func (s *EmployeeService) afterCommit(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	if s.tx == nil {
		fn(detached)
		return
	}
	s.tx.OnCommit(ctx, func() { fn(detached) })
}

func (s *EmployeeService) deletePhoto(ctx context.Context, id uuid.UUID, name string) {
	if err := s.photos.Delete(ctx, name); err != nil {
		logger.Log.Warnw("failed to remove orphaned photo", "employee_id", id, "file", name, "error", err)
		return
	}
	logger.Log.Infow("orphaned photo removed", "employee_id", id, "file", name)
}

func (s *EmployeeService) evict(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.Log.Warnw("employee cache eviction failed", "employee_id", id, "error", err)
	}
}

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// photoName returns "<unix-millis>-<20 hex chars><ext>".
func (s *EmployeeService) photoName(originalName string) (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random photo name: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !safeExt.MatchString(ext) {
		ext = ""
	}

	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), hex.EncodeToString(buf), ext), nil
}

// publishEvent publishes an employee lifecycle event to Kafka. Failures are logged only.
func (s *EmployeeService) publishEvent(ctx context.Context, eventType string, id uuid.UUID, actor string) {
	event := models.EmployeeEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		EmployeeID: id.String(),
		Actor:      actor,
		Timestamp:  s.now().Unix(),
	}

	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID, "type", eventType)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal employee event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EmployeeID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish employee event", "event_id", event.EventID, "type", eventType, "error", err)
	} else {
		logger.Log.Infow("Employee event published", "event_id", event.EventID, "type", eventType, "employee_id", event.EmployeeID)
	}
}
