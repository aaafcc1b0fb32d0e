package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-employee-service/internal/apperr"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
	"github.com/sbilibin2017/gw-employee-service/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type employeeMocks struct {
	reader *services.MockEmployeeReader
	writer *services.MockEmployeeWriter
	cache  *services.MockEmployeeCache
	photos *services.MockPhotoStore
	kafka  *services.MockKafkaWriter
}

func newEmployeeService(t *testing.T) (*services.EmployeeService, employeeMocks) {
	ctrl := gomock.NewController(t)
	m := employeeMocks{
		reader: services.NewMockEmployeeReader(ctrl),
		writer: services.NewMockEmployeeWriter(ctrl),
		cache:  services.NewMockEmployeeCache(ctrl),
		photos: services.NewMockPhotoStore(ctrl),
		kafka:  services.NewMockKafkaWriter(ctrl),
	}
	return services.NewEmployeeService(m.reader, m.writer, m.cache, m.photos, m.kafka, nil), m
}

func sampleEmployee() *models.EmployeeDB {
	return &models.EmployeeDB{
		EmployeeID:    uuid.New(),
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@x.com",
		Position:      "Engineer",
		Salary:        1000,
		DateOfJoining: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Department:    "R&D",
	}
}

// expectEvent asserts that one event of the given type is published for id.
func expectEvent(m employeeMocks, eventType string, id uuid.UUID, actor string) {
	m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
			if len(msgs) != 1 {
				return fmt.Errorf("expected one message, got %d", len(msgs))
			}
			var event models.EmployeeEvent
			if err := json.Unmarshal(msgs[0].Value, &event); err != nil {
				return err
			}
			if event.Type != eventType || event.EmployeeID != id.String() || event.Actor != actor || string(msgs[0].Key) != id.String() {
				return fmt.Errorf("unexpected event %+v", event)
			}
			return nil
		})
}

func TestEmployeeService_ListAndSearch(t *testing.T) {
	svc, m := newEmployeeService(t)
	ctx := context.Background()
	employees := []models.EmployeeDB{*sampleEmployee()}

	m.reader.EXPECT().List(gomock.Any()).Return(employees, nil)
	got, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, employees, got)

	filter := models.EmployeeFilter{Department: "r&d"}
	m.reader.EXPECT().Search(gomock.Any(), filter).Return(employees, nil)
	got, err = svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, employees, got)

	m.reader.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))
	_, err = svc.List(ctx)
	assert.EqualError(t, err, "db down")
}

func TestEmployeeService_Get(t *testing.T) {
	employee := sampleEmployee()
	id := employee.EmployeeID

	tests := []struct {
		name      string
		mockSetup func(m employeeMocks)
		wantErr   error
	}{
		{
			name: "cache hit",
			mockSetup: func(m employeeMocks) {
				m.cache.EXPECT().Get(gomock.Any(), id).Return(employee, nil)
			},
		},
		{
			name: "cache miss fills cache",
			mockSetup: func(m employeeMocks) {
				m.cache.EXPECT().Get(gomock.Any(), id).Return(nil, nil)
				m.reader.EXPECT().GetByID(gomock.Any(), id).Return(employee, nil)
				m.cache.EXPECT().Set(gomock.Any(), employee).Return(nil)
			},
		},
		{
			name: "cache failures are tolerated",
			mockSetup: func(m employeeMocks) {
				m.cache.EXPECT().Get(gomock.Any(), id).Return(nil, errors.New("redis down"))
				m.reader.EXPECT().GetByID(gomock.Any(), id).Return(employee, nil)
				m.cache.EXPECT().Set(gomock.Any(), employee).Return(errors.New("redis down"))
			},
		},
		{
			name: "not found",
			mockSetup: func(m employeeMocks) {
				m.cache.EXPECT().Get(gomock.Any(), id).Return(nil, nil)
				m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)
			},
			wantErr: services.ErrEmployeeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newEmployeeService(t)
			tt.mockSetup(m)

			got, err := svc.Get(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, apperr.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, employee, got)
		})
	}
}

func TestEmployeeService_Get_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockEmployeeReader(ctrl)
	svc := services.NewEmployeeService(reader, services.NewMockEmployeeWriter(ctrl), nil, services.NewMockPhotoStore(ctrl), nil, nil)

	employee := sampleEmployee()
	reader.EXPECT().GetByID(gomock.Any(), employee.EmployeeID).Return(employee, nil)

	got, err := svc.Get(context.Background(), employee.EmployeeID)
	require.NoError(t, err)
	assert.Equal(t, employee, got)
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("normalizes email and publishes", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		input := sampleEmployee()
		input.Email = "  Jane@X.COM "
		saved := sampleEmployee()

		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error) {
				assert.Equal(t, "jane@x.com", e.Email)
				return saved, nil
			})
		expectEvent(m, models.EmployeeCreated, saved.EmployeeID, "alice")

		got, err := svc.Create(context.Background(), "alice", input)
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: employees_email_key", apperr.ErrConflict))

		_, err := svc.Create(context.Background(), "alice", sampleEmployee())
		assert.ErrorIs(t, err, services.ErrEmployeeEmailExists)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		saved := sampleEmployee()
		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(saved, nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker unavailable"))

		got, err := svc.Create(context.Background(), "alice", sampleEmployee())
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("without kafka", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockEmployeeWriter(ctrl)
		svc := services.NewEmployeeService(services.NewMockEmployeeReader(ctrl), writer, nil, services.NewMockPhotoStore(ctrl), nil, nil)

		saved := sampleEmployee()
		writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(saved, nil)

		got, err := svc.Create(context.Background(), "alice", sampleEmployee())
		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	salary := 2000.0
	email := " NEW@X.com"

	t.Run("applies partial update", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()
		id := current.EmployeeID

		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(current, nil)
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error) {
				assert.Equal(t, 2000.0, e.Salary)
				assert.Equal(t, "new@x.com", e.Email)
				assert.Equal(t, "Jane", e.FirstName)
				return e, nil
			})
		m.cache.EXPECT().Delete(gomock.Any(), id).Return(nil)
		expectEvent(m, models.EmployeeUpdated, id, "alice")

		got, err := svc.Update(context.Background(), "alice", id, models.EmployeeUpdate{Salary: &salary, Email: &email})
		require.NoError(t, err)
		assert.Equal(t, 2000.0, got.Salary)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		id := uuid.New()
		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.Update(context.Background(), "alice", id, models.EmployeeUpdate{Salary: &salary})
		assert.ErrorIs(t, err, services.ErrEmployeeNotFound)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()
		m.reader.EXPECT().GetByID(gomock.Any(), current.EmployeeID).Return(current, nil)
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := svc.Update(context.Background(), "alice", current.EmployeeID, models.EmployeeUpdate{Salary: &salary})
		assert.ErrorIs(t, err, services.ErrEmployeeNotFound)
	})

	t.Run("email collision", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()
		m.reader.EXPECT().GetByID(gomock.Any(), current.EmployeeID).Return(current, nil)
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrConflict)

		_, err := svc.Update(context.Background(), "alice", current.EmployeeID, models.EmployeeUpdate{Email: &email})
		assert.ErrorIs(t, err, services.ErrEmployeeEmailExists)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		id := uuid.New()
		m.writer.EXPECT().Delete(gomock.Any(), id).Return(true, nil)
		m.cache.EXPECT().Delete(gomock.Any(), id).Return(errors.New("redis down"))
		expectEvent(m, models.EmployeeDeleted, id, "alice")

		assert.NoError(t, svc.Delete(context.Background(), "alice", id))
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		id := uuid.New()
		m.writer.EXPECT().Delete(gomock.Any(), id).Return(false, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), "alice", id), services.ErrEmployeeNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		id := uuid.New()
		m.writer.EXPECT().Delete(gomock.Any(), id).Return(false, errors.New("db down"))

		assert.EqualError(t, svc.Delete(context.Background(), "alice", id), "db down")
	})
}

func TestEmployeeService_UploadPhoto(t *testing.T) {
	namePattern := regexp.MustCompile(`^\d{13}-[0-9a-f]{20}\.png$`)

	t.Run("stores photo and records location", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()
		id := current.EmployeeID

		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(current, nil)
		m.photos.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), int64(4), "image/png").
			DoAndReturn(func(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
				assert.Regexp(t, namePattern, filename)
				data, _ := io.ReadAll(body)
				assert.Equal(t, "\x89PNG", string(data))
				return "/api/uploads/" + filename, nil
			})
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *models.EmployeeDB) (*models.EmployeeDB, error) {
				require.NotNil(t, e.ProfileImageURL)
				assert.True(t, strings.HasPrefix(*e.ProfileImageURL, "/api/uploads/"))
				return e, nil
			})
		m.cache.EXPECT().Delete(gomock.Any(), id).Return(nil)
		expectEvent(m, models.EmployeePhotoUploaded, id, "alice")

		loc, err := svc.UploadPhoto(context.Background(), "alice", id, "Me.PNG", strings.NewReader("\x89PNG"), 4, "image/png")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(loc, "/api/uploads/"))
	})

	t.Run("unsafe extension is dropped", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()

		m.reader.EXPECT().GetByID(gomock.Any(), current.EmployeeID).Return(current, nil)
		m.photos.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
				assert.Regexp(t, regexp.MustCompile(`^\d{13}-[0-9a-f]{20}$`), filename)
				return "/u/" + filename, nil
			})
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).Return(current, nil)
		m.cache.EXPECT().Delete(gomock.Any(), current.EmployeeID).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.UploadPhoto(context.Background(), "alice", current.EmployeeID, "x.p$p", strings.NewReader("x"), 1, "")
		require.NoError(t, err)
	})

	t.Run("employee not found", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		id := uuid.New()
		m.reader.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.UploadPhoto(context.Background(), "alice", id, "a.png", strings.NewReader("x"), 1, "image/png")
		assert.ErrorIs(t, err, services.ErrEmployeeNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()
		m.reader.EXPECT().GetByID(gomock.Any(), current.EmployeeID).Return(current, nil)
		m.photos.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("disk full"))

		_, err := svc.UploadPhoto(context.Background(), "alice", current.EmployeeID, "a.png", strings.NewReader("x"), 1, "image/png")
		assert.EqualError(t, err, "disk full")
	})

	t.Run("row update failure removes the stored photo", func(t *testing.T) {
		svc, m := newEmployeeService(t)
		current := sampleEmployee()
		var stored string

		m.reader.EXPECT().GetByID(gomock.Any(), current.EmployeeID).Return(current, nil)
		m.photos.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, filename string, body io.Reader, size int64, contentType string) (string, error) {
				stored = filename
				return "/u/" + filename, nil
			})
		m.writer.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
		m.photos.EXPECT().Delete(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, filename string) error {
				assert.Equal(t, stored, filename)
				return nil
			})

		_, err := svc.UploadPhoto(context.Background(), "alice", current.EmployeeID, "a.png", strings.NewReader("x"), 1, "image/png")
		assert.EqualError(t, err, "db down")
	})
}
