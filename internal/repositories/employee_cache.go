package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// EmployeeCacheRepository caches single employees in Redis as JSON.
type EmployeeCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewEmployeeCacheRepository(client *redis.Client, expiration time.Duration) *EmployeeCacheRepository {
	return &EmployeeCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func employeeKey(id uuid.UUID) string {
	return fmt.Sprintf("employee:%s", id)
}

// Get returns the cached employee, or nil on a cache miss.
func (r *EmployeeCacheRepository) Get(ctx context.Context, id uuid.UUID) (*models.EmployeeDB, error) {
	key := employeeKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("cache get", "key", key, "result", "miss")
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow("cache get", "key", key, "error", err)
		return nil, err
	}

	var employee models.EmployeeDB
	if err := json.Unmarshal(val, &employee); err != nil {
		logger.Log.Infow("cache decode", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow("cache get", "key", key, "result", "hit")
	return &employee, nil
}

// Set stores e under its id with the configured TTL.
func (r *EmployeeCacheRepository) Set(ctx context.Context, e *models.EmployeeDB) error {
	key := employeeKey(e.EmployeeID)

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}

// Delete evicts the employee.
func (r *EmployeeCacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	key := employeeKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache delete", "key", key, "error", err)
	return err
}
