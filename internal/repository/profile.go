package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/guardian/internal/models"
	"github.com/shenikar/guardian/internal/service"
)

// DB - минимальный набор операций пула. Ему удовлетворяют *pgxpool.Pool и pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// profileColumns - поля профиля, разрешённые для записи, и их колонки
var profileColumns = map[string]string{
	models.FieldName:              "name",
	models.FieldEmergencyContacts: "emergency_contacts",
}

type ProfileRepository struct {
	db          DB
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewProfileRepository(db DB, redisClient *redis.Client, cacheTTL time.Duration) service.ContactRepository {
	return &ProfileRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// GetProfile читает документ профиля целиком. Отсутствующий профиль читается как пустой.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT
			user_id,
			COALESCE(name, ''),
			COALESCE(emergency_contacts, '[]'::jsonb),
			updated_at
		FROM profiles
		WHERE user_id = $1;
	`
	profile := &models.Profile{}
	var rawContacts []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&rawContacts,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Profile{UserID: userID, EmergencyContacts: models.ContactList{}}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := json.Unmarshal(rawContacts, &profile.EmergencyContacts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal emergency contacts: %w", err)
	}
	if profile.EmergencyContacts == nil {
		profile.EmergencyContacts = models.ContactList{}
	}
	return profile, nil
}

// WriteField перезаписывает одно поле профиля целиком одной командой (upsert)
func (r *ProfileRepository) WriteField(ctx context.Context, userID, field string, value any) error {
	column, ok := profileColumns[field]
	if !ok {
		return fmt.Errorf("unknown profile field %q", field)
	}

	arg := value
	if field == models.FieldEmergencyContacts {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		arg = raw
	}

	// column берётся только из белого списка profileColumns
	query := fmt.Sprintf(`
		INSERT INTO profiles (user_id, %[1]s)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			%[1]s = EXCLUDED.%[1]s,
			updated_at = NOW();
	`, column)
	if _, err := r.db.Exec(ctx, query, userID, arg); err != nil {
		return fmt.Errorf("failed to write profile field %s: %w", field, err)
	}
	return nil
}

// GetContactsFromCache пытается получить список контактов из Redis. Промах - (nil, nil).
func (r *ProfileRepository) GetContactsFromCache(ctx context.Context, userID string) (models.ContactList, error) {
	if r.redisClient == nil {
		return nil, nil
	}
	val, err := r.redisClient.Get(ctx, contactsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get contacts from cache: %w", err)
	}

	list := models.ContactList{}
	if err := json.Unmarshal(val, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contacts from cache: %w", err)
	}
	return list, nil
}

// SetContactsCache сохраняет список контактов в Redis
func (r *ProfileRepository) SetContactsCache(ctx context.Context, userID string, list models.ContactList) error {
	if r.redisClient == nil {
		return nil
	}
	val, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal contacts for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, contactsKey(userID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set contacts in cache: %w", err)
	}
	return nil
}

// InvalidateContactsCache удаляет список контактов из Redis кэша
func (r *ProfileRepository) InvalidateContactsCache(ctx context.Context, userID string) error {
	if r.redisClient == nil {
		return nil
	}
	if err := r.redisClient.Del(ctx, contactsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate contacts cache: %w", err)
	}
	return nil
}

func contactsKey(userID string) string {
	return fmt.Sprintf("contacts:%s", userID)
}
