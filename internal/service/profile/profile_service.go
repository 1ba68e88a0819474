package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"ninjamap/internal/model"
	pg "ninjamap/internal/postgres"
	redis_client "ninjamap/internal/redis"
	"ninjamap/internal/service/storage"
	"ninjamap/internal/util"
)

const ProfileRedisKey = "profile"

// ErrProfileNotFound is returned for lookups of unknown profile IDs.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService keeps profiles in an injected storage and persists them to
// Redis (fast cycle) and PostgreSQL (slow cycle).
type ProfileService struct {
	storage     storage.Storage[string, *model.Profile]
	initialized bool
	initMutex   sync.RWMutex
}

var (
	profileServiceInstance *ProfileService
	profileServiceOnce     sync.Once
)

// GetProfileService returns the singleton instance of ProfileService.
func GetProfileService() *ProfileService {
	profileServiceOnce.Do(func() {
		profileServiceInstance = NewProfileService(
			storage.NewShardedMemoryStorage[string, *model.Profile](8, nil))
	})
	return profileServiceInstance
}

// NewProfileService creates a service over the given storage. Tests inject
// their own storage here instead of going through the singleton.
func NewProfileService(store storage.Storage[string, *model.Profile]) *ProfileService {
	return &ProfileService{storage: store}
}

// InitService loads profiles from PostgreSQL, then overlays newer entries
// from Redis.
func (s *ProfileService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing ProfileService...")
	startTime := time.Now()

	pgProfiles, err := s.loadAllProfilesFromPG()
	if err != nil {
		return fmt.Errorf("failed to load profiles from PostgreSQL: %w", err)
	}
	log.Printf("Loaded %d profiles from PostgreSQL in %v", len(pgProfiles), time.Since(startTime))

	redisProfiles, err := s.loadAllProfilesFromRedis(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profiles from Redis: %w", err)
	}
	log.Printf("Loaded %d profile updates from Redis", len(redisProfiles))

	merged := s.mergeProfilesIntoStorage(pgProfiles, redisProfiles)
	log.Printf("Merged %d newer profiles from Redis", merged)

	log.Printf("Initialization complete: %d profiles in memory, took %v",
		s.storage.Count(), time.Since(startTime))

	s.initialized = true
	return nil
}

func (s *ProfileService) loadAllProfilesFromPG() ([]*model.Profile, error) {
	db := pg.GetDB()
	var profiles []*model.Profile

	result := db.Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

func (s *ProfileService) loadAllProfilesFromRedis(ctx context.Context) (map[string]*model.Profile, error) {
	client := redis_client.GetClient()
	var cursor uint64
	var keys []string
	pattern := fmt.Sprintf("%s:*", ProfileRedisKey)

	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	profiles := make(map[string]*model.Profile)
	if len(keys) == 0 {
		return profiles, nil
	}

	jsonData, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, data := range jsonData {
		jsonStr, ok := data.(string)
		if !ok || jsonStr == "" {
			continue
		}

		p := &model.Profile{}
		if err := json.Unmarshal([]byte(jsonStr), p); err != nil {
			continue
		}
		profiles[p.ID] = p
	}

	return profiles, nil
}

// mergeProfilesIntoStorage loads PG rows first, then Redis entries whose
// UpdatedAt is newer. Password hashes never travel through Redis, so a
// newer Redis entry keeps the hash loaded from PostgreSQL.
func (s *ProfileService) mergeProfilesIntoStorage(pgProfiles []*model.Profile, redisProfiles map[string]*model.Profile) int {
	for _, p := range pgProfiles {
		s.storage.Set(p.ID, p)
	}

	merged := 0
	for id, rp := range redisProfiles {
		existing, ok := s.storage.Get(id)
		if ok && !rp.UpdatedAt.After(existing.UpdatedAt) {
			continue
		}
		if ok {
			rp.PasswordHash = existing.PasswordHash
		}
		s.storage.Set(id, rp)
		merged++
	}

	// Loading is not a modification.
	keys := make([]string, 0, s.storage.Count())
	for k := range s.storage.GetAll() {
		keys = append(keys, k)
	}
	s.storage.ClearDirty(keys)

	return merged
}

// Get returns a profile by ID.
func (s *ProfileService) Get(id string) (*model.Profile, error) {
	p, ok := s.storage.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return p, nil
}

// Create stores a new profile, assigning an ID when none is set.
func (s *ProfileService) Create(p *model.Profile) *model.Profile {
	if p.ID == "" {
		p.ID = util.ShortUUID()
	}
	p.UpdatedAt = time.Now()
	s.storage.Set(p.ID, p)
	return p
}

// Update overwrites the mutable profile fields. The password hash is only
// changed through UpdatePassword. Stored profiles are copy-on-write so
// pointers handed out by Get stay immutable under concurrent updates.
func (s *ProfileService) Update(id string, update *model.Profile) (*model.Profile, error) {
	existing, ok := s.storage.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	updated := *existing
	updated.Username = update.Username
	updated.Email = update.Email
	updated.FullName = update.FullName
	updated.HomeLat = update.HomeLat
	updated.HomeLng = update.HomeLng
	updated.HomeAddress = update.HomeAddress
	updated.UpdatedAt = time.Now()

	s.storage.Set(id, &updated)
	return &updated, nil
}

// UpdatePassword replaces the stored password hash.
func (s *ProfileService) UpdatePassword(id, passwordHash string) error {
	existing, ok := s.storage.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	updated := *existing
	updated.PasswordHash = passwordHash
	updated.UpdatedAt = time.Now()
	s.storage.Set(id, &updated)
	return nil
}

// SaveDirtyProfilesToRedis saves modified profiles to Redis.
func (s *ProfileService) SaveDirtyProfilesToRedis() error {
	dirty := s.storage.GetDirty()
	if len(dirty) == 0 {
		return nil
	}

	client := redis_client.GetClient()
	ctx := context.Background()
	pipe := client.Pipeline()

	keys := make([]string, 0, len(dirty))
	for id, p := range dirty {
		profileKey := fmt.Sprintf("%s:%s", ProfileRedisKey, id)
		profileJSON, err := json.Marshal(p.ToLightVersion())
		if err != nil {
			return err
		}
		pipe.Set(ctx, profileKey, profileJSON, 0)
		keys = append(keys, id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	// Clear flags only after successful save
	s.storage.ClearDirty(keys)

	log.Printf("Saved %d profiles to Redis", len(dirty))
	return nil
}

// SaveAllProfilesToPG persists every profile to PostgreSQL in batches.
func (s *ProfileService) SaveAllProfilesToPG() error {
	profiles := s.storage.GetAllValues()
	if len(profiles) == 0 {
		return nil
	}

	db := pg.GetDB()
	if err := db.Save(profiles).Error; err != nil {
		return err
	}

	log.Printf("Saved %d profiles to PostgreSQL", len(profiles))
	return nil
}
