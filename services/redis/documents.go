package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis_models "github.com/aftershock-ministries/judas-backend/models/redis"
	redis_utils "github.com/aftershock-ministries/judas-backend/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// Documents expire after a day, one evening's game never lasts that long
const documentTTL = 24 * time.Hour

// ErrStateConflict is returned when a game-state write loses an optimistic
// concurrency race (another principal wrote the document first). Callers
// surface it to the user and never retry automatically.
var ErrStateConflict = errors.New("game state was modified concurrently")

// GetGameState retrieves the singleton state document.
// Key format: "judas:state"
// A missing document yields the initial state without persisting it.
func (rc *RedisClient) GetGameState() (*redis_models.GameState, error) {
	data, err := rc.client.Get(rc.ctx, redis_utils.FormatGameStateKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return redis_models.NewGameState(), nil
		}
		return nil, fmt.Errorf("error getting game state: %v", err)
	}

	var state redis_models.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling game state: %v", err)
	}
	return &state, nil
}

// EnsureGameState writes the initial state document if none exists yet,
// mirroring how the first connecting client seeds the store.
func (rc *RedisClient) EnsureGameState() (*redis_models.GameState, error) {
	initial := redis_models.NewGameState()
	data, err := json.Marshal(initial)
	if err != nil {
		return nil, fmt.Errorf("error marshaling initial game state: %v", err)
	}
	if err := rc.client.SetNX(rc.ctx, redis_utils.FormatGameStateKey(), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("error seeding game state: %v", err)
	}
	return rc.GetGameState()
}

// UpdateGameState applies mutate under a WATCH so the revision token is a
// true check-and-increment: if another writer lands in between, the
// transaction aborts and ErrStateConflict comes back instead of a silent
// last-writer-wins.
func (rc *RedisClient) UpdateGameState(mutate func(*redis_models.GameState) error) (*redis_models.GameState, error) {
	key := redis_utils.FormatGameStateKey()
	var updated *redis_models.GameState

	err := rc.client.Watch(rc.ctx, func(tx *redis.Tx) error {
		state := redis_models.NewGameState()
		data, err := tx.Get(rc.ctx, key).Bytes()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("error getting game state: %v", err)
		}
		if err == nil {
			if err := json.Unmarshal(data, state); err != nil {
				return fmt.Errorf("error unmarshaling game state: %v", err)
			}
		}

		if err := mutate(state); err != nil {
			return err
		}
		state.Revision++
		state.UpdatedAt = time.Now().UTC()

		buf, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("error marshaling game state: %v", err)
		}

		_, err = tx.TxPipelined(rc.ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(rc.ctx, key, buf, 0)
			return nil
		})
		if err == nil {
			updated = state
		}
		return err
	}, key)

	if err == redis.TxFailedErr {
		return nil, ErrStateConflict
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetHostToken stores the capability token minted when an admin assigns a
// host. An empty token revokes host authority.
func (rc *RedisClient) SetHostToken(token string) error {
	key := redis_utils.FormatHostTokenKey()
	if token == "" {
		return rc.client.Del(rc.ctx, key).Err()
	}
	return rc.client.Set(rc.ctx, key, token, 0).Err()
}

// GetHostToken returns the current host capability token, empty when no
// host is assigned.
func (rc *RedisClient) GetHostToken() (string, error) {
	token, err := rc.client.Get(rc.ctx, redis_utils.FormatHostTokenKey()).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error getting host token: %v", err)
	}
	return token, nil
}

// SaveNightVote upserts a judas player's night vote.
// Key format: "judas:night_vote:{round}_{voterUid}", indexed per round.
func (rc *RedisClient) SaveNightVote(vote *redis_models.NightVote) error {
	key := redis_utils.FormatNightVoteKey(vote.Round, vote.VoterUID)
	index := redis_utils.FormatNightVoteIndexKey(vote.Round)
	return rc.saveIndexedDocument(key, index, vote)
}

// GetNightVotes lists all night votes for a round
func (rc *RedisClient) GetNightVotes(round int) ([]redis_models.NightVote, error) {
	blobs, err := rc.listIndexedDocuments(redis_utils.FormatNightVoteIndexKey(round))
	if err != nil {
		return nil, err
	}
	votes := make([]redis_models.NightVote, 0, len(blobs))
	for _, blob := range blobs {
		var vote redis_models.NightVote
		if err := json.Unmarshal(blob, &vote); err != nil {
			return nil, fmt.Errorf("error unmarshaling night vote: %v", err)
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

// SaveProtect upserts an angel player's protection.
// Key format: "judas:protect:{round}_{protectorUid}", indexed per round.
func (rc *RedisClient) SaveProtect(protect *redis_models.Protect) error {
	key := redis_utils.FormatProtectKey(protect.Round, protect.ProtectorUID)
	index := redis_utils.FormatProtectIndexKey(protect.Round)
	return rc.saveIndexedDocument(key, index, protect)
}

// GetProtects lists all protections for a round
func (rc *RedisClient) GetProtects(round int) ([]redis_models.Protect, error) {
	blobs, err := rc.listIndexedDocuments(redis_utils.FormatProtectIndexKey(round))
	if err != nil {
		return nil, err
	}
	protects := make([]redis_models.Protect, 0, len(blobs))
	for _, blob := range blobs {
		var protect redis_models.Protect
		if err := json.Unmarshal(blob, &protect); err != nil {
			return nil, fmt.Errorf("error unmarshaling protect: %v", err)
		}
		protects = append(protects, protect)
	}
	return protects, nil
}

// SaveDayVote upserts a public accusation vote.
// Key format: "judas:day_vote:{round}_{voterUid}", indexed per round.
func (rc *RedisClient) SaveDayVote(vote *redis_models.DayVote) error {
	key := redis_utils.FormatDayVoteKey(vote.Round, vote.VoterUID)
	index := redis_utils.FormatDayVoteIndexKey(vote.Round)
	return rc.saveIndexedDocument(key, index, vote)
}

// GetDayVotes lists all day votes for a round
func (rc *RedisClient) GetDayVotes(round int) ([]redis_models.DayVote, error) {
	blobs, err := rc.listIndexedDocuments(redis_utils.FormatDayVoteIndexKey(round))
	if err != nil {
		return nil, err
	}
	votes := make([]redis_models.DayVote, 0, len(blobs))
	for _, blob := range blobs {
		var vote redis_models.DayVote
		if err := json.Unmarshal(blob, &vote); err != nil {
			return nil, fmt.Errorf("error unmarshaling day vote: %v", err)
		}
		votes = append(votes, vote)
	}
	return votes, nil
}

// ClearDayVotes deletes the day votes of a round, used when the host
// restarts a vote without advancing the round.
func (rc *RedisClient) ClearDayVotes(round int) error {
	return rc.clearIndexes(redis_utils.FormatDayVoteIndexKey(round))
}

// ClearRound deletes every night vote, protect and day vote document whose
// round matches, in a single pipeline. Documents of other rounds are
// untouched.
func (rc *RedisClient) ClearRound(round int) error {
	return rc.clearIndexes(
		redis_utils.FormatNightVoteIndexKey(round),
		redis_utils.FormatProtectIndexKey(round),
		redis_utils.FormatDayVoteIndexKey(round),
	)
}

// saveIndexedDocument writes a document and registers it in its round index
// in one pipeline, so listing and clearing stay consistent with the write.
func (rc *RedisClient) saveIndexedDocument(key, index string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshaling document %s: %v", key, err)
	}

	pipe := rc.client.Pipeline()
	pipe.Set(rc.ctx, key, data, documentTTL)
	pipe.SAdd(rc.ctx, index, key)
	pipe.Expire(rc.ctx, index, documentTTL)
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error saving document %s: %v", key, err)
	}
	return nil
}

func (rc *RedisClient) listIndexedDocuments(index string) ([][]byte, error) {
	keys, err := rc.client.SMembers(rc.ctx, index).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading index %s: %v", index, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := rc.client.MGet(rc.ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading documents for %s: %v", index, err)
	}

	blobs := make([][]byte, 0, len(values))
	for _, value := range values {
		// Expired documents may linger in the index, skip them
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			blobs = append(blobs, []byte(v))
		case []byte:
			blobs = append(blobs, v)
		}
	}
	return blobs, nil
}

func (rc *RedisClient) clearIndexes(indexes ...string) error {
	pipe := rc.client.Pipeline()
	for _, index := range indexes {
		keys, err := rc.client.SMembers(rc.ctx, index).Result()
		if err != nil {
			return fmt.Errorf("error reading index %s: %v", index, err)
		}
		if len(keys) > 0 {
			pipe.Del(rc.ctx, keys...)
		}
		pipe.Del(rc.ctx, index)
	}
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error clearing documents: %v", err)
	}
	return nil
}
