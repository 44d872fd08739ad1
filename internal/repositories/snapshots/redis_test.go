package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	weatherdomain "github.com/KirkDiggler/hexcrawl-survival/internal/domain/weather"
	apperrors "github.com/KirkDiggler/hexcrawl-survival/internal/errors"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/simulation"
	"github.com/KirkDiggler/hexcrawl-survival/internal/services/weather"
)

const testTTL = time.Hour

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:      s.mockClient,
		SnapshotTTL: testTTL,
	})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) sampleSnapshot() (*simulation.Snapshot, string) {
	snap := &simulation.Snapshot{
		SchemaVersion: simulation.SchemaVersion,
		Weather: &weather.Snapshot{
			State: weatherdomain.State{TypeID: "dust_storm", Remaining: 3, Intensity: 1.0},
		},
	}
	data, err := json.Marshal(snap)
	s.Require().NoError(err)
	return snap, string(data)
}

func (s *RedisRepoTestSuite) TestSave() {
	ctx := context.Background()
	snap, data := s.sampleSnapshot()

	// Happy path
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("snapshot:session-1", []byte(data), testTTL).SetVal("OK")
	s.mock.ExpectSAdd("snapshots", "session-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Save(ctx, "session-1", snap))

	// Dependency error
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("snapshot:session-1", []byte(data), testTTL).SetErr(errors.New("redis error"))

	err := s.repo.Save(ctx, "session-1", snap)
	s.Error(err)
	s.True(apperrors.IsCode(err, apperrors.CodeUnavailable))

	// Input validation
	s.Error(s.repo.Save(ctx, "", snap))
	s.Error(s.repo.Save(ctx, "session-1", nil))
}

func (s *RedisRepoTestSuite) TestLoad() {
	ctx := context.Background()
	_, data := s.sampleSnapshot()

	// Happy path
	s.mock.ExpectGet("snapshot:session-1").SetVal(data)

	loaded, err := s.repo.Load(ctx, "session-1")
	s.NoError(err)
	s.Equal(simulation.SchemaVersion, loaded.SchemaVersion)
	s.Require().NotNil(loaded.Weather)
	s.Equal("dust_storm", loaded.Weather.State.TypeID)

	// Missing key maps to not-found
	s.mock.ExpectGet("snapshot:missing").RedisNil()

	_, err = s.repo.Load(ctx, "missing")
	s.Error(err)
	s.True(apperrors.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("snapshot:session-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Load(ctx, "session-1")
	s.Error(err)
	s.True(apperrors.IsCode(err, apperrors.CodeUnavailable))

	// Corrupt payload
	s.mock.ExpectGet("snapshot:session-1").SetVal("{not json")

	_, err = s.repo.Load(ctx, "session-1")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	// Happy path
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("snapshot:session-1").SetVal(1)
	s.mock.ExpectSRem("snapshots", "session-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Delete(ctx, "session-1"))

	// Deleting a key that was never stored
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("snapshot:missing").SetVal(0)
	s.mock.ExpectSRem("snapshots", "missing").SetVal(0)
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Delete(ctx, "missing")
	s.Error(err)
	s.True(apperrors.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestList() {
	ctx := context.Background()

	s.mock.ExpectSMembers("snapshots").SetVal([]string{"session-1", "session-2"})

	ids, err := s.repo.List(ctx)
	s.NoError(err)
	s.ElementsMatch([]string{"session-1", "session-2"}, ids)

	// Dependency error
	s.mock.ExpectSMembers("snapshots").SetErr(errors.New("redis error"))

	_, err = s.repo.List(ctx)
	s.Error(err)
	s.True(apperrors.IsCode(err, apperrors.CodeUnavailable))
}
