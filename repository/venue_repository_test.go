package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"venue-booking-service/models"
	"venue-booking-service/repository"
)

var venueColumns = []string{"id", "name", "city", "capacity", "price", "type", "image_url", "rating", "description"}

func TestVenueFindByID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormVenueRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venues" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(venueColumns).
			AddRow(1, "Лофт", "Москва", 120, 50000, "Лофт", "https://img/1.jpg", nil, "Просторный зал"))

	v, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), v.Price)
	assert.Nil(t, v.Rating)
	assert.Equal(t, models.DefaultVenueRating, v.EffectiveRating())
}

func TestVenueFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormVenueRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venues"`)).
		WillReturnRows(sqlmock.NewRows(venueColumns))

	_, err := repo.FindByID(context.Background(), 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestVenueList_AppliesFilters(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormVenueRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venues" WHERE city = $1 AND type = $2 AND capacity >= $3 ORDER BY rating DESC NULLS LAST,name ASC`)).
		WithArgs("Москва", "Банкетный зал", 50).
		WillReturnRows(sqlmock.NewRows(venueColumns).
			AddRow(2, "Зал", "Москва", 100, 30000, "Банкетный зал", "", 4.8, ""))

	venues, err := repo.List(context.Background(), models.VenueFilter{City: "Москва", Type: "Банкетный зал", MinCapacity: 50})
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, 4.8, venues[0].EffectiveRating())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueList_SentinelsMeanNoFilter(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormVenueRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venues" ORDER BY`)).
		WillReturnRows(sqlmock.NewRows(venueColumns))

	_, err := repo.List(context.Background(), models.VenueFilter{City: models.AllCities, Type: models.AllTypes})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type countingRecorder struct {
	counts map[string]int
}

func (c *countingRecorder) RecordCount(_ context.Context, name string, _ map[string]string) error {
	c.counts[name]++
	return nil
}

func TestCachedVenueRepository_NilClientIsPassthrough(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	base := repository.NewGormVenueRepository(gormDB)

	repo := repository.NewCachedVenueRepository(base, nil, time.Minute, nil, zap.NewNop())
	assert.Same(t, base, repo)
}

func TestCachedVenueRepository_RedisDownFallsBackToDatabase(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	base := repository.NewGormVenueRepository(gormDB)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	metrics := &countingRecorder{counts: map[string]int{}}
	repo := repository.NewCachedVenueRepository(base, client, time.Minute, metrics, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "venues" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(venueColumns).
			AddRow(1, "Лофт", "Москва", 120, 50000, "Лофт", "", 4.7, ""))

	v, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Лофт", v.Name)
	assert.Equal(t, 1, metrics.counts["CacheMisses"])
	assert.Equal(t, 0, metrics.counts["CacheHits"])
}
