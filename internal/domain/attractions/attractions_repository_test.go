package attractions

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

var attractionColumns = []string{
	"id", "city", "name", "category", "indoor_outdoor", "tags",
	"opening_hours", "avg_visit_duration", "entry_fee",
	"latitude", "longitude", "address", "description", "images",
}

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(mockPool, logger), mockPool
}

func expectCityExists(mockPool pgxmock.PgxPoolIface, city string, exists bool) {
	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM attractions WHERE city = $1)")).
		WithArgs(city).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestRepositoryGetByCity(t *testing.T) {
	ctx := context.Background()

	t.Run("returns catalog rows in order", func(t *testing.T) {
		repo, mockPool := setupRepositoryTest(t)
		expectCityExists(mockPool, "jaipur", true)

		id1, id2 := uuid.New(), uuid.New()
		rows := pgxmock.NewRows(attractionColumns).
			AddRow(id1, "jaipur", "City Palace", "heritage", "indoor", []string{"photography"},
				"09:30–17:00", 90, map[string]float64{"indian": 200, "foreigner": 700},
				26.9255, 75.8236, "Jaleb Chowk", "royal residence", []string{"palace.jpg"}).
			AddRow(id2, "jaipur", "Hawa Mahal", "heritage", "outdoor", []string{"crowded", "photography"},
				"09:00–16:30", 60, map[string]float64{"indian": 50, "foreigner": 200},
				26.9239, 75.8267, "Badi Choupad", "palace of winds", nil)

		mockPool.ExpectQuery(regexp.QuoteMeta("FROM attractions WHERE city = $1 ORDER BY seq")).
			WithArgs("jaipur").
			WillReturnRows(rows)

		got, err := repo.GetByCity(ctx, "Jaipur", types.AttractionFilters{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, id1, got[0].ID)
		assert.Equal(t, "City Palace", got[0].Name)
		assert.Equal(t, 700.0, got[0].EntryFee[types.FeeTierForeigner])
		assert.Equal(t, "Hawa Mahal", got[1].Name)
		assert.True(t, got[1].HasTag("crowded"))

		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("unknown city", func(t *testing.T) {
		repo, mockPool := setupRepositoryTest(t)
		expectCityExists(mockPool, "atlantis", false)

		_, err := repo.GetByCity(ctx, "atlantis", types.AttractionFilters{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("avoid crowd filter narrows the query", func(t *testing.T) {
		repo, mockPool := setupRepositoryTest(t)
		expectCityExists(mockPool, "udaipur", true)

		mockPool.ExpectQuery(regexp.QuoteMeta("NOT (tags @> ARRAY['crowded']::text[])")).
			WithArgs("udaipur").
			WillReturnRows(pgxmock.NewRows(attractionColumns))

		got, err := repo.GetByCity(ctx, "udaipur", types.AttractionFilters{AvoidCrowd: true})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestRepositoryListCities(t *testing.T) {
	repo, mockPool := setupRepositoryTest(t)

	mockPool.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT city FROM attractions ORDER BY city")).
		WillReturnRows(pgxmock.NewRows([]string{"city"}).AddRow("jaipur").AddRow("jaisalmer").AddRow("udaipur"))

	cities, err := repo.ListCities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"jaipur", "jaisalmer", "udaipur"}, cities)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
