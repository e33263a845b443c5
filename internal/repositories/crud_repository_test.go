package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourhub_backend/internal/models"
)

func TestListOptions_Normalized(t *testing.T) {
	o := ListOptions{}.normalized()
	assert.Equal(t, DefaultPage, o.Page)
	assert.Equal(t, DefaultLimit, o.Limit)

	o = ListOptions{Page: 3, Limit: 5000}.normalized()
	assert.Equal(t, 3, o.Page)
	assert.Equal(t, MaxLimit, o.Limit)
}

func TestTourRepository_ListSortsWhitelistedColumns(t *testing.T) {
	db, mock, rec := newMockDB(t)
	repo := NewTourRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tours" WHERE secret_tour = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "tours" WHERE .+ORDER BY price,ratings_average DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("t1", "Forest Hiker").AddRow("t2", "Sea Explorer"))

	tours, total, err := repo.List(context.Background(), db, ListOptions{
		Sort:    "price,-ratingsAverage,password",
		Filters: map[string]interface{}{"difficulty": "easy", "secret": true},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, tours, 2)
	assert.Contains(t, rec.last(), "difficulty = ")
	assert.NotContains(t, rec.last(), "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTourRepository_UpdateRefreshesSlug(t *testing.T) {
	db, mock, rec := newMockDB(t)
	repo := NewTourRepository()

	mock.ExpectExec(`UPDATE "tours" SET .*"slug"=`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "tours" WHERE id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow("t1", "The Park Camper", "the-park-camper"))

	tour, err := repo.Update(context.Background(), db, "t1", map[string]interface{}{"name": "The Park Camper"})
	require.NoError(t, err)
	assert.Equal(t, "the-park-camper", tour.Slug)
	assert.Contains(t, rec.queries[0], "slug")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCRUDRepository_DeleteMissing(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewCRUDRepository[models.Booking](bookingColumns)

	mock.ExpectExec(`DELETE FROM "bookings" WHERE id = `).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), db, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_RatingStats(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := NewReviewRepository()

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS quantity, COALESCE\(AVG\(rating\), 0\) AS average FROM "reviews" WHERE tour_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"quantity", "average"}).AddRow(3, 4.333333))

	stats, err := repo.RatingStats(context.Background(), db, "t1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Quantity)
	assert.InDelta(t, 4.333, stats.Average, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelsSlugify(t *testing.T) {
	assert.Equal(t, "the-forest-hiker", models.Slugify("  The Forest Hiker! "))
	assert.Equal(t, "sea-explorer-2", models.Slugify("Sea   Explorer 2"))
}

func TestBookingRepository_FindToursBookedBy(t *testing.T) {
	db, mock, rec := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT \* FROM "tours" WHERE id IN \(SELECT .*tour_id.* FROM "bookings" WHERE user_id = `).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("t1", "Forest Hiker"))

	tours, err := repo.FindToursBookedBy(context.Background(), db, "u-1")
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "Forest Hiker", tours[0].Name)
	assert.NotContains(t, rec.last(), "secret_tour")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCRUDRepository_ListFiltersUnknownKeys(t *testing.T) {
	db, mock, rec := newMockDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE user_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE user_id = .+LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tour_id", "user_id", "price", "paid"}).AddRow("b1", "t1", "u-1", 497.0, true))

	bookings, total, err := repo.List(context.Background(), db, ListOptions{
		Filters: map[string]interface{}{"user": "u-1", "role": "admin"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].Paid)
	assert.NotContains(t, rec.last(), "role")
	assert.NoError(t, mock.ExpectationsWereMet())
}
