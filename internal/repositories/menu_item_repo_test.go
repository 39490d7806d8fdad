package repositories

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"dinetap/internal/models"
)

type MenuItemRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    MenuItemRepository
	context context.Context
}

func (suite *MenuItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewMenuItemRepo(mock)
	suite.context = context.Background()
}

func (suite *MenuItemRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMenuItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MenuItemRepoTestSuite))
}

func menuItemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "tenant_id", "name", "description", "price", "category",
		"image_key", "is_vegetarian", "is_spicy", "is_out_of_stock", "rating_average", "rating_count",
		"created_at", "updated_at"})
}

func (suite *MenuItemRepoTestSuite) TestCreate_StartsWithZeroRatings() {
	item := &models.MenuItem{
		TenantID: 1,
		Name:     "Bruschetta",
		Price:    6.00,
		Category: models.CategoryStarters,
		// Caller-supplied aggregates must not leak into the insert.
		RatingAverage: 4.9,
		RatingCount:   100,
	}

	now := time.Now()
	suite.mock.ExpectQuery("INSERT INTO menu_items").
		WithArgs(item.TenantID, item.Name, item.Description, item.Price, item.Category,
			item.ImageKey, item.IsVegetarian, item.IsSpicy, item.IsOutOfStock).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	err := suite.repo.Create(suite.context, item)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), item.ID)
}

func (suite *MenuItemRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery("SELECT (.+) FROM menu_items").
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	item, err := suite.repo.GetByID(suite.context, 5)

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), item)
}

func (suite *MenuItemRepoTestSuite) TestUpdate_DoesNotTouchRatingColumns() {
	item := &models.MenuItem{
		ID:            5,
		TenantID:      1,
		Name:          "Bruschetta",
		Price:         6.50,
		Category:      models.CategoryStarters,
		RatingAverage: 4.2,
		RatingCount:   17,
	}

	suite.mock.ExpectExec("UPDATE menu_items").
		WithArgs(item.Name, item.Description, item.Price, item.Category, item.ImageKey,
			item.IsVegetarian, item.IsSpicy, item.IsOutOfStock, item.TenantID, item.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, item)

	assert.NoError(suite.T(), err)
}

func (suite *MenuItemRepoTestSuite) TestListByTenant() {
	now := time.Now()
	suite.mock.ExpectQuery("SELECT (.+) FROM menu_items").
		WithArgs(int64(1)).
		WillReturnRows(menuItemRows().
			AddRow(int64(5), int64(1), "Bruschetta", (*string)(nil), 6.00, models.CategoryStarters,
				(*string)(nil), true, false, false, 4.2, 17, now, now).
			AddRow(int64(6), int64(1), "Margherita", (*string)(nil), 11.50, models.CategoryMains,
				(*string)(nil), true, false, false, 0.0, 0, now, now))

	items, err := suite.repo.ListByTenant(suite.context, 1)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), models.CategoryStarters, items[0].Category)
}

func (suite *MenuItemRepoTestSuite) TestDelete_ScopedToTenant() {
	suite.mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(int64(1), int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, 1, 5)

	assert.NoError(suite.T(), err)
}
