package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"dinetap/internal/common"
	"dinetap/internal/models"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	service        TenantService
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = &MockTenantRepository{}
	suite.service = NewTenantService(suite.mockTenantRepo)
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (suite *TenantServiceTestSuite) TestResolve_Success() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Tenant{ID: 5, Name: "Osteria", TableCount: 14}, nil).Once()

	tenant, err := suite.service.Resolve(context.Background(), 5)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Osteria", tenant.Name)
}

func (suite *TenantServiceTestSuite) TestResolve_UnknownTenant() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return((*models.Tenant)(nil), nil).Once()

	_, err := suite.service.Resolve(context.Background(), 5)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindTenantNotFound, common.KindOf(err))
}

func (suite *TenantServiceTestSuite) TestResolve_InvalidID() {
	_, err := suite.service.Resolve(context.Background(), 0)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *TenantServiceTestSuite) TestResolve_RepoFailure() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return((*models.Tenant)(nil), errors.New("timeout")).Once()

	_, err := suite.service.Resolve(context.Background(), 5)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindInternal, common.KindOf(err))
}

func (suite *TenantServiceTestSuite) TestTableCount_Configured() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Tenant{ID: 5, Name: "Osteria", TableCount: 14}, nil).Once()

	tables, err := suite.service.TableCount(context.Background(), 5)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 14, tables)
}

func (suite *TenantServiceTestSuite) TestTableCount_DefaultsWhenUnset() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Tenant{ID: 5, Name: "Osteria"}, nil).Once()

	tables, err := suite.service.TableCount(context.Background(), 5)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DefaultTableCount, tables)
}

func (suite *TenantServiceTestSuite) TestCreate_DefaultsTableCount() {
	suite.mockTenantRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Tenant")).
		Return(nil).Once()

	tenant, err := suite.service.Create(context.Background(), &CreateTenantRequest{Name: "Osteria"})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DefaultTableCount, tenant.TableCount)
}

func (suite *TenantServiceTestSuite) TestCreate_NameRequired() {
	_, err := suite.service.Create(context.Background(), &CreateTenantRequest{})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *TenantServiceTestSuite) TestUpdate_PartialFieldsKeepCurrentValues() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Tenant{ID: 5, Name: "Osteria", TableCount: 14}, nil).Once()
	suite.mockTenantRepo.On("Update", mock.Anything, mock.MatchedBy(func(t *models.Tenant) bool {
		return t.ID == 5 && t.Name == "Osteria" && t.TableCount == 30
	})).Return(nil).Once()

	tableCount := 30
	tenant, err := suite.service.Update(context.Background(), 5, &UpdateTenantRequest{TableCount: &tableCount})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 30, tenant.TableCount)
	assert.Equal(suite.T(), "Osteria", tenant.Name)
}

func (suite *TenantServiceTestSuite) TestUpdate_RejectsNonPositiveTableCount() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Tenant{ID: 5, Name: "Osteria", TableCount: 14}, nil).Once()

	tableCount := 0
	_, err := suite.service.Update(context.Background(), 5, &UpdateTenantRequest{TableCount: &tableCount})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *TenantServiceTestSuite) TestUpdate_UnknownTenant() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return((*models.Tenant)(nil), nil).Once()

	name := "Trattoria"
	_, err := suite.service.Update(context.Background(), 5, &UpdateTenantRequest{Name: &name})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindTenantNotFound, common.KindOf(err))
}

func (suite *TenantServiceTestSuite) TestDelete_Success() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&models.Tenant{ID: 5, Name: "Osteria", TableCount: 14}, nil).Once()
	suite.mockTenantRepo.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

	err := suite.service.Delete(context.Background(), 5)

	assert.NoError(suite.T(), err)
}

func (suite *TenantServiceTestSuite) TestDelete_UnknownTenant() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, int64(5)).
		Return((*models.Tenant)(nil), nil).Once()

	err := suite.service.Delete(context.Background(), 5)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindTenantNotFound, common.KindOf(err))
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}
