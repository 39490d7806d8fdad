package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"dinetap/internal/common"
	"dinetap/internal/models"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockTenantRepo *MockTenantRepository
	mockCache      *MockCacheService
	service        SessionService
	tenantID       int64
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockTenantRepo = &MockTenantRepository{}
	suite.mockCache = &MockCacheService{}
	tenantSvc := NewTenantService(suite.mockTenantRepo)
	suite.service = NewSessionService(tenantSvc, suite.mockCache)
	suite.tenantID = 9
}

func (suite *SessionServiceTestSuite) TearDownTest() {
	suite.mockTenantRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (suite *SessionServiceTestSuite) expectTenant(tables int) {
	suite.mockTenantRepo.On("GetByID", mock.Anything, suite.tenantID).
		Return(&models.Tenant{ID: suite.tenantID, Name: "Cantina", TableCount: tables}, nil)
}

func (suite *SessionServiceTestSuite) TestStart_IssuesToken() {
	suite.expectTenant(12)
	suite.mockCache.On("SetSession", mock.Anything, mock.AnythingOfType("*models.TableSession"), 4*time.Hour).
		Return(nil).Once()

	session, err := suite.service.Start(context.Background(), suite.tenantID, 4)

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), session.Token)
	assert.Equal(suite.T(), suite.tenantID, session.TenantID)
	assert.Equal(suite.T(), 4, session.TableNumber)
}

func (suite *SessionServiceTestSuite) TestStart_TableOutOfRange() {
	suite.expectTenant(12)

	_, err := suite.service.Start(context.Background(), suite.tenantID, 13)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *SessionServiceTestSuite) TestStart_TableZero() {
	suite.expectTenant(12)

	_, err := suite.service.Start(context.Background(), suite.tenantID, 0)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *SessionServiceTestSuite) TestStart_DefaultTableCountWhenUnset() {
	suite.expectTenant(0)
	suite.mockCache.On("SetSession", mock.Anything, mock.AnythingOfType("*models.TableSession"), 4*time.Hour).
		Return(nil).Once()

	session, err := suite.service.Start(context.Background(), suite.tenantID, models.DefaultTableCount)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DefaultTableCount, session.TableNumber)
}

func (suite *SessionServiceTestSuite) TestResolve_ReturnsSession() {
	stored := &models.TableSession{Token: "tok", TenantID: suite.tenantID, TableNumber: 2}
	suite.mockCache.On("GetSession", mock.Anything, "tok").Return(stored, nil).Once()

	session, err := suite.service.Resolve(context.Background(), "tok")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, session)
}

func (suite *SessionServiceTestSuite) TestResolve_ExpiredToken() {
	suite.mockCache.On("GetSession", mock.Anything, "gone").Return((*models.TableSession)(nil), nil).Once()

	_, err := suite.service.Resolve(context.Background(), "gone")

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *SessionServiceTestSuite) TestResolve_MissingToken() {
	_, err := suite.service.Resolve(context.Background(), "")

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *SessionServiceTestSuite) TestEnd_DeletesSession() {
	suite.mockCache.On("DeleteSession", mock.Anything, "tok").Return(nil).Once()

	err := suite.service.End(context.Background(), "tok")

	assert.NoError(suite.T(), err)
}
