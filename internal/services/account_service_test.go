package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"dinetap/internal/common"
	"dinetap/internal/models"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTenantRepo  *MockTenantRepository
	service         AccountService
	tenantID        int64
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = &MockAccountRepository{}
	suite.mockTenantRepo = &MockTenantRepository{}
	tenantSvc := NewTenantService(suite.mockTenantRepo)
	suite.service = NewAccountService(suite.mockAccountRepo, tenantSvc)
	suite.tenantID = 6
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTenantRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (suite *AccountServiceTestSuite) expectTenant() {
	suite.mockTenantRepo.On("GetByID", mock.Anything, suite.tenantID).
		Return(&models.Tenant{ID: suite.tenantID, Name: "Taverna", TableCount: 10}, nil)
}

func (suite *AccountServiceTestSuite) TestRegisterCustomer_Success() {
	suite.mockAccountRepo.On("GetByEmail", mock.Anything, "dana@example.com").
		Return((*models.Account)(nil), nil).Once()
	suite.mockAccountRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Account")).
		Return(nil).Once()

	account, err := suite.service.RegisterCustomer(context.Background(), &RegisterAccountRequest{
		Name:  "Dana",
		Email: "Dana@Example.com",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleCustomer, account.Role)
	assert.Equal(suite.T(), "dana@example.com", account.Email)
	assert.Nil(suite.T(), account.TenantID)
}

func (suite *AccountServiceTestSuite) TestRegisterCustomer_DuplicateEmail() {
	suite.mockAccountRepo.On("GetByEmail", mock.Anything, "dana@example.com").
		Return(&models.Account{ID: 1, Email: "dana@example.com"}, nil).Once()

	_, err := suite.service.RegisterCustomer(context.Background(), &RegisterAccountRequest{
		Name:  "Dana",
		Email: "dana@example.com",
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindConflict, common.KindOf(err))
}

func (suite *AccountServiceTestSuite) TestRegisterCustomer_BadEmail() {
	_, err := suite.service.RegisterCustomer(context.Background(), &RegisterAccountRequest{
		Name:  "Dana",
		Email: "not-an-email",
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *AccountServiceTestSuite) TestCreateStaff_Success() {
	suite.expectTenant()
	suite.mockAccountRepo.On("GetByEmail", mock.Anything, "cook@taverna.com").
		Return((*models.Account)(nil), nil).Once()
	suite.mockAccountRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Account")).
		Return(nil).Once()

	account, err := suite.service.CreateStaff(context.Background(), suite.tenantID, &CreateStaffRequest{
		Name:  "Robin",
		Email: "cook@taverna.com",
		Role:  "kitchen",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleKitchen, account.Role)
	assert.Equal(suite.T(), suite.tenantID, *account.TenantID)
}

func (suite *AccountServiceTestSuite) TestCreateStaff_RejectsCustomerRole() {
	suite.expectTenant()

	_, err := suite.service.CreateStaff(context.Background(), suite.tenantID, &CreateStaffRequest{
		Name:  "Robin",
		Email: "robin@example.com",
		Role:  "customer",
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *AccountServiceTestSuite) TestCreateStaff_UnknownRole() {
	suite.expectTenant()

	_, err := suite.service.CreateStaff(context.Background(), suite.tenantID, &CreateStaffRequest{
		Name:  "Robin",
		Email: "robin@example.com",
		Role:  "admin",
	})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *AccountServiceTestSuite) TestRemoveStaff_OtherTenant() {
	otherTenant := suite.tenantID + 1
	suite.mockAccountRepo.On("GetByID", mock.Anything, int64(20)).
		Return(&models.Account{ID: 20, TenantID: &otherTenant, Role: models.RoleStaff}, nil).Once()

	err := suite.service.RemoveStaff(context.Background(), suite.tenantID, 20)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindForbidden, common.KindOf(err))
}

func (suite *AccountServiceTestSuite) TestRemoveStaff_Success() {
	tenantID := suite.tenantID
	suite.mockAccountRepo.On("GetByID", mock.Anything, int64(20)).
		Return(&models.Account{ID: 20, TenantID: &tenantID, Role: models.RoleStaff}, nil).Once()
	suite.mockAccountRepo.On("Delete", mock.Anything, int64(20)).Return(nil).Once()

	err := suite.service.RemoveStaff(context.Background(), suite.tenantID, 20)

	assert.NoError(suite.T(), err)
}

func (suite *AccountServiceTestSuite) TestListStaff_RejectsCustomerRole() {
	suite.expectTenant()

	_, err := suite.service.ListStaff(context.Background(), suite.tenantID, models.RoleCustomer, 50, 0)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}
