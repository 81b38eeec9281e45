package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/contabix/contabix_backend/internal/core/domain"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/core/services"
	"github.com/contabix/contabix_backend/internal/dto"
)

type APIKeyServiceTestSuite struct {
	suite.Suite
	mockAPIKeyRepo *MockAPIKeyRepository
	service        portssvc.APIKeySvcFacade

	tenantID string
	userID   string
}

func (suite *APIKeyServiceTestSuite) SetupTest() {
	suite.mockAPIKeyRepo = new(MockAPIKeyRepository)
	suite.service = services.NewAPIKeyService(suite.mockAPIKeyRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *APIKeyServiceTestSuite) TestIssueAndValidate() {
	ctx := context.Background()

	var saved domain.APIKey
	suite.mockAPIKeyRepo.On("SaveAPIKey", ctx, mock.AnythingOfType("domain.APIKey")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.APIKey)
		}).Return(nil).Once()

	resp, err := suite.service.IssueKey(ctx, suite.tenantID, dto.CreateAPIKeyRequest{Name: "ci"}, suite.userID)

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(resp.Key, "cbx_"))
	suite.Equal(suite.tenantID, saved.TenantID)
	suite.NotContains(resp.Key, saved.SecretHash, "plaintext token must not embed the hash")

	// The stored hash verifies the secret carried in the token.
	parts := strings.SplitN(resp.Key, "_", 3)
	suite.Require().Len(parts, 3)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(saved.SecretHash), []byte(parts[2])))

	suite.mockAPIKeyRepo.On("FindAPIKeyByID", ctx, saved.KeyID).Return(&saved, nil).Once()
	suite.mockAPIKeyRepo.On("TouchAPIKey", ctx, saved.KeyID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	tenantID, err := suite.service.ValidateKey(ctx, resp.Key)
	suite.Require().NoError(err)
	suite.Equal(suite.tenantID, tenantID)
}

func (suite *APIKeyServiceTestSuite) TestValidateKey_WrongSecret() {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("rightsecret"), bcrypt.MinCost)
	suite.Require().NoError(err)
	key := domain.APIKey{KeyID: uuid.NewString(), TenantID: suite.tenantID, SecretHash: string(hash)}

	suite.mockAPIKeyRepo.On("FindAPIKeyByID", ctx, key.KeyID).Return(&key, nil).Once()

	_, err = suite.service.ValidateKey(ctx, "cbx_"+key.KeyID+"_wrongsecret")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAPIKey)
}

func (suite *APIKeyServiceTestSuite) TestValidateKey_Revoked() {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	suite.Require().NoError(err)
	revokedAt := time.Now().UTC()
	key := domain.APIKey{KeyID: uuid.NewString(), TenantID: suite.tenantID, SecretHash: string(hash), RevokedAt: &revokedAt}

	suite.mockAPIKeyRepo.On("FindAPIKeyByID", ctx, key.KeyID).Return(&key, nil).Once()

	_, err = suite.service.ValidateKey(ctx, "cbx_"+key.KeyID+"_secret")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAPIKey)
}

func (suite *APIKeyServiceTestSuite) TestValidateKey_Malformed() {
	ctx := context.Background()

	_, err := suite.service.ValidateKey(ctx, "not-a-key")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAPIKey)
	suite.mockAPIKeyRepo.AssertNotCalled(suite.T(), "FindAPIKeyByID", mock.Anything, mock.Anything)
}

func TestAPIKeyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(APIKeyServiceTestSuite))
}
