package servicerequestrepo_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/adapters/out/postgres/servicerequestrepo"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/servicerequest"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ServiceRequestRepositoryIntegrationTestSuite verifies service request
// persistence and the pending-uniqueness index against a real PostgreSQL
// instance.
type ServiceRequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *servicerequestrepo.GormServiceRequestRepository
	tracker    *MockAggregateTracker
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&servicerequestrepo.ServiceRequestDTO{}))
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE service_requests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = servicerequestrepo.NewGormServiceRequestRepository(suite.db, suite.tracker)
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) addRequest(table int, requestType servicerequest.Type) *servicerequest.ServiceRequest {
	r, err := servicerequest.NewServiceRequest(kernel.NewUUID(), table, requestType, time.Now().UTC())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", r.ID(), r).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), r))
	return r
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	created := suite.addRequest(7, servicerequest.CallStaff)

	loaded, err := suite.repository.Get(context.Background(), created.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(created.ID()))
	suite.Equal(7, loaded.TableNumber())
	suite.Equal(servicerequest.CallStaff, loaded.Type())
	suite.True(loaded.IsPending())
	suite.Nil(loaded.ResolvedAt())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestGetPending_FindsOnlyMatchingPendingRequest() {
	created := suite.addRequest(7, servicerequest.CallStaff)
	suite.addRequest(7, servicerequest.RequestBill)
	suite.addRequest(8, servicerequest.CallStaff)

	found, err := suite.repository.GetPending(context.Background(), 7, servicerequest.CallStaff)
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(created.ID()))
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestGetPending_NotFoundWhenNothingPending() {
	_, err := suite.repository.GetPending(context.Background(), 99, servicerequest.CallStaff)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestGetPending_IgnoresResolvedRequests() {
	created := suite.addRequest(7, servicerequest.CallStaff)

	suite.Require().NoError(created.Resolve(time.Now().UTC()))
	suite.tracker.On("TrackAggregate", created.ID(), created).Once()
	suite.Require().NoError(suite.repository.Update(context.Background(), created))

	_, err := suite.repository.GetPending(context.Background(), 7, servicerequest.CallStaff)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	// resolution opened the slot for a fresh request
	fresh := suite.addRequest(7, servicerequest.CallStaff)
	found, err := suite.repository.GetPending(context.Background(), 7, servicerequest.CallStaff)
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(fresh.ID()))
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestAdd_PendingDuplicateViolatesUniqueIndex() {
	suite.addRequest(7, servicerequest.CallStaff)

	duplicate, err := servicerequest.NewServiceRequest(kernel.NewUUID(), 7, servicerequest.CallStaff, time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), duplicate)
	suite.Require().Error(err)
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestUpdate_PersistsResolution() {
	created := suite.addRequest(3, servicerequest.RequestBill)

	suite.Require().NoError(created.Resolve(time.Now().UTC()))
	suite.tracker.On("TrackAggregate", created.ID(), created).Once()
	suite.Require().NoError(suite.repository.Update(context.Background(), created))

	loaded, err := suite.repository.Get(context.Background(), created.ID())
	suite.Require().NoError(err)
	suite.Equal(servicerequest.Resolved, loaded.Status())
	suite.Require().NotNil(loaded.ResolvedAt())
}

func (suite *ServiceRequestRepositoryIntegrationTestSuite) TestDeleteResolvedBefore_KeepsPendingAndRecentRows() {
	pending := suite.addRequest(1, servicerequest.CallStaff)

	old := suite.addRequest(2, servicerequest.CallStaff)
	suite.Require().NoError(old.Resolve(time.Now().UTC().Add(-48 * time.Hour)))
	suite.tracker.On("TrackAggregate", old.ID(), old).Once()
	suite.Require().NoError(suite.repository.Update(context.Background(), old))

	recent := suite.addRequest(3, servicerequest.CallStaff)
	suite.Require().NoError(recent.Resolve(time.Now().UTC()))
	suite.tracker.On("TrackAggregate", recent.ID(), recent).Once()
	suite.Require().NoError(suite.repository.Update(context.Background(), recent))

	deleted, err := suite.repository.DeleteResolvedBefore(context.Background(), time.Now().UTC().Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), deleted)

	_, err = suite.repository.Get(context.Background(), old.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.Get(context.Background(), pending.ID())
	suite.Require().NoError(err)
	_, err = suite.repository.Get(context.Background(), recent.ID())
	suite.Require().NoError(err)
}

func TestServiceRequestRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceRequestRepositoryIntegrationTestSuite))
}
