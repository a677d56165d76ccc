package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"courierbot/internal/adapters/out/postgres/orderrepo"
	"courierbot/internal/adapters/out/postgres/pgtest"
	"courierbot/internal/core/domain/model/courier"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"
	"courierbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var created = time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC)

// OrderRepositoryIntegrationTestSuite checks persistence of orders against a
// real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(displayNo int, deliveryNo string, at time.Time) *order.Order {
	cola, err := order.NewItem("Cola", 2, decimal.RequireFromString("5.50"))
	suite.Require().NoError(err)
	tea, err := order.NewItem("Tea", 4, decimal.RequireFromString("3.25"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), displayNo, deliveryNo,
		order.Customer{ID: 555, Username: "buyer"},
		[]order.Item{cola, tea},
		order.Details{TimeSlot: "19:00-20:00", Region: "Centre", Payment: "card"},
		at,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder(1, "01234", created)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	got, err := suite.repository.Get(ctx, o.Workday(), 1)

	suite.Require().NoError(err)
	suite.True(got.IsEqual(o))
	suite.Equal(order.Pending, got.Status())
	suite.Equal("01234", got.DeliveryNo())
	suite.Equal(6, got.Quantity())
	suite.True(decimal.RequireFromString("24.00").Equal(got.TotalPrice()))
	suite.Equal("Centre", got.Details().Region)
	suite.Len(got.Items(), 2)
	suite.Nil(got.Courier())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateDisplayNo() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "00001", created)))

	err := suite.repository.Add(ctx, suite.newOrder(1, "00002", created))

	suite.Require().ErrorIs(err, order.ErrDuplicateDisplayNo)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextDisplayNo() {
	ctx := context.Background()
	workday := kernel.NewWorkdayKey(created)

	next, err := suite.repository.NextDisplayNo(ctx, workday)
	suite.Require().NoError(err)
	suite.Equal(1, next)

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "00001", created)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(2, "00002", created)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(1, "00003", created.Add(24*time.Hour))))

	next, err = suite.repository.NextDisplayNo(ctx, workday)
	suite.Require().NoError(err)
	suite.Equal(3, next)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	o := suite.newOrder(1, "00001", created)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	rider, err := courier.NewCourier(101, "rider", "Rider One")
	suite.Require().NoError(err)
	suite.Require().NoError(o.Accept(rider, created.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.GetForUpdate(ctx, o.Workday(), 1)
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, got.Status())
	suite.Require().NotNil(got.Courier())
	suite.Equal("@rider", got.Courier().DisplayName())
	suite.Require().NotNil(got.AcceptedAt())
	suite.True(created.Add(time.Minute).Equal(*got.AcceptedAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder() {
	err := suite.repository.Update(context.Background(), suite.newOrder(9, "00009", created))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewWorkdayKey(created), 42)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByDeliveryNoAndListByStatus() {
	ctx := context.Background()
	first := suite.newOrder(1, "77777", created)
	second := suite.newOrder(2, "77777", created)
	denied := suite.newOrder(3, "12345", created)
	suite.Require().NoError(denied.Deny(1, created))
	for _, o := range []*order.Order{first, second, denied} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	matches, err := suite.repository.FindByDeliveryNo(ctx, "77777")
	suite.Require().NoError(err)
	suite.Len(matches, 2)

	workday := kernel.NewWorkdayKey(created)
	pending, err := suite.repository.ListByStatus(ctx, workday, workday, order.Pending)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal(1, pending[0].DisplayNo())
	suite.Equal(2, pending[1].DisplayNo())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestScan_OrderedAndRestartable() {
	ctx := context.Background()
	for i, at := range []time.Time{created.Add(24 * time.Hour), created, created} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(i+1, "00001", at)))
	}

	from := kernel.NewWorkdayKey(created)
	to := from.Next()
	collect := func() []string {
		var keys []string
		for o, err := range suite.repository.Scan(ctx, from, to) {
			suite.Require().NoError(err)
			keys = append(keys, o.Workday().String())
		}
		return keys
	}

	first := collect()
	suite.Equal([]string{"2026-10-18", "2026-10-18", "2026-10-19"}, first)
	suite.Equal(first, collect())

	for range suite.repository.Scan(ctx, from, to) {
		break
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
