package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "visadesk/internal/adapters/in/http"
	"visadesk/internal/core/application/usecases/commands"
	"visadesk/internal/core/application/usecases/queries"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUpdater struct{ mock.Mock }

func (m *MockOrderUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderArchiver struct{ mock.Mock }

func (m *MockOrderArchiver) Handle(ctx context.Context, cmd commands.ArchiveOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderServicesUpdater struct{ mock.Mock }

func (m *MockOrderServicesUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderServicesCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockOrderLister struct{ mock.Mock }

func (m *MockOrderLister) Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListOrdersQueryResponse), args.Error(1)
}

type MockOrderServicesReader struct{ mock.Mock }

func (m *MockOrderServicesReader) Handle(
	ctx context.Context,
	query queries.GetOrderServicesQuery,
) (queries.GetOrderServicesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderServicesQueryResponse), args.Error(1)
}

type MockAuditReader struct{ mock.Mock }

func (m *MockAuditReader) Handle(
	ctx context.Context,
	query queries.ListAuditEntriesQuery,
) (queries.ListAuditEntriesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListAuditEntriesQueryResponse), args.Error(1)
}

type ServerTestSuite struct {
	suite.Suite

	creator         *MockOrderCreator
	updater         *MockOrderUpdater
	archiver        *MockOrderArchiver
	servicesUpdater *MockOrderServicesUpdater
	reader          *MockOrderReader
	lister          *MockOrderLister
	servicesReader  *MockOrderServicesReader
	auditReader     *MockAuditReader
	handler         http.Handler
}

func (s *ServerTestSuite) SetupTest() {
	s.creator = new(MockOrderCreator)
	s.updater = new(MockOrderUpdater)
	s.archiver = new(MockOrderArchiver)
	s.servicesUpdater = new(MockOrderServicesUpdater)
	s.reader = new(MockOrderReader)
	s.lister = new(MockOrderLister)
	s.servicesReader = new(MockOrderServicesReader)
	s.auditReader = new(MockAuditReader)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:         s.creator,
		UpdateOrder:         s.updater,
		ArchiveOrder:        s.archiver,
		UpdateOrderServices: s.servicesUpdater,
		GetOrder:            s.reader,
		ListOrders:          s.lister,
		GetOrderServices:    s.servicesReader,
		ListAuditEntries:    s.auditReader,
	}, zap.NewNop())
	s.handler = httpadapter.NewEcho(server)
}

func (s *ServerTestSuite) TearDownTest() {
	s.creator.AssertExpectations(s.T())
	s.updater.AssertExpectations(s.T())
	s.archiver.AssertExpectations(s.T())
	s.servicesUpdater.AssertExpectations(s.T())
	s.reader.AssertExpectations(s.T())
	s.lister.AssertExpectations(s.T())
	s.servicesReader.AssertExpectations(s.T())
	s.auditReader.AssertExpectations(s.T())
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, target, body string, user string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(httpadapter.UserHeader, user)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	o, err := order.RestoreOrder(order.RestoreParams{
		ID: 7, Number: "2024-0007", Status: order.Draft, ClientID: 3, CreatedByID: 9,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	return o
}

func hydratedOrder() queries.GetOrderQueryResponse {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return queries.GetOrderQueryResponse{
		ID:        7,
		Number:    "2024-0007",
		Status:    order.Draft,
		Country:   &queries.NamedReference{ID: 1, Name: "France"},
		CreatedBy: &queries.UserResponse{ID: 9, Email: "manager@example.com"},
		ClientID:  3,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func getOrderQuery(orderID kernel.ID, populateClient bool) any {
	return mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID() == orderID && q.PopulateClient() == populateClient
	})
}

const validOrder = `{
	"country_id": 1, "client_id": 3, "urgency_id": 2, "visa_duration_id": 3, "visa_type_id": 4,
	"applicant": {"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com", "gender": "female"}
}`

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestCreateOrder() {
	s.creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.ActorID() == 9 &&
			cmd.Details().CreatedByID == 9 &&
			cmd.Details().CountryID == 1 &&
			cmd.Applicant() != nil && cmd.Applicant().Email() == "jane@example.com"
	})).Return(storedOrder(s.T()), nil).Once()
	s.reader.On("Handle", mock.Anything, getOrderQuery(7, false)).Return(hydratedOrder(), nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", validOrder, "9")

	s.Equal(http.StatusCreated, rec.Code)
	body := s.decode(rec)
	s.Equal("2024-0007", body["number"])
	s.Equal("draft", body["status"])
	s.Equal("France", body["country"].(map[string]any)["name"])
	s.Nil(body["urgency"])
}

func (s *ServerTestSuite) TestCreateOrder_PayloadCannotChooseCreator() {
	s.creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.ActorID() == 9 && cmd.Details().CreatedByID == 9
	})).Return(storedOrder(s.T()), nil).Once()
	s.reader.On("Handle", mock.Anything, getOrderQuery(7, false)).Return(hydratedOrder(), nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders",
		`{"country_id": 1, "client_id": 3, "created_by_id": 5, "urgency_id": 2, "visa_duration_id": 3, "visa_type_id": 4}`, "9")

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *ServerTestSuite) TestCreateOrder_RequiresActingUser() {
	rec := s.do(http.MethodPost, "/api/v1/orders", validOrder, "")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/orders", validOrder, "nobody")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *ServerTestSuite) TestCreateOrder_InvalidPayload() {
	rec := s.do(http.MethodPost, "/api/v1/orders",
		`{"client_id": 3, "urgency_id": 2, "visa_duration_id": 3, "visa_type_id": 4, "status": "lost"}`, "9")

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	body := s.decode(rec)
	fields := make([]string, 0)
	for _, d := range body["details"].([]any) {
		fields = append(fields, d.(map[string]any)["field"].(string))
	}
	s.ElementsMatch([]string{"country_id", "status"}, fields)

	rec = s.do(http.MethodPost, "/api/v1/orders", `{"country_id": `, "9")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCreateOrder_StoreFailureIsGeneric() {
	s.creator.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewConstraintViolationError("create order", assert.AnError)).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", validOrder, "9")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("The request could not be completed", s.decode(rec)["message"])
	s.NotContains(rec.Body.String(), assert.AnError.Error())
}

func (s *ServerTestSuite) TestGetOrder() {
	withClient := hydratedOrder()
	tariff := kernel.ID(5)
	withClient.Client = &queries.ClientResponse{ID: 3, Name: "Acme Travel", TariffID: &tariff}
	s.reader.On("Handle", mock.Anything, getOrderQuery(7, true)).Return(withClient, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/7?populate_client=true", "", "")

	s.Equal(http.StatusOK, rec.Code)
	client := s.decode(rec)["client"].(map[string]any)
	s.Equal("Acme Travel", client["name"])
	s.InDelta(5, client["tariff_id"], 0)
}

func (s *ServerTestSuite) TestGetOrder_NotFound() {
	s.reader.On("Handle", mock.Anything, getOrderQuery(404, false)).
		Return(queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", int64(404))).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/404", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestGetOrder_InvalidID() {
	rec := s.do(http.MethodGet, "/api/v1/orders/abc", "", "")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *ServerTestSuite) TestUpdateOrder() {
	s.updater.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderCommand) bool {
		changes := cmd.Changes()
		return cmd.OrderID() == 7 && cmd.ActorID() == 9 &&
			changes.Status != nil && *changes.Status == order.Completed &&
			changes.CountryID == nil
	})).Return(storedOrder(s.T()), nil).Once()
	s.reader.On("Handle", mock.Anything, getOrderQuery(7, false)).Return(hydratedOrder(), nil).Once()

	rec := s.do(http.MethodPatch, "/api/v1/orders/7", `{"status": "completed"}`, "9")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestUpdateOrder_NotFound() {
	s.updater.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("order", int64(7))).Once()

	rec := s.do(http.MethodPatch, "/api/v1/orders/7", `{"status": "new"}`, "9")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestArchiveOrder() {
	s.archiver.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ArchiveOrderCommand) bool {
		return cmd.OrderID() == 7 && cmd.ActorID() == 9
	})).Return(nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/7/archive", "", "9")
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestGetOrderServices() {
	s.servicesReader.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderServicesQueryResponse{
		Attached: []queries.AttachedServiceResponse{},
		Available: []queries.AvailableServiceResponse{{
			TariffServiceID: 11,
			ServiceID:       4,
			Name:            "Translation",
			FeeType:         catalogue.FeeTypeGeneral,
			Money: queries.Money{
				Price:     decimal.RequireFromString("100"),
				Tax:       decimal.RequireFromString("0.1"),
				TaxAmount: decimal.RequireFromString("10"),
				Total:     decimal.RequireFromString("110"),
			},
		}},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/7/services", "", "")

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.Empty(body["attached"])
	available := body["available"].([]any)
	s.Require().Len(available, 1)
	item := available[0].(map[string]any)
	s.InDelta(11, item["tariff_service_id"], 0)
	s.Equal("100.00", item["price"])
	s.Equal("0.1000", item["tax"])
	s.Equal("10.00", item["tax_amount"])
	s.Equal("110.00", item["total"])
}

func (s *ServerTestSuite) TestGetOrderServices_ClientWithoutTariff() {
	s.servicesReader.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderServicesQueryResponse{}, errs.NewPreconditionFailedError("no tariff")).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/7/services", "", "")
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ServerTestSuite) TestUpdateOrderServices() {
	s.servicesUpdater.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderServicesCommand) bool {
		return cmd.Replace() && assert.ObjectsAreEqual([]kernel.ID{12, 15}, cmd.TariffServiceIDs())
	})).Return(nil).Once()
	s.servicesReader.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderServicesQueryResponse{}, nil).Once()

	rec := s.do(http.MethodPut, "/api/v1/orders/7/services", `{"tariff_service_ids": [12, 15]}`, "9")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestUpdateOrderServices_NullLeavesAttachments() {
	s.servicesUpdater.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderServicesCommand) bool {
		return !cmd.Replace()
	})).Return(nil).Once()
	s.servicesReader.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderServicesQueryResponse{}, nil).Once()

	rec := s.do(http.MethodPut, "/api/v1/orders/7/services", `{"tariff_service_ids": null}`, "9")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerTestSuite) TestListOrders() {
	s.lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		f := q.Filter()
		return q.Page() == 2 && q.Size() == 10 &&
			f.CountryID != nil && *f.CountryID == 3 &&
			f.Status != nil && *f.Status == order.New &&
			f.ClientID == nil && !f.IncludeArchived
	})).Return(queries.ListOrdersQueryResponse{Page: 2, Size: 10, Total: 11, TotalPages: 2, HasPrev: true}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders?page=2&size=10&country_id=3&status=new", "", "")

	s.Equal(http.StatusOK, rec.Code)
	body := s.decode(rec)
	s.InDelta(11, body["total"], 0)
	s.Equal(true, body["has_prev"])
	s.Equal(false, body["has_next"])
}

func (s *ServerTestSuite) TestListOrders_InvalidParameters() {
	rec := s.do(http.MethodGet, "/api/v1/orders?size=500", "", "")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders?client_id=x", "", "")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/orders?page=first", "", "")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *ServerTestSuite) TestListAuditEntries() {
	target := kernel.ID(7)
	s.auditReader.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListAuditEntriesQuery) bool {
		return q.UserID() == 9
	})).Return(queries.ListAuditEntriesQueryResponse{Entries: []queries.AuditEntryResponse{
		{ID: 2, UserID: 9, Action: "update", ModelType: "order", TargetID: &target},
	}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/users/9/audit", "", "")

	s.Equal(http.StatusOK, rec.Code)
	var entries []map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &entries))
	s.Require().Len(entries, 1)
	s.Equal("update", entries[0]["action"])
}
