package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/logger"
	"github.com/fsdevblog/tably/internal/service"
	"github.com/fsdevblog/tably/internal/transport/api/mocks"
	"github.com/fsdevblog/tably/internal/transport/api/testutils"
	"github.com/fsdevblog/tably/internal/transport/api/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LoansHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOrderService *mocks.MockOrderServicer
	mockLoanService  *mocks.MockLoanServicer
	jwtSecret        []byte
	staffToken       string
}

func TestLoansHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoansHandlerTestSuite))
}

func (s *LoansHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockOrderService = mocks.NewMockOrderServicer(mockCtrl)
	s.mockLoanService = mocks.NewMockLoanServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		OrderService: s.mockOrderService,
		LoanService:  s.mockLoanService,
		JWTSecretKey: s.jwtSecret,
	})

	var err error
	s.staffToken, err = tokens.GenerateUserJWT(55, domain.AccessLevelStaff, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
}

func (s *LoansHandlerTestSuite) TestApprove() {
	payload, payloadErr := json.Marshal(gin.H{
		"customer_id": 1,
		"cart": gin.H{
			"restaurant_id": 7,
			"lines":         []gin.H{{"item_id": 1, "quantity": 1}},
		},
		"collection_time": time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC),
		"amount":          "30",
	})
	s.Require().NoError(payloadErr)

	s.mockOrderService.EXPECT().
		PlaceOrderWithLoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.ApproveLoanArgs) (*service.LoanApproval, error) {
			// одобряющий берется из токена, не из тела запроса
			s.Equal(int64(55), args.ApproverID)
			s.Equal(int64(1), args.CustomerID)
			s.True(args.ApprovedAmount.Equal(decimal.NewFromInt(30)))
			return &service.LoanApproval{
				Order: &domain.Order{ID: 100, CustomerID: 1, Status: domain.OrderStatusPending},
				Loan: &domain.Loan{
					ID:         200,
					CustomerID: 1,
					OrderID:    100,
					LoanAmount: decimal.NewFromInt(30),
					Status:     domain.LoanStatusActive,
					ApproverID: 55,
				},
			}, nil
		})

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + StaffLoansRoute,
		Body:   bytes.NewReader(payload),
	}, testutils.WithBearerToken(s.staffToken))
	s.Require().NoError(err)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Require().Equal(http.StatusCreated, res.StatusCode)

	var body LoanApprovalResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Equal(int64(100), body.Order.ID)
	s.Require().NotNil(body.Loan)
	s.InDelta(30, body.Loan.LoanAmount, 0.001)
	s.Equal(domain.LoanStatusActive, body.Loan.Status)
}

func (s *LoansHandlerTestSuite) TestApprove_Failures() {
	payload, payloadErr := json.Marshal(gin.H{
		"customer_id": 1,
		"cart": gin.H{
			"restaurant_id": 7,
			"lines":         []gin.H{{"item_id": 1, "quantity": 1}},
		},
		"collection_time": time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC),
		"amount":          "20",
	})
	s.Require().NoError(payloadErr)

	customerToken, tokenErr := tokens.GenerateUserJWT(1, domain.AccessLevelCustomer, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockOrderService.EXPECT().
		PlaceOrderWithLoan(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrLoanExceedsApproval)

	cases := []struct {
		name       string
		jwtToken   string
		wantStatus int
	}{
		{
			name:       "shortfall exceeds approval",
			jwtToken:   s.staffToken,
			wantStatus: http.StatusConflict,
		}, {
			name:       "customer cannot approve",
			jwtToken:   customerToken,
			wantStatus: http.StatusForbidden,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + StaffLoansRoute,
				Body:   bytes.NewReader(payload),
			}, testutils.WithBearerToken(t.jwtToken))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *LoansHandlerTestSuite) TestUpdateStatus() {
	paidAt := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)

	s.mockLoanService.EXPECT().
		MarkPaid(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.MarkPaidArgs) (*domain.Loan, error) {
			s.Equal(int64(200), args.LoanID)
			s.Equal("cash", args.PaymentMethod)
			s.Equal("staff:55", args.Actor)
			return &domain.Loan{ID: 200, Status: domain.LoanStatusPaid, PaidAt: &paidAt}, nil
		})
	s.mockLoanService.EXPECT().
		Cancel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.CancelLoanArgs) (*domain.Loan, error) {
			s.Equal(int64(201), args.LoanID)
			return &domain.Loan{ID: 201, Status: domain.LoanStatusCancelled}, nil
		})
	s.mockLoanService.EXPECT().
		Cancel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.CancelLoanArgs) (*domain.Loan, error) {
			s.Equal(int64(202), args.LoanID)
			return nil, &domain.TooSoonToCancelError{Remaining: 15 * time.Minute}
		})

	cases := []struct {
		name       string
		loanID     string
		payload    gin.H
		wantStatus int
	}{
		{
			name:       "mark paid",
			loanID:     "200",
			payload:    gin.H{"status": "PAID", "payment_method": "cash"},
			wantStatus: http.StatusOK,
		}, {
			name:       "cancel",
			loanID:     "201",
			payload:    gin.H{"status": "CANCELLED", "notes": "customer changed their mind"},
			wantStatus: http.StatusOK,
		}, {
			name:       "too soon to cancel",
			loanID:     "202",
			payload:    gin.H{"status": "CANCELLED"},
			wantStatus: http.StatusConflict,
		}, {
			// конечные статусы задаются только явно из списка
			name:       "invalid target status",
			loanID:     "200",
			payload:    gin.H{"status": "ACTIVE"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			payload, marshalErr := json.Marshal(t.payload)
			s.Require().NoError(marshalErr)

			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPatch,
				URL:    RouteGroup + "/staff/loans/" + t.loanID,
				Body:   bytes.NewReader(payload),
			}, testutils.WithBearerToken(s.staffToken))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *LoansHandlerTestSuite) TestAppendNote() {
	s.mockLoanService.EXPECT().
		AppendNote(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.AppendNoteArgs) (*domain.LoanNote, error) {
			s.Equal(int64(200), args.LoanID)
			s.Equal("phone", args.Channel)
			s.Equal("staff:55", args.Actor)
			return &domain.LoanNote{
				ID:        3,
				LoanID:    args.LoanID,
				CreatedAt: time.Now(),
				Channel:   args.Channel,
				Text:      args.Text,
				Actor:     args.Actor,
			}, nil
		})

	payload, marshalErr := json.Marshal(gin.H{"channel": "phone", "text": "reminder call"})
	s.Require().NoError(marshalErr)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + "/staff/loans/200/notes",
		Body:   bytes.NewReader(payload),
	}, testutils.WithBearerToken(s.staffToken))
	s.Require().NoError(err)
	defer func() {
		closeErr := res.Body.Close()
		s.Require().NoError(closeErr)
	}()

	s.Require().Equal(http.StatusCreated, res.StatusCode)
}

func (s *LoansHandlerTestSuite) TestShow() {
	s.mockLoanService.EXPECT().
		GetByID(gomock.Any(), int64(200)).
		Return(&domain.Loan{
			ID:         200,
			CustomerID: 1,
			OrderID:    100,
			LoanAmount: decimal.NewFromInt(30),
			Status:     domain.LoanStatusActive,
			Notes: []domain.LoanNote{
				{ID: 1, LoanID: 200, Channel: "system", Text: "loan approved"},
			},
		}, nil)
	s.mockLoanService.EXPECT().
		GetByID(gomock.Any(), int64(404)).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		loanID     string
		wantStatus int
	}{
		{name: "found", loanID: "200", wantStatus: http.StatusOK},
		{name: "missing", loanID: "404", wantStatus: http.StatusNotFound},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + "/staff/loans/" + t.loanID,
			}, testutils.WithBearerToken(s.staffToken))
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
