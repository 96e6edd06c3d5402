package api

import (
	"time"

	"github.com/fsdevblog/tably/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup = "/api"

	CollectionTimeRoute = "/restaurants/:id/collection-time/validate"
	CartPriceRoute      = "/cart/price"
	OrdersRoute         = "/orders"
	OrderCancelRoute    = "/orders/:id/cancel"
	UserOrdersRoute     = "/user/orders"
	BalanceRoute        = "/user/balance"
	BalanceTopUpRoute   = "/user/balance/topup"

	StaffLoansRoute         = "/staff/loans"
	StaffLoanRoute          = "/staff/loans/:id"
	StaffLoanNotesRoute     = "/staff/loans/:id/notes"
	StaffOrderCompleteRoute = "/staff/orders/:id/complete"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	ScheduleService ScheduleServicer
	PricingService  PricingServicer
	OrderService    OrderServicer
	LoanService     LoanServicer
	LedgerService   LedgerServicer
	JWTSecretKey    []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	scheduleHandler := NewScheduleHandler(args.ScheduleService)
	cartHandler := NewCartHandler(args.PricingService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	balanceHandler := NewBalanceHandler(args.LedgerService)
	loansHandler := NewLoansHandler(args.OrderService, args.LoanService)

	api := r.Group(RouteGroup)
	api.Use(middlewares.AuthRequired(args.JWTSecretKey))

	api.POST(CollectionTimeRoute, scheduleHandler.Validate)
	api.POST(CartPriceRoute, cartHandler.Price)

	api.POST(OrdersRoute, ordersHandler.Create)
	api.POST(OrderCancelRoute, ordersHandler.Cancel)
	api.GET(UserOrdersRoute, ordersHandler.Index)

	api.GET(BalanceRoute, balanceHandler.Index)
	api.POST(BalanceTopUpRoute, balanceHandler.TopUp)

	// ниже все роуты группы требуют уровень доступа staff.
	staff := api.Group("")
	staff.Use(middlewares.StaffRequired())

	staff.POST(StaffLoansRoute, loansHandler.Approve)
	staff.GET(StaffLoanRoute, loansHandler.Show)
	staff.PATCH(StaffLoanRoute, loansHandler.UpdateStatus)
	staff.POST(StaffLoanNotesRoute, loansHandler.AppendNote)
	staff.POST(StaffOrderCompleteRoute, ordersHandler.Complete)

	return r
}
