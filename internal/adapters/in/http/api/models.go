package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Money is a non-negative decimal amount such as "99.90".
type Money = string

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type NewOrder struct {
	Info            string            `json:"info"`
	Price           Money             `json:"price"`
	DiscountedPrice Money             `json:"discounted_price"`
	PurchasedAt     time.Time         `json:"purchased_at"`
	Remark          *string           `json:"remark,omitempty"`
	Services        []NewOrderService `json:"services"`
}

type NewOrderService struct {
	ServiceId openapi_types.UUID `json:"service_id"`
	Quantity  int                `json:"quantity"`
}

type NewItem struct {
	ServiceId  openapi_types.UUID `json:"service_id"`
	Name       *string            `json:"name,omitempty"`
	Price      Money              `json:"price"`
	Remark     *string            `json:"remark,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type NewService struct {
	Description string  `json:"description"`
	Package     *string `json:"package,omitempty"`
	Type        *string `json:"type,omitempty"`
	Part        *string `json:"part,omitempty"`
	Remark      *string `json:"remark,omitempty"`
}

type Item struct {
	Id         openapi_types.UUID `json:"id"`
	OrderId    openapi_types.UUID `json:"order_id"`
	ServiceId  openapi_types.UUID `json:"service_id"`
	Name       string             `json:"name"`
	Price      Money              `json:"price"`
	Remark     string             `json:"remark,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type Service struct {
	Id          openapi_types.UUID `json:"id"`
	Description string             `json:"description"`
	Package     string             `json:"package,omitempty"`
	Type        string             `json:"type,omitempty"`
	Part        string             `json:"part,omitempty"`
	Remark      string             `json:"remark,omitempty"`
}

type OrderSummary struct {
	Id              openapi_types.UUID `json:"id"`
	Info            string             `json:"info"`
	Price           Money              `json:"price"`
	DiscountedPrice Money              `json:"discounted_price"`
	PurchasedAt     time.Time          `json:"purchased_at"`
	Status          string             `json:"status"`
	Remark          string             `json:"remark,omitempty"`
}

type OrderMetrics struct {
	UsedCount               int    `json:"used_count"`
	UsedAmount              Money  `json:"used_amount"`
	RemainingAmount         Money  `json:"remaining_amount"`
	EstimatedRemainingCount int64  `json:"estimated_remaining_count"`
	ProgressPercent         string `json:"progress_percent"`
}

type ServiceMetrics struct {
	UsedCount       int    `json:"used_count"`
	RemainingCount  int    `json:"remaining_count"`
	UsedAmount      Money  `json:"used_amount"`
	ProgressPercent string `json:"progress_percent"`
}

type ServiceLine struct {
	ServiceId   openapi_types.UUID `json:"service_id"`
	Description string             `json:"description"`
	Purchased   int                `json:"purchased"`
	Completed   int                `json:"completed"`
	Status      string             `json:"status"`
	Metrics     ServiceMetrics     `json:"metrics"`
	Items       []Item             `json:"items"`
}

type OrderDetail struct {
	Order    OrderSummary  `json:"order"`
	Services []ServiceLine `json:"services"`
	Metrics  OrderMetrics  `json:"metrics"`
}

type OrderProgress struct {
	Order       OrderSummary `json:"order"`
	Metrics     OrderMetrics `json:"metrics"`
	RecentItems []Item       `json:"recent_items"`
}

type OpenOrder struct {
	Id     openapi_types.UUID `json:"id"`
	Info   string             `json:"info"`
	Status string             `json:"status"`
}

type OpenService struct {
	OrderId     openapi_types.UUID `json:"order_id"`
	OrderInfo   string             `json:"order_info"`
	OrderStatus string             `json:"order_status"`
	Service     ServiceLine        `json:"service"`
}

type JournalEntry struct {
	Item               Item   `json:"item"`
	OrderInfo          string `json:"order_info"`
	ServiceDescription string `json:"service_description"`
}

type JournalDay struct {
	Day     openapi_types.Date `json:"day"`
	Total   Money              `json:"total"`
	Entries []JournalEntry     `json:"entries"`
}

type DashboardStats struct {
	TotalOrders    int64          `json:"total_orders"`
	TotalAmount    Money          `json:"total_amount"`
	PendingOrders  int64          `json:"pending_orders"`
	ConsumedAmount Money          `json:"consumed_amount"`
	RecentOrders   []OrderSummary `json:"recent_orders"`
}

type Trend struct {
	Year   int     `json:"year"`
	Months []int64 `json:"months"`
}

// GetExecutionJournalParams defines parameters for GetExecutionJournal.
type GetExecutionJournalParams struct {
	From *openapi_types.Date `form:"from,omitempty" json:"from,omitempty"`
	// To is exclusive.
	To *openapi_types.Date `form:"to,omitempty" json:"to,omitempty"`
}

// GetDashboardTrendParams defines parameters for GetDashboardTrend.
type GetDashboardTrendParams struct {
	Year int `form:"year" json:"year"`
}
