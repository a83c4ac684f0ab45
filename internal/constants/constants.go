package constants

// 订单状态常量
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// 支付状态常量（与订单状态相互独立，不受状态机约束）
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// 支付方式常量（仅作为标签存储，不对接支付网关）
const (
	PaymentMethodCOD  = "COD"
	PaymentMethodCard = "CARD"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 地址类型常量
const (
	AddressTypeShipping = "SHIPPING"
	AddressTypeBilling  = "BILLING"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "lumi"
)
