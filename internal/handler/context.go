package handler

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	MyInfoCtx    ContextKey = "myInfo"
	UserInfoCtx  ContextKey = "userInfo"
	PersonCtx    ContextKey = "person"
	YearCtxKey   ContextKey = "year"
	MonthCtxKey  ContextKey = "month"
	CalendarCtx  ContextKey = "calendar"
	WatchBillCtx ContextKey = "watchBill"
)
