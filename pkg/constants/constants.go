package constants

type contextKey int

const (
	AppKey contextKey = iota
	LoggerKey
	ParamsKey
	SessionKey
	RequestStart
)
