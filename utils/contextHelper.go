package utils

import "context"

type contextKey string

func (c contextKey) String() string { return string(c) }

var (
	ContextKeyUserName      = contextKey("UserName")
	ContextKeyCorrelationId = contextKey("CorrelationId")
)

func GetUserNameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserName).(string)
	return v, ok
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyCorrelationId).(string)
	return v, ok
}

func SetUserNameInContext(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyUserName, name)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, ContextKeyCorrelationId, correlationId)
}
