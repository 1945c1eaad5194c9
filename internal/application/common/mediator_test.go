package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/application/common"
)

type pingCommand struct {
	Value int
}

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*pingCommand)
	if !ok {
		return nil, errors.New("unexpected request type")
	}
	return cmd.Value * 2, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	// Act
	resp, err := m.Send(context.Background(), &pingCommand{Value: 21})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	_, err := m.Send(context.Background(), "not registered")
	assert.Error(t, err)

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, pingHandler{}))

	var calls []string
	trace := func(name string) common.Middleware {
		return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, request)
			calls = append(calls, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingCommand{Value: 1})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.messages = append(l.messages, level+" "+message)
}

func TestLoggerFromContext(t *testing.T) {
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	common.LoggerFromContext(ctx).Log("INFO", "hello", nil)
	common.LoggerFromContext(context.Background()).Log("INFO", "dropped", nil)

	assert.Equal(t, []string{"INFO hello"}, logger.messages)
}
