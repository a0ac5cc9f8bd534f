package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cultivation-sim/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "snapshot not found",
			expected: "NOT_FOUND: snapshot not found",
		},
		{
			name:     "data loss error",
			code:     errors.CodeDataLoss,
			message:  "corrupt snapshot",
			expected: "DATA_LOSS: corrupt snapshot",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.DataLoss("corrupt snapshot").
		WithMeta("key", "cultivation:player").
		WithMeta("bytes", 12)

	s.Equal("cultivation:player", err.Meta["key"])
	s.Equal(12, err.Meta["bytes"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to save player")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to save player", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
	s.Contains(wrapped.Error(), "connection refused")
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("snapshot not found").WithMeta("key", "k")
	wrapped := errors.Wrap(baseErr, "failed to load player")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("k", wrapped.Meta["key"])
	s.True(errors.IsNotFound(wrapped))
	s.True(errors.Is(wrapped, errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.Internal("dial tcp").WithMeta("addr", "localhost:6379")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "redis unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("localhost:6379", wrapped.Meta["addr"])

	wrapped.WithMeta("attempt", 2)
	s.Nil(baseErr.Meta["attempt"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestGetCode() {
	testCases := []struct {
		name     string
		err      error
		expected errors.Code
	}{
		{"nil", nil, errors.CodeOK},
		{"structured", errors.Unavailable("down"), errors.CodeUnavailable},
		{"plain", fmt.Errorf("boom"), errors.CodeInternal},
		{"canceled", fmt.Errorf("save: %w", context.Canceled), errors.CodeCanceled},
		{"deadline", context.DeadlineExceeded, errors.CodeDeadlineExceeded},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, errors.GetCode(tc.err))
		})
	}
}

func (s *ErrorsTestSuite) TestRetryable() {
	s.True(errors.IsRetryable(errors.Unavailable("redis down")))
	s.True(errors.IsRetryable(context.DeadlineExceeded))
	s.False(errors.IsRetryable(errors.DataLoss("corrupt")))
	s.False(errors.IsRetryable(nil))
}
