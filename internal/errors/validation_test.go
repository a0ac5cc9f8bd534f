package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cultivation-sim/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("Repository").
		InvalidField("MapIndex", "no such map").
		Fieldf("Tier", "must be below %d", 9)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(
		"INVALID_ARGUMENT: validation failed: MapIndex: is invalid: no such map; Repository: is required; Tier: must be below 9",
		err.Error(),
	)
	s.NotNil(errors.GetMeta(err)["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestNumericValidators() {
	testCases := []struct {
		name      string
		validate  func(vb *errors.ValidationBuilder)
		shouldErr bool
	}{
		{"positive ok", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("x", 3, vb) }, false},
		{"positive zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("x", 0.0, vb) }, true},
		{"non-negative zero", func(vb *errors.ValidationBuilder) { errors.ValidateNonNegative("x", int64(0), vb) }, false},
		{"non-negative below", func(vb *errors.ValidationBuilder) { errors.ValidateNonNegative("x", -1, vb) }, true},
		{"probability ok", func(vb *errors.ValidationBuilder) { errors.ValidateProbability("x", 0.3, vb) }, false},
		{"probability above one", func(vb *errors.ValidationBuilder) { errors.ValidateProbability("x", 1.2, vb) }, true},
		{"range ok", func(vb *errors.ValidationBuilder) { errors.ValidateRange("x", 5, 0, 20, vb) }, false},
		{"range above", func(vb *errors.ValidationBuilder) { errors.ValidateRange("x", 21, 0, 20, vb) }, true},
		{"required blank", func(vb *errors.ValidationBuilder) { errors.ValidateRequired("x", "  ", vb) }, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.validate(vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}
