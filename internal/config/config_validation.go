// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())
	})
	return validatorInstance
}

// validate checks that the final merged [StructuredConfig] satisfies all
// field rules before it is used at startup.
//
// Every failing field is reported as an [*Error]; failures of "required"
// rules wrap [ErrMissingSetting], all others wrap [ErrInvalidSetting].
func (cfg *StructuredConfig) validate() error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Err: fmt.Errorf("%w: %v", ErrInvalidSetting, err)}
	}

	var errs error
	for _, fe := range fieldErrs {
		errs = errors.Join(errs, fieldError(fe))
	}

	return errs
}

func fieldError(fe validator.FieldError) *Error {
	field := strings.TrimPrefix(fe.Namespace(), "StructuredConfig.")

	if strings.HasPrefix(fe.Tag(), "required") {
		return &Error{Field: field, Err: ErrMissingSetting}
	}

	cause := fmt.Errorf("%w: failed %q", ErrInvalidSetting, fe.Tag())
	if fe.Param() != "" {
		cause = fmt.Errorf("%w: failed %q (%s)", ErrInvalidSetting, fe.Tag(), fe.Param())
	}

	return &Error{Field: field, Err: cause}
}
