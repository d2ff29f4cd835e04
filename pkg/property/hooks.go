package property

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate

	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

func sharedValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateTag builds a Validator from a go-playground validator tag such as
// "required,min=1,max=10". Unknown tags are reported here rather than at write
// time.
func ValidateTag(tag string) (Validator, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("property: validation tag is required")
	}
	v := sharedValidator()
	if err := probeTag(v, tag); err != nil {
		return nil, err
	}
	return func(value any) (ok bool) {
		// Tag parameters that do not fit the value's kind panic inside
		// the validator; treat that as a rejection.
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		return v.Var(value, tag) == nil
	}, nil
}

// MustValidateTag panics when the tag is invalid.
func MustValidateTag(tag string) Validator {
	fn, err := ValidateTag(tag)
	if err != nil {
		panic(err)
	}
	return fn
}

func probeTag(v *validator.Validate, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("property: invalid validation tag %q: %v", tag, r)
		}
	}()
	_ = v.Var(nil, tag)
	return nil
}

// ChainValidators accepts a value only when every validator does.
func ChainValidators(validators ...Validator) Validator {
	return func(value any) bool {
		for _, fn := range validators {
			if fn != nil && !fn(value) {
				return false
			}
		}
		return true
	}
}

// ChainSanitizers applies sanitizers in order.
func ChainSanitizers(sanitizers ...Sanitizer) Sanitizer {
	return func(value any) any {
		for _, fn := range sanitizers {
			if fn != nil {
				value = fn(value)
			}
		}
		return value
	}
}

// SanitizeHTML cleans string values with the given bluemonday policy. Other
// values pass through. A nil policy behaves like StrictText.
func SanitizeHTML(policy *bluemonday.Policy) Sanitizer {
	if policy == nil {
		policy = strictTextPolicy()
	}
	return func(value any) any {
		s, ok := value.(string)
		if !ok {
			return value
		}
		return strings.TrimSpace(policy.Sanitize(s))
	}
}

// StrictText strips all markup from string values.
func StrictText() Sanitizer {
	return SanitizeHTML(strictTextPolicy())
}

func strictTextPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
