// Package validation runs declarative field rules against commands and queries
// before they reach a use-case handler. Rules are go-playground/validator struct
// tags; failures come back as domain validation errors naming the field.
//
// Entities still enforce their own invariants; these rules exist to reject bad
// input early with a readable message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
)

// Patch is implemented by partial-update commands.
type Patch interface {
	// IsEmpty reports that no field was supplied.
	IsEmpty() bool
}

// Validator checks commands against their struct tags.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the inventory-specific types and rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(optionalValue[string], domain.Optional[string]{})
	v.RegisterCustomTypeFunc(optionalValue[int], domain.Optional[int]{})
	v.RegisterCustomTypeFunc(optionalValue[uuid.UUID], domain.Optional[uuid.UUID]{})
	v.RegisterCustomTypeFunc(optionalDecimal, domain.Optional[decimal.Decimal]{})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterCustomTypeFunc(uuidValue, uuid.UUID{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Validate runs the struct rules and, for patches, requires at least one field.
func (val *Validator) Validate(s any) error {
	if err := val.v.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return toDomainError(verrs[0])
		}
		return domain.NewValidationError("", err.Error())
	}
	if p, ok := s.(Patch); ok && p.IsEmpty() {
		return domain.NewValidationError("", "at least one field must be provided")
	}
	return nil
}

func toDomainError(fe validator.FieldError) error {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required", "notblank":
		msg = fmt.Sprintf("%s is required", field)
	case "max":
		msg = fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
	case "len":
		msg = fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "gte":
		msg = fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		msg = fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uuid":
		msg = fmt.Sprintf("%s must be a valid UUID", field)
	case "alpha":
		msg = fmt.Sprintf("%s must contain only letters", field)
	default:
		msg = fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
	return domain.NewValidationError(field, msg)
}

// optionalValue unwraps an Optional so tags apply to the inner value.
// Absent values become nil, which omitempty skips.
func optionalValue[T any](field reflect.Value) any {
	o, ok := field.Interface().(domain.Optional[T])
	if !ok {
		return nil
	}
	if v, set := o.Get(); set {
		return v
	}
	return nil
}

func optionalDecimal(field reflect.Value) any {
	o, ok := field.Interface().(domain.Optional[decimal.Decimal])
	if !ok {
		return nil
	}
	if d, set := o.Get(); set {
		return d.InexactFloat64()
	}
	return nil
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// uuidValue exposes uuid.Nil as the empty string so required catches it.
func uuidValue(field reflect.Value) any {
	if id, ok := field.Interface().(uuid.UUID); ok {
		if id == uuid.Nil {
			return ""
		}
		return id.String()
	}
	return nil
}
