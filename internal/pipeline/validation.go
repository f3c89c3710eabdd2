package pipeline

import (
	"context"
	"reflect"
	"sync"

	"catalog-api/internal/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-playground/validator/v10"
)

// Violations maps a field name to the messages recorded against it.
type Violations map[string][]string

// Add records a message against a field.
func (v Violations) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Rule is one validation rule for a request type. Rules report violations by
// field; a returned error means the rule itself could not run (infrastructure
// failure) and is not a validation outcome.
type Rule[T any] func(ctx context.Context, request T) (Violations, error)

var (
	rulesMu sync.RWMutex
	rules   = map[reflect.Type][]func(ctx context.Context, request any) (Violations, error){}

	validate = validator.New()
)

// RegisterRules attaches validation rules to a request type. Struct tags on
// the request are always evaluated first; registered rules run afterwards,
// sequentially and in registration order.
func RegisterRules[T any](ruleSet ...Rule[T]) {
	requestType := reflect.TypeOf((*T)(nil)).Elem()

	rulesMu.Lock()
	defer rulesMu.Unlock()

	for _, rule := range ruleSet {
		rule := rule
		rules[requestType] = append(rules[requestType], func(ctx context.Context, request any) (Violations, error) {
			return rule(ctx, request.(T))
		})
	}
}

// ResetRules clears the registry. Test use only.
func ResetRules() {
	rulesMu.Lock()
	defer rulesMu.Unlock()
	rules = map[reflect.Type][]func(ctx context.Context, request any) (Violations, error){}
}

var _ mediator.PipelineBehavior = (*ValidationBehavior)(nil)

// ValidationBehavior evaluates every rule registered for the request type
// before the handler runs. All violations are accumulated into a single
// ValidationError; the handler is never invoked for an invalid request.
type ValidationBehavior struct{}

func (b *ValidationBehavior) Handle(
	ctx context.Context,
	request interface{},
	next mediator.RequestHandlerFunc,
) (interface{}, error) {
	violations := Violations{}

	merge(violations, structTagViolations(request))

	rulesMu.RLock()
	requestRules := rules[reflect.TypeOf(request)]
	rulesMu.RUnlock()

	for _, rule := range requestRules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := rule(ctx, request)
		if err != nil {
			return nil, err
		}
		merge(violations, found)
	}

	if len(violations) > 0 {
		return nil, domain.NewValidationError(violations)
	}

	return next(ctx, request)
}

func structTagViolations(request any) Violations {
	v := reflect.ValueOf(request)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(v.Interface())
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	violations := Violations{}
	for _, fe := range fieldErrors {
		violations[fe.Field()] = append(violations[fe.Field()], tagMessage(fe))
	}
	return violations
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	case "uuid":
		return "invalid identifier"
	default:
		return "invalid value"
	}
}

func merge(into Violations, from Violations) {
	for field, messages := range from {
		into[field] = append(into[field], messages...)
	}
}
