package pipeline

import (
	"context"
	"errors"
	"testing"

	"catalog-api/internal/domain"
)

type sampleRequest struct {
	Name  string `validate:"required,max=10"`
	Email string `validate:"required,email"`
}

func TestValidationBehaviorPassesValidRequests(t *testing.T) {
	ResetRules()
	behavior := &ValidationBehavior{}

	invoked := false
	next := func(ctx context.Context, request interface{}) (interface{}, error) {
		invoked = true
		return "ok", nil
	}

	resp, err := behavior.Handle(context.Background(), sampleRequest{Name: "valid", Email: "a@b.com"}, next)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !invoked {
		t.Error("Expected handler to be invoked for a valid request")
	}
	if resp != "ok" {
		t.Errorf("Expected handler response to pass through, got %v", resp)
	}
}

func TestValidationBehaviorAccumulatesAllViolations(t *testing.T) {
	ResetRules()
	RegisterRules(func(ctx context.Context, req sampleRequest) (Violations, error) {
		return Violations{"Name": {"name is reserved"}}, nil
	})

	behavior := &ValidationBehavior{}

	invoked := false
	next := func(ctx context.Context, request interface{}) (interface{}, error) {
		invoked = true
		return nil, nil
	}

	_, err := behavior.Handle(context.Background(), sampleRequest{Name: "", Email: "not-an-email"}, next)
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if invoked {
		t.Error("Expected handler not to be invoked for an invalid request")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *domain.ValidationError, got %T", err)
	}

	if len(verr.Errors["Name"]) != 2 {
		t.Errorf("Expected struct tag and rule violations for Name, got %v", verr.Errors["Name"])
	}
	if len(verr.Errors["Email"]) != 1 {
		t.Errorf("Expected one violation for Email, got %v", verr.Errors["Email"])
	}
}

func TestValidationBehaviorRuleInfrastructureError(t *testing.T) {
	ResetRules()
	ruleErr := errors.New("database unavailable")
	RegisterRules(func(ctx context.Context, req sampleRequest) (Violations, error) {
		return nil, ruleErr
	})

	behavior := &ValidationBehavior{}
	next := func(ctx context.Context, request interface{}) (interface{}, error) {
		t.Fatal("handler must not run when a rule fails")
		return nil, nil
	}

	_, err := behavior.Handle(context.Background(), sampleRequest{Name: "valid", Email: "a@b.com"}, next)
	if !errors.Is(err, ruleErr) {
		t.Errorf("Expected the infrastructure error to surface unchanged, got: %v", err)
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		t.Error("Infrastructure failures must not be reported as validation errors")
	}
}

func TestValidationBehaviorRulesRunInRegistrationOrder(t *testing.T) {
	ResetRules()

	var order []string
	RegisterRules(
		func(ctx context.Context, req sampleRequest) (Violations, error) {
			order = append(order, "first")
			return nil, nil
		},
		func(ctx context.Context, req sampleRequest) (Violations, error) {
			order = append(order, "second")
			return nil, nil
		},
	)

	behavior := &ValidationBehavior{}
	next := func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, nil
	}

	if _, err := behavior.Handle(context.Background(), sampleRequest{Name: "valid", Email: "a@b.com"}, next); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected rules in registration order, got %v", order)
	}
}

func TestValidationBehaviorCanceledContext(t *testing.T) {
	ResetRules()
	RegisterRules(func(ctx context.Context, req sampleRequest) (Violations, error) {
		t.Fatal("rule must not run after cancellation")
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	behavior := &ValidationBehavior{}
	next := func(ctx context.Context, request interface{}) (interface{}, error) {
		return nil, nil
	}

	_, err := behavior.Handle(ctx, sampleRequest{Name: "valid", Email: "a@b.com"}, next)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}
