package middleware

import "testing"

type sampleRequest struct {
	ID       string `validate:"required"`
	Password string `validate:"required,min=4"`
}

func TestValidateRequest(t *testing.T) {
	if errs := ValidateRequest(sampleRequest{ID: "alice01", Password: "pw123"}); errs != nil {
		t.Errorf("expected no errors for a valid request, got %v", errs)
	}

	errs := ValidateRequest(sampleRequest{Password: "pw"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %v", errs)
	}
	if errs[0].Field != "ID" || errs[0].Type != "required" {
		t.Errorf("unexpected first error: %+v", errs[0])
	}
	if errs[1].Field != "Password" || errs[1].Type != "min" {
		t.Errorf("unexpected second error: %+v", errs[1])
	}
}
