package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"perfeval/internal/domain/role"
)

func TestValidatorRequired(t *testing.T) {
	v := NewValidator()
	v.Required("name", "Asha", "name is required")
	v.Required("email", "   ", "email is required")

	if !v.HasIssues() {
		t.Fatal("expected issues for blank email")
	}
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "email" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestValidatorRole(t *testing.T) {
	v := NewValidator()
	r, ok := v.Role("role", "consultant")
	if !ok || r != role.Consultant {
		t.Fatalf("expected consultant, got %v ok=%v", r, ok)
	}
	if v.HasIssues() {
		t.Fatalf("valid role must not add issues: %+v", v.Issues())
	}

	if _, ok := v.Role("role", "intern"); ok {
		t.Fatal("unknown role must fail")
	}
	if !v.HasIssues() {
		t.Fatal("unknown role must add an issue")
	}
}

func TestValidatorIntRange(t *testing.T) {
	v := NewValidator()
	v.IntRange("maxMarks", 50, 1, 100)
	if v.HasIssues() {
		t.Fatalf("in-range value must pass: %+v", v.Issues())
	}
	v.IntRange("maxMarks", 0, 1, 100)
	v.IntRange("maxMarks", 101, 1, 100)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected 2 issues, got %+v", v.Issues())
	}
}

func TestValidatorIssuesSorted(t *testing.T) {
	v := NewValidator()
	v.Add("zeta", "last field")
	v.Add("alpha", "first field")

	issues := v.Issues()
	if issues[0].Field != "alpha" || issues[1].Field != "zeta" {
		t.Fatalf("issues must sort by field: %+v", issues)
	}
}

func TestRejectWritesValidationEnvelope(t *testing.T) {
	v := NewValidator()
	rec := httptest.NewRecorder()
	if v.Reject(rec, "req-1") {
		t.Fatal("clean validator must not reject")
	}

	v.Add("name", "name is required")
	rec = httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("validator with issues must reject")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Success || body.Error.Code != "validation_error" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if len(body.Error.Details.Fields) != 1 || body.Error.Details.Fields[0].Field != "name" {
		t.Fatalf("unexpected details: %+v", body.Error.Details.Fields)
	}
}
