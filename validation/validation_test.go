package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/socialfeed/errors"
)

type postRequest struct {
	Content string `json:"content" validate:"notblank,max=10"`
	PostID  int64  `json:"postId" validate:"gt=0"`
}

func TestValidate_Struct(t *testing.T) {
	tests := []struct {
		name    string
		req     postRequest
		wantErr bool
		field   string
	}{
		{"valid", postRequest{Content: "hello", PostID: 1}, false, ""},
		{"empty content", postRequest{Content: "", PostID: 1}, true, "content"},
		{"blank content", postRequest{Content: "   ", PostID: 1}, true, "content"},
		{"too long", postRequest{Content: strings.Repeat("a", 11), PostID: 1}, true, "content"},
		{"runes not bytes", postRequest{Content: strings.Repeat("é", 10), PostID: 1}, false, ""},
		{"zero id", postRequest{Content: "x"}, true, "postId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.HTTPStatus != 400 {
				t.Errorf("expected 400, got %d", appErr.HTTPStatus)
			}
			fields, _ := appErr.Details["fields"].([]FieldError)
			if len(fields) == 0 || fields[0].Field != tt.field {
				t.Errorf("expected field %q in details, got %v", tt.field, fields)
			}
		})
	}
}

func TestValidator_Programmatic(t *testing.T) {
	if err := New().Required("content", "hi").MaxLength("content", "hi", 5).Error(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	v := New().Required("content", "  \t").MaxLength("content", "toolong", 3)
	if !v.HasErrors() || len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
	err := v.Error()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "content is required") {
		t.Errorf("expected joined message, got %q", err.Error())
	}
}

func TestValidator_Check(t *testing.T) {
	v := New().Check(false, "name", "custom")
	if v.Errors()[0].Message != "custom" {
		t.Errorf("unexpected message %q", v.Errors()[0].Message)
	}
}
