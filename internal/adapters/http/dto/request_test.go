package dto_test

import (
	"errors"
	"testing"

	"github.com/mdepalma/todolists/internal/adapters/http/dto"
	"github.com/mdepalma/todolists/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateListRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       dto.CreateListRequest
		wantField string
	}{
		{name: "valid", req: dto.CreateListRequest{Title: "Groceries"}},
		{name: "missing title", req: dto.CreateListRequest{}, wantField: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *domain.ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("Fields = %v, want entry for %q", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestUpdateListRequest_Validate(t *testing.T) {
	t.Parallel()

	if err := (&dto.UpdateListRequest{Title: "Errands"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	err := (&dto.UpdateListRequest{}).Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() = %v, want ErrValidation", err)
	}
}

func TestCreateTodoRequest_Validate(t *testing.T) {
	t.Parallel()

	if err := (&dto.CreateTodoRequest{Title: "milk"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	err := (&dto.CreateTodoRequest{}).Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() = %v, want ErrValidation", err)
	}
}

func TestUpdateTodoRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     dto.UpdateTodoRequest
		wantErr bool
	}{
		{name: "completed true", req: dto.UpdateTodoRequest{Completed: boolPtr(true)}},
		{name: "completed false", req: dto.UpdateTodoRequest{Completed: boolPtr(false)}},
		{name: "missing completed", req: dto.UpdateTodoRequest{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Validate() = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
