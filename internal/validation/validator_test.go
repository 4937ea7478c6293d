// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package validation

import (
	"strings"
	"testing"
)

type recommendInput struct {
	Page       int    `json:"page" validate:"gte=0"`
	Category   string `json:"category" validate:"required,category"`
	MaxResults int    `json:"maxResults" validate:"gte=0,lte=1000"`
	Transport  string `json:"transport,omitempty" validate:"omitempty,oneof=http nats"`
	Internal   string `json:"-" validate:"max=3"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input recommendInput
	}{
		{"named category", recommendInput{Page: 1, Category: "philosophy", MaxResults: 3}},
		{"upper case name", recommendInput{Page: 1, Category: "SCIENCE", MaxResults: 3}},
		{"numeric category", recommendInput{Category: "2", MaxResults: 0}},
		{"name with space", recommendInput{Category: "science fiction", MaxResults: 2}},
		{"name with punctuation", recommendInput{Category: "self-help & wellness", MaxResults: 2}},
		{"length boundary", recommendInput{Category: strings.Repeat("é", 128), MaxResults: 1}},
		{"max boundary", recommendInput{Category: "science", MaxResults: 1000, Transport: "nats"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := ValidateStruct(&tt.input); err != nil {
				t.Errorf("ValidateStruct() = %v, want nil", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     recommendInput
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"missing category", recommendInput{MaxResults: 1}, "category", "required", "category is required"},
		{"blank category", recommendInput{Category: "  \t", MaxResults: 1}, "category", "category", "category must be a category name or number"},
		{"overlong category", recommendInput{Category: strings.Repeat("é", 129), MaxResults: 1}, "category", "category", "category must be a category name or number"},
		{"negative max", recommendInput{Category: "science", MaxResults: -1}, "maxResults", "gte", "maxResults must be greater than or equal to 0"},
		{"max too large", recommendInput{Category: "science", MaxResults: 1001}, "maxResults", "lte", "maxResults must be less than or equal to 1000"},
		{"negative page", recommendInput{Page: -5, Category: "science"}, "page", "gte", "page must be greater than or equal to 0"},
		{"bad transport", recommendInput{Category: "science", Transport: "grpc"}, "transport", "oneof", "transport must be one of: http nats"},
		{"json dash keeps go name", recommendInput{Category: "science", Internal: "toolong"}, "Internal", "max", "Internal must be at most 3 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(err.Errors()), err)
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if fe.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", fe.Tag(), tt.wantTag)
			}
			if fe.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single error", func(t *testing.T) {
		err := ValidateStruct(&recommendInput{Category: "science", MaxResults: -1})
		apiErr := err.ToAPIError()
		if apiErr.Code != CodeValidationError {
			t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidationError)
		}
		if apiErr.Details["field"] != "maxResults" {
			t.Errorf("Details[field] = %v, want maxResults", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := ValidateStruct(&recommendInput{Page: -1, MaxResults: -1})
		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 3 {
			t.Fatalf("Details[fields] = %v, want 3 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message = %q, want joined messages", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("ValidateStruct(string) = nil, want error")
	}
	if err.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", err.Errors()[0].Field())
	}
}
