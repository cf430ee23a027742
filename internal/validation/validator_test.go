package validation_test

import (
	"strings"
	"testing"

	domainerrors "github.com/watpato/profile-server/internal/errors"
	"github.com/watpato/profile-server/internal/validation"
	"github.com/stretchr/testify/assert"
)

type TestRequest struct {
	Username       *string `json:"username" validate:"omitnil,min=3,max=50,username"`
	Biography      *string `json:"biography" validate:"omitnil,max=500"`
	FavoriteGenres []int64 `json:"favoriteGenres" validate:"omitnil,dive,gt=0"`
}

func strPtr(s string) *string { return &s }

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name string
		req  TestRequest
	}{
		{
			name: "all fields set",
			req: TestRequest{
				Username:       strPtr("book_lover_99"),
				Biography:      strPtr("I read a lot."),
				FavoriteGenres: []int64{1, 2, 3},
			},
		},
		{
			name: "all fields omitted",
			req:  TestRequest{},
		},
		{
			name: "empty genre list",
			req:  TestRequest{FavoriteGenres: []int64{}},
		},
		{
			name: "empty biography",
			req:  TestRequest{Biography: strPtr("")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(tt.req))
		})
	}
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       TestRequest
		wantField string
	}{
		{
			name:      "username too short",
			req:       TestRequest{Username: strPtr("ab")},
			wantField: "username",
		},
		{
			name:      "username too long",
			req:       TestRequest{Username: strPtr(strings.Repeat("a", 51))},
			wantField: "username",
		},
		{
			name:      "username with invalid characters",
			req:       TestRequest{Username: strPtr("not valid!")},
			wantField: "username",
		},
		{
			name:      "biography too long",
			req:       TestRequest{Biography: strPtr(strings.Repeat("x", 501))},
			wantField: "biography",
		},
		{
			name:      "non-positive genre id",
			req:       TestRequest{FavoriteGenres: []int64{1, 0}},
			wantField: "favoriteGenres",
		},
		{
			name:      "negative genre id",
			req:       TestRequest{FavoriteGenres: []int64{-5}},
			wantField: "favoriteGenres",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			assert.Error(t, err)

			var domainErr *domainerrors.Error
			if assert.ErrorAs(t, err, &domainErr) {
				assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

				details, ok := domainErr.Details.(map[string]string)
				if assert.True(t, ok, "details should be a field error map") {
					found := false
					for field := range details {
						if strings.HasPrefix(field, tt.wantField) {
							found = true
						}
					}
					assert.True(t, found, "expected a field error for %q, got %v", tt.wantField, details)
				}
			}
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(TestRequest{Username: strPtr("a")})
	assert.Error(t, err)

	var domainErr *domainerrors.Error
	assert.ErrorAs(t, err, &domainErr)

	// Should use JSON tag name "username", not struct field name "Username".
	details := domainErr.Details.(map[string]string)
	_, hasJSONName := details["username"]
	_, hasGoName := details["Username"]
	assert.True(t, hasJSONName)
	assert.False(t, hasGoName)
}
