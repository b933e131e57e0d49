package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
)

func TestFindResult(t *testing.T) {
	results := []calculator.Result{
		{Name: "Scenario A", LoanSeeking: 1000.00},
		{Name: "Scenario B", LoanSeeking: 2000.00},
		{Name: "Another Scenario", LoanSeeking: 3000.00},
	}

	tests := []struct {
		name         string
		searchName   string
		expectFound  bool
		expectedLoan float64
	}{
		{
			name:         "Find existing scenario A",
			searchName:   "Scenario A",
			expectFound:  true,
			expectedLoan: 1000.00,
		},
		{
			name:         "Find scenario with longer name",
			searchName:   "Another Scenario",
			expectFound:  true,
			expectedLoan: 3000.00,
		},
		{
			name:        "Search for non-existent scenario",
			searchName:  "Non-existent",
			expectFound: false,
		},
		{
			name:        "Empty search name",
			searchName:  "",
			expectFound: false,
		},
		{
			name:        "Case sensitive search",
			searchName:  "scenario a",
			expectFound: false,
		},
		{
			name:        "Partial name match",
			searchName:  "Scenario",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindResult(results, tt.searchName)

			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindResult(%q) = %v, expected nil", tt.searchName, result.Name)
				}
				return
			}

			if result == nil {
				t.Fatalf("FindResult(%q) = nil, expected a result", tt.searchName)
			}
			if result.LoanSeeking != tt.expectedLoan {
				t.Errorf("FindResult(%q).LoanSeeking = %v, expected %v", tt.searchName, result.LoanSeeking, tt.expectedLoan)
			}
		})
	}
}

func TestFindResultReturnsPointerIntoSlice(t *testing.T) {
	results := []calculator.Result{{Name: "A"}}

	FindResult(results, "A").Notes = []string{"changed"}
	if len(results[0].Notes) != 1 {
		t.Errorf("FindResult should return a pointer into the slice")
	}
}

func TestFindResultNilSlice(t *testing.T) {
	if FindResult(nil, "A") != nil {
		t.Errorf("FindResult(nil) should return nil")
	}
}

func TestReferenceLoan(t *testing.T) {
	result, err := calculator.CalculateLoan(nil, "reference", "kr", ReferenceLoan())
	if err != nil {
		t.Fatalf("ReferenceLoan() does not validate: %v", err)
	}
	if result.Params.Principal != 170000 {
		t.Errorf("ReferenceLoan() principal = %v, expected 170000", result.Params.Principal)
	}
}
