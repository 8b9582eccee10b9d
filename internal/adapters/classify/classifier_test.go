package classify_test

import (
	"testing"

	"github.com/sentinai/sentinai/internal/adapters/classify"
)

func TestPredictKnownCategories(t *testing.T) {
	c := classify.NewDefaultClassifier()

	cases := []struct {
		text     string
		category string
	}{
		{"I was charged twice for my subscription", "Billing"},
		{"Why is my bill so much higher this month", "Billing"},
		{"The application keeps crashing", "Technical"},
		{"I cannot connect to the server at all", "Technical"},
		{"I forgot my password and cannot reset it", "Account"},
		{"How do I change my email address", "Account"},
	}

	for _, tc := range cases {
		pred, err := c.Predict(tc.text)
		if err != nil {
			t.Fatalf("%q: Predict failed: %v", tc.text, err)
		}
		if pred.Category != tc.category {
			t.Fatalf("%q: expected %s, got %s (score %.3f)", tc.text, tc.category, pred.Category, pred.Score)
		}
		if pred.Probability <= 0 || pred.Probability > 1 {
			t.Fatalf("%q: probability %f out of range", tc.text, pred.Probability)
		}
		if pred.Score <= 0 {
			t.Fatalf("%q: expected a positive score", tc.text)
		}
	}
}

func TestPredictEmptyInput(t *testing.T) {
	c := classify.NewDefaultClassifier()

	if _, err := c.Predict("   "); err == nil {
		t.Fatalf("expected an error for empty input")
	}
}

func TestPredictUnrelatedText(t *testing.T) {
	c := classify.NewDefaultClassifier()

	pred, err := c.Predict("zebra giraffe elephant")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if pred.Score != 0 || pred.Probability != 0 {
		t.Fatalf("expected zero confidence for unrelated text, got %+v", pred)
	}
}

func TestCategoriesInTrainingOrder(t *testing.T) {
	c := classify.NewDefaultClassifier()

	want := []string{"Billing", "Technical", "Account"}
	got := c.Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestNewClassifierRequiresSamples(t *testing.T) {
	if _, err := classify.NewClassifier(nil); err == nil {
		t.Fatalf("expected an error for an empty training set")
	}
}
