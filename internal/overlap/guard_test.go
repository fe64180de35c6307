package overlap

import (
	"context"
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"  spaced   out  ", "spaced out"},
		{"Growth: 40% YoY", "growth 40 yoy"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if sim := Similarity("own the workflow", "Own the workflow."); sim != 1.0 {
		t.Errorf("containment short-circuit: got %.2f, want 1.0", sim)
	}
	if sim := Similarity("", "anything"); sim != 0 {
		t.Errorf("empty input: got %.2f, want 0", sim)
	}
	sim := Similarity("pricing shapes retention outcomes", "distribution determines market winners")
	if sim > 0.2 {
		t.Errorf("unrelated strings scored %.2f", sim)
	}
}

func TestContainmentRatio(t *testing.T) {
	phrases := []string{
		"own the workflow",
		"outcome pricing compounds retention",
		"integration depth wins deals",
		"churn dropped sharply",
	}

	text := "You should own the workflow, because outcome pricing compounds retention over time."
	if ratio := ContainmentRatio(text, phrases); ratio != 0.5 {
		t.Errorf("ratio = %.2f, want 0.50", ratio)
	}

	if ratio := ContainmentRatio("completely fresh language throughout", phrases); ratio != 0 {
		t.Errorf("ratio = %.2f, want 0", ratio)
	}

	if ratio := ContainmentRatio("anything", nil); ratio != 0 {
		t.Errorf("nil phrases: ratio = %.2f, want 0", ratio)
	}
}

func TestGuard_CleanDraftNoRetry(t *testing.T) {
	phrases := []string{"own the workflow", "outcome pricing compounds retention"}
	calls := 0
	generate := func(ctx context.Context, instruction string) (string, error) {
		calls++
		return "A fresh interpretation that restates nothing verbatim.", nil
	}

	text, err := Guard(context.Background(), generate, phrases)
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if text == "" {
		t.Error("empty result")
	}
}

func TestGuard_RedundantDraftRetriesExactlyOnce(t *testing.T) {
	phrases := []string{"own the workflow", "outcome pricing compounds retention"}
	redundant := "Own the workflow. Outcome pricing compounds retention."

	calls := 0
	var instructions []string
	generate := func(ctx context.Context, instruction string) (string, error) {
		calls++
		instructions = append(instructions, instruction)
		return redundant, nil
	}

	text, err := Guard(context.Background(), generate, phrases)
	if err != nil {
		t.Fatalf("guard: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", calls)
	}
	if instructions[0] != "" {
		t.Error("first call unexpectedly carried an instruction")
	}
	if instructions[1] != RephraseInstruction {
		t.Errorf("retry instruction = %q", instructions[1])
	}
	// The retry result is accepted even though it is still redundant
	if text != redundant {
		t.Error("retry result was not accepted")
	}
}

func TestGuard_GeneratorError(t *testing.T) {
	wantErr := errors.New("provider down")
	generate := func(ctx context.Context, instruction string) (string, error) {
		return "", wantErr
	}

	_, err := Guard(context.Background(), generate, []string{"phrase"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestGuard_RetryError(t *testing.T) {
	wantErr := errors.New("provider down")
	calls := 0
	generate := func(ctx context.Context, instruction string) (string, error) {
		calls++
		if calls == 1 {
			return "own the workflow", nil
		}
		return "", wantErr
	}

	_, err := Guard(context.Background(), generate, []string{"own the workflow"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected retry error, got %v", err)
	}
}
