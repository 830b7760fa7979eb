package model

import (
	"strings"
	"testing"
)

func validQuestion() Question {
	return Question{
		Text: "Pick one",
		Options: []Option{
			{Key: "a", Text: "first"},
			{Key: "b", Text: "second"},
			{Key: "c", Text: "third"},
		},
		CorrectKey: "b",
	}
}

func TestQuestionValidate(t *testing.T) {
	url := "https://cdn.example.com/opt.png"

	tests := []struct {
		name    string
		mutate  func(*Question)
		wantErr string
	}{
		{"valid", func(q *Question) {}, ""},
		{
			"too few options",
			func(q *Question) { q.Options = q.Options[:1] },
			"between",
		},
		{
			"too many options",
			func(q *Question) {
				q.Options = append(q.Options,
					Option{Key: "d", Text: "x"},
					Option{Key: "e", Text: "x"},
					Option{Key: "f", Text: "x"})
			},
			"between",
		},
		{
			"duplicate keys",
			func(q *Question) { q.Options[2].Key = "a" },
			"duplicate",
		},
		{
			"multi-character key",
			func(q *Question) { q.Options[0].Key = "ab" },
			"single character",
		},
		{
			"unrenderable option",
			func(q *Question) { q.Options[1].Text = "" },
			"neither text nor image",
		},
		{
			"image-only option is renderable",
			func(q *Question) {
				q.Options[1].Text = ""
				q.Options[1].ImageURL = &url
			},
			"",
		},
		{
			"correct key missing",
			func(q *Question) { q.CorrectKey = "z" },
			"does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasOption(t *testing.T) {
	q := validQuestion()
	if !q.HasOption("a") {
		t.Fatal("HasOption(a) = false")
	}
	if q.HasOption("z") {
		t.Fatal("HasOption(z) = true")
	}
	if q.HasOption("A") {
		t.Fatal("option keys are case-sensitive")
	}
}
