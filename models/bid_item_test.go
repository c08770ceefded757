package models

import (
	"reflect"
	"testing"
)

func TestActiveQuestions(t *testing.T) {
	specQuestions := []string{"Subgrade proof-rolled?", "Moisture within spec?"}
	override := []string{"Joint spacing verified?"}

	tests := []struct {
		name     string
		item     BidItem
		expected []string
	}{
		{
			"override wins",
			BidItem{
				ChecklistQuestions: override,
				SpecItem:           &SpecItem{ChecklistQuestions: specQuestions},
			},
			override,
		},
		{
			"falls back to spec item",
			BidItem{SpecItem: &SpecItem{ChecklistQuestions: specQuestions}},
			specQuestions,
		},
		{
			"empty override still falls back",
			BidItem{
				ChecklistQuestions: []string{},
				SpecItem:           &SpecItem{ChecklistQuestions: specQuestions},
			},
			specQuestions,
		},
		{"no spec item loaded", BidItem{}, []string{}},
		{
			"spec item with no questions",
			BidItem{SpecItem: &SpecItem{}},
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.ActiveQuestions()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ActiveQuestions() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseQuestionsText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"simple lines", "one\ntwo", []string{"one", "two"}},
		{"blank lines dropped", "one\n\n\ntwo\n", []string{"one", "two"}},
		{"whitespace trimmed", "  one  \n\ttwo\t", []string{"one", "two"}},
		{"empty text", "", []string{}},
		{"only whitespace", "   \n\t\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuestionsText(tt.text)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseQuestionsText(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestQuestionsTextRoundTrip(t *testing.T) {
	item := BidItem{}
	item.SetQuestionsText("Joint spacing verified?\nDowel baskets secured?\n")
	if got := item.QuestionsText(); got != "Joint spacing verified?\nDowel baskets secured?" {
		t.Errorf("QuestionsText() = %q", got)
	}
}
