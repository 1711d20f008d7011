package split

import (
	"testing"
)

func TestSplit(t *testing.T) {
	var s Splitter
	text := "there is no pneumothorax. small left effusion is stable."
	got := s.Split(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[0].Text != "there is no pneumothorax." {
		t.Errorf("first sentence: %q", got[0].Text)
	}
	if got[0].Offset != 0 {
		t.Errorf("first offset: %d", got[0].Offset)
	}
	if got[1].Text != "small left effusion is stable." {
		t.Errorf("second sentence: %q", got[1].Text)
	}
	if got[1].Offset != 26 {
		t.Errorf("second offset: %d", got[1].Offset)
	}
}

func TestSplitDecimalNotBoundary(t *testing.T) {
	var s Splitter
	got := s.Split("nodule measuring 3.5 cm in the right upper lobe.")
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %v", len(got), got)
	}
}

func TestSplitMidwordPeriodNotBoundary(t *testing.T) {
	// A period with no following whitespace is not a boundary; the cleaner is
	// responsible for inserting the space first.
	var s Splitter
	got := s.Split("bilaterally.left retrocardiac atelectasis.")
	if len(got) != 1 {
		t.Fatalf("expected 1 sentence, got %d: %v", len(got), got)
	}
}

func TestSplitNewline(t *testing.T) {
	text := "no acute process\nstable cardiomegaly\n"

	var plain Splitter
	if got := plain.Split(text); len(got) != 1 {
		t.Fatalf("plain splitter: expected 1 sentence, got %d: %v", len(got), got)
	}

	nl := Splitter{Newline: true}
	got := nl.Split(text)
	if len(got) != 2 {
		t.Fatalf("newline splitter: expected 2 sentences, got %d: %v", len(got), got)
	}
	if got[1].Text != "stable cardiomegaly" {
		t.Errorf("second sentence: %q", got[1].Text)
	}
}

func TestSplitEmpty(t *testing.T) {
	var s Splitter
	if got := s.Split("   \n "); len(got) != 0 {
		t.Fatalf("expected no sentences, got %v", got)
	}
}

func TestDocument(t *testing.T) {
	var s Splitter
	doc := s.Document(7, "r007", "clear lungs. no effusion.")
	if doc.Id != 7 || doc.Name != "r007" {
		t.Fatalf("document identity: %+v", doc)
	}
	if len(doc.Passages) != 1 {
		t.Fatalf("expected 1 passage, got %d", len(doc.Passages))
	}
	if len(doc.Passages[0].Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(doc.Passages[0].Sentences))
	}
	if doc.Text() != "clear lungs. no effusion." {
		t.Fatalf("document text: %q", doc.Text())
	}
}
