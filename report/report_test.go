package report

import "testing"

func TestDocumentSentences(t *testing.T) {
	doc := Document{
		Id:   3,
		Name: "r003",
		Passages: []Passage{
			{Offset: 0, Text: "no acute process.", Sentences: []Sentence{
				{Offset: 0, Text: "no acute process."},
			}},
			{Offset: 18, Text: "stable cardiomegaly. no effusion.", Sentences: []Sentence{
				{Offset: 0, Text: "stable cardiomegaly."},
				{Offset: 21, Text: "no effusion."},
			}},
		},
	}

	sentences := doc.Sentences()
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences across passages, got %d", len(sentences))
	}
	if sentences[2].Text != "no effusion." {
		t.Errorf("last sentence: %q", sentences[2].Text)
	}

	if got := doc.Text(); got != "no acute process.stable cardiomegaly. no effusion." {
		t.Errorf("concatenated text: %q", got)
	}
}

func TestCollectionAdd(t *testing.T) {
	c := Collection{Source: "reports.csv"}
	c.Add(Document{Id: 0, Name: "r000"})
	c.Add(Document{Id: 1, Name: "r001"})

	if c.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", c.Len())
	}
	if c.Documents[1].Name != "r001" {
		t.Errorf("second document: %q", c.Documents[1].Name)
	}
}
