package report

// Sentence is one sentence of a passage, with its byte offset into the
// original passage text.
type Sentence struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// Passage is a contiguous block of report text. Report impressions produce a
// single passage at offset 0, but the shape allows multi-section reports.
type Passage struct {
	Offset    int        `json:"offset"`
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences,omitempty"`
}

// Document is one report: its impression text split into passages and
// sentences, plus the pathology labels assigned by the annotator.
type Document struct {
	Id int `json:"id"`

	// Name identifies the report in its source dataset (file name or row key).
	Name string `json:"name"`

	Labels   []string  `json:"labels,omitempty"`
	Passages []Passage `json:"passages,omitempty"`
}

// Sentences returns all sentences of the document across passages, in order.
func (d Document) Sentences() []Sentence {
	var all []Sentence
	for _, p := range d.Passages {
		all = append(all, p.Sentences...)
	}
	return all
}

// Text returns the concatenated passage text of the document.
func (d Document) Text() string {
	if len(d.Passages) == 1 {
		return d.Passages[0].Text
	}
	var s string
	for _, p := range d.Passages {
		s += p.Text
	}
	return s
}

// Collection is a set of documents prepared together, the unit the storage
// backends persist and the commands operate on.
type Collection struct {
	Source    string     `json:"source,omitempty"`
	Date      string     `json:"date,omitempty"`
	Key       string     `json:"key,omitempty"`
	Documents []Document `json:"documents"`
}

// Add appends a document to the collection.
func (c *Collection) Add(doc Document) {
	c.Documents = append(c.Documents, doc)
}

// Len returns the number of documents in the collection.
func (c *Collection) Len() int {
	return len(c.Documents)
}

// Categories is the pathology label set of the chest X-ray dataset. Label
// columns of the report CSV are matched against this list.
var Categories = []string{
	"Cardiomegaly",
	"Lung Lesion",
	"Airspace Opacity",
	"Edema",
	"Consolidation",
	"Pneumonia",
	"Atelectasis",
	"Pneumothorax",
	"Pleural Effusion",
	"Pleural Other",
	"Fracture",
}
