package skill

// Category is the entity label a tagger assigns to a span. The label set is
// model dependent, so it stays an open string.
type Category string

// CoNLL-2003 labels produced by the default NER model.
const (
	CategoryPerson        Category = "PER"
	CategoryOrganization  Category = "ORG"
	CategoryLocation      Category = "LOC"
	CategoryMiscellaneous Category = "MISC"
)

// TaggedSpan is one entity reported by a Tagger. Start and End are byte
// offsets into the tagged text; both are zero when the backend omits them.
type TaggedSpan struct {
	Category Category
	Text     string
	Start    int
	End      int
	Score    float64
}
