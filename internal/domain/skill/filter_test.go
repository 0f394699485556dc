package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSkills_Scenario(t *testing.T) {
	spans := []TaggedSpan{
		{Category: CategoryMiscellaneous, Text: " Project Management "},
		{Category: CategoryMiscellaneous, Text: "Project Management"},
		{Category: CategoryPerson, Text: "John"},
	}

	got := FilterSkills(spans, CategoryMiscellaneous)

	assert.Equal(t, []string{"Project Management"}, got)
}

func TestFilterSkills_ExcludesOtherCategories(t *testing.T) {
	spans := []TaggedSpan{
		{Category: CategoryOrganization, Text: "Google"},
		{Category: CategoryMiscellaneous, Text: "Python"},
		{Category: CategoryLocation, Text: "Jakarta"},
		{Category: CategoryPerson, Text: "Python"},
		{Category: "misc", Text: "Jira"},
	}

	got := FilterSkills(spans, CategoryMiscellaneous)

	assert.Equal(t, []string{"Python"}, got)
	assert.NotContains(t, got, "Google")
	assert.NotContains(t, got, "Jakarta")
	assert.NotContains(t, got, "Jira")
}

func TestFilterSkills_DedupIsIdempotent(t *testing.T) {
	spans := []TaggedSpan{
		{Category: CategoryMiscellaneous, Text: "React"},
		{Category: CategoryMiscellaneous, Text: "\tReact\n"},
		{Category: CategoryMiscellaneous, Text: "  React"},
		{Category: CategoryMiscellaneous, Text: "FastAPI"},
	}

	first := FilterSkills(spans, CategoryMiscellaneous)
	assert.ElementsMatch(t, []string{"React", "FastAPI"}, first)

	again := make([]TaggedSpan, 0, len(first))
	for _, s := range first {
		again = append(again, TaggedSpan{Category: CategoryMiscellaneous, Text: s})
	}
	assert.ElementsMatch(t, first, FilterSkills(again, CategoryMiscellaneous))
}

func TestFilterSkills_CaseSensitive(t *testing.T) {
	spans := []TaggedSpan{
		{Category: CategoryMiscellaneous, Text: "javascript"},
		{Category: CategoryMiscellaneous, Text: "JavaScript"},
		{Category: CategoryMiscellaneous, Text: "JavaScript."},
	}

	got := FilterSkills(spans, CategoryMiscellaneous)

	assert.ElementsMatch(t, []string{"javascript", "JavaScript", "JavaScript."}, got)
}

func TestFilterSkills_Empty(t *testing.T) {
	got := FilterSkills(nil, CategoryMiscellaneous)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = FilterSkills([]TaggedSpan{{Category: CategoryMiscellaneous, Text: "   "}}, CategoryMiscellaneous)
	assert.Empty(t, got)
}
