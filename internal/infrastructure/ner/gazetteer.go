package ner

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"aspiro/internal/domain/skill"
)

//go:embed default_skills.txt
var defaultSkills string

// Gazetteer tags occurrences of a fixed term list as MISC. It needs no model
// server and is read-only after construction.
type Gazetteer struct {
	terms []gazetteerTerm
}

type gazetteerTerm struct {
	name string
	re   *regexp.Regexp
}

func NewGazetteer(terms []string) (*Gazetteer, error) {
	g := &Gazetteer{}
	seen := map[string]struct{}{}
	for _, raw := range terms {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
		if err != nil {
			return nil, fmt.Errorf("%w: term %q: %v", skill.ErrTaggerInit, name, err)
		}
		g.terms = append(g.terms, gazetteerTerm{name: name, re: re})
	}
	if len(g.terms) == 0 {
		return nil, fmt.Errorf("%w: gazetteer has no terms", skill.ErrTaggerInit)
	}
	return g, nil
}

// NewGazetteerFromFile loads terms from path, or the built-in list when path is empty.
func NewGazetteerFromFile(path string) (*Gazetteer, error) {
	if strings.TrimSpace(path) == "" {
		terms, err := ReadTerms(strings.NewReader(defaultSkills))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", skill.ErrTaggerInit, err)
		}
		return NewGazetteer(terms)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", skill.ErrTaggerInit, err)
	}
	defer f.Close()

	terms, err := ReadTerms(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", skill.ErrTaggerInit, err)
	}
	return NewGazetteer(terms)
}

// ReadTerms reads one term per line, skipping blanks and # comments.
func ReadTerms(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gazetteer) Tag(ctx context.Context, text string) ([]skill.TaggedSpan, error) {
	spans := make([]skill.TaggedSpan, 0)
	if text == "" {
		return spans, nil
	}

	for _, t := range g.terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, m := range t.re.FindAllStringIndex(text, -1) {
			start, end := m[0], m[1]
			if !onWordBoundary(text, start, end) {
				continue
			}
			spans = append(spans, skill.TaggedSpan{
				Category: skill.CategoryMiscellaneous,
				Text:     text[start:end],
				Start:    start,
				End:      end,
				Score:    1,
			})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start == spans[j].Start {
			return spans[i].End > spans[j].End
		}
		return spans[i].Start < spans[j].Start
	})
	return spans, nil
}

// onWordBoundary reports whether text[start:end] is not glued to a letter or
// digit on either side. A trailing + or # also counts as glued, so "C" does
// not match inside "C++" or "C#".
func onWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '+' || r == '#' {
			return false
		}
	}
	return true
}

func (g *Gazetteer) Len() int {
	return len(g.terms)
}

var _ skill.Tagger = (*Gazetteer)(nil)
