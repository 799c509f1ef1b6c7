package domain

import "sort"

// PageAnnotationSet maps a 1-based page number to its strokes in paint
// order. Values are treated as immutable: every mutation returns a new set.
type PageAnnotationSet map[int][]Stroke

func NewPageAnnotationSet() PageAnnotationSet {
	return PageAnnotationSet{}
}

func (s PageAnnotationSet) Strokes(page int) []Stroke {
	return s[page]
}

func (s PageAnnotationSet) Len() int {
	total := 0
	for _, strokes := range s {
		total += len(strokes)
	}
	return total
}

func (s PageAnnotationSet) Pages() []int {
	pages := make([]int, 0, len(s))
	for page, strokes := range s {
		if len(strokes) > 0 {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)
	return pages
}

// With returns a copy of the set with stroke appended to its page.
func (s PageAnnotationSet) With(stroke Stroke) PageAnnotationSet {
	next := s.Clone()
	next[stroke.Page] = append(next[stroke.Page], stroke.Clone())
	return next
}

// Without returns a copy of the set with the stroke removed from page.
func (s PageAnnotationSet) Without(page int, id StrokeID) (PageAnnotationSet, bool) {
	strokes := s[page]
	idx := -1
	for i, stroke := range strokes {
		if stroke.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, false
	}

	next := s.Clone()
	remaining := make([]Stroke, 0, len(strokes)-1)
	remaining = append(remaining, next[page][:idx]...)
	remaining = append(remaining, next[page][idx+1:]...)
	if len(remaining) == 0 {
		delete(next, page)
	} else {
		next[page] = remaining
	}

	return next, true
}

func (s PageAnnotationSet) Clone() PageAnnotationSet {
	next := make(PageAnnotationSet, len(s))
	for page, strokes := range s {
		if len(strokes) == 0 {
			continue
		}
		copied := make([]Stroke, len(strokes))
		for i, stroke := range strokes {
			copied[i] = stroke.Clone()
		}
		next[page] = copied
	}
	return next
}
