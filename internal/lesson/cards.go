package lesson

import (
	"context"

	"github.com/cloudrumbles/avvai/internal/domain"
)

// EnumerateVocabularyCards derives the flashcard universe from the
// current lesson content. Cards are produced in lesson-ID order, then in
// section and entry order within each lesson, so the sequence is
// deterministic for identical content. Card IDs follow the
// "<lesson_id>:vocab:<index>" format with the index counting vocabulary
// entries across all of a lesson's vocabulary sections.
//
// Nothing is cached: every call re-reads the lesson files, keeping the
// card universe in lockstep with the lesson content lifecycle.
func (s *Store) EnumerateVocabularyCards(ctx context.Context) ([]domain.Flashcard, error) {
	lessons, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	var cards []domain.Flashcard
	for _, l := range lessons {
		index := 0
		for _, section := range l.Sections {
			if section.Kind != domain.SectionVocabulary || section.Vocabulary == nil {
				continue
			}
			for _, entry := range section.Vocabulary.Entries {
				cards = append(cards, domain.Flashcard{
					ID:    domain.VocabCardID(l.ID, index),
					Front: entry.Word,
					Back:  entry.Meaning,
				})
				index++
			}
		}
	}
	return cards, nil
}
