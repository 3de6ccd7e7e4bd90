package domain

import (
	"encoding/json"
	"fmt"
)

// LessonSummary is the listing view of a lesson: identity and display
// metadata without the section content.
type LessonSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Lesson represents a single lesson document as stored on disk.
// Sections hold the actual teaching content as a sequence of typed blocks.
type Lesson struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Source      *SourceMetadata  `json:"source,omitempty"`
	Sections    []ContentSection `json:"sections"`
}

// Summary returns the listing view of the lesson.
func (l *Lesson) Summary() LessonSummary {
	return LessonSummary{ID: l.ID, Title: l.Title, Description: l.Description}
}

// Validate checks that the lesson carries the minimum required fields.
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: lesson ID cannot be empty", ErrValidation)
	}
	if l.Title == "" {
		return fmt.Errorf("%w: lesson title cannot be empty", ErrValidation)
	}
	for i := range l.Sections {
		if !l.Sections[i].Kind.IsValid() {
			return fmt.Errorf("%w: section %d", ErrInvalidSectionType, i)
		}
	}
	return nil
}

// SourceMetadata describes the literary source a lesson is drawn from.
type SourceMetadata struct {
	Title      string `json:"title"`
	Author     string `json:"author,omitempty"`
	Period     string `json:"period,omitempty"`
	VerseCount int    `json:"verse_count,omitempty"`
	PoeticForm string `json:"poetic_form,omitempty"`
}

// SectionKind discriminates the lesson section variants. It is carried in
// the JSON "type" field of each section.
type SectionKind string

// The fixed set of lesson section variants.
const (
	SectionProse      SectionKind = "prose"
	SectionPoetry     SectionKind = "poetry"
	SectionVocabulary SectionKind = "vocabulary"
	SectionExercises  SectionKind = "exercises"
	SectionMedia      SectionKind = "media"
	SectionDialogue   SectionKind = "dialogue"
)

// IsValid reports whether k is one of the known section kinds.
func (k SectionKind) IsValid() bool {
	switch k {
	case SectionProse, SectionPoetry, SectionVocabulary,
		SectionExercises, SectionMedia, SectionDialogue:
		return true
	default:
		return false
	}
}

// ContentSection is a tagged union over the lesson section variants.
// Exactly the field matching Kind is non-nil; the rest stay nil.
type ContentSection struct {
	Kind       SectionKind
	Prose      *ProseSection
	Poetry     *PoetrySection
	Vocabulary *VocabularySection
	Exercises  *ExercisesSection
	Media      *MediaSection
	Dialogue   *DialogueSection
}

// ProseSection holds paragraphs of running text.
type ProseSection struct {
	Title      string   `json:"title,omitempty"`
	Paragraphs []string `json:"paragraphs"`
}

// PoetrySection holds verses with optional translations.
type PoetrySection struct {
	Title  string  `json:"title,omitempty"`
	Verses []Verse `json:"verses"`
}

// Verse is a single verse within a poetry section.
type Verse struct {
	Number      int      `json:"number,omitempty"`
	Lines       []string `json:"lines"`
	Translation string   `json:"translation,omitempty"`
}

// VocabularySection holds word/meaning pairs. This is the only section
// variant the flashcard scheduler derives cards from.
type VocabularySection struct {
	Title   string            `json:"title,omitempty"`
	Entries []VocabularyEntry `json:"entries"`
}

// VocabularyEntry is one word/meaning pair.
type VocabularyEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// ExercisesSection holds groups of exercises. Exercise bodies are kept as
// raw JSON: their shape varies per exercise type and the backend only
// stores and serves them.
type ExercisesSection struct {
	Title          string          `json:"title,omitempty"`
	ExerciseGroups []ExerciseGroup `json:"exercise_groups"`
}

// ExerciseGroup is a block of exercises sharing a type and instructions.
type ExerciseGroup struct {
	GroupType    string     `json:"group_type"`
	Instructions string     `json:"instructions"`
	Exercises    []Exercise `json:"exercises"`
}

// Exercise is a single exercise with a flexible content payload.
type Exercise struct {
	ID      string          `json:"id"`
	Content json.RawMessage `json:"content"`
}

// MediaSection references an uploaded media asset.
type MediaSection struct {
	Title     string `json:"title,omitempty"`
	MediaType string `json:"media_type"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
}

// DialogueSection holds a scripted conversation.
type DialogueSection struct {
	Title string         `json:"title,omitempty"`
	Scene *SceneInfo     `json:"scene,omitempty"`
	Lines []DialogueLine `json:"lines"`
}

// SceneInfo sets the scene for a dialogue section.
type SceneInfo struct {
	Location   string   `json:"location,omitempty"`
	Time       string   `json:"time,omitempty"`
	Characters []string `json:"characters,omitempty"`
}

// DialogueLine is one line of dialogue. Direction marks stage directions
// rather than spoken text.
type DialogueLine struct {
	Character string `json:"character,omitempty"`
	Text      string `json:"text"`
	Direction bool   `json:"direction,omitempty"`
}

// sectionHeader is used to peek at the discriminator before decoding the
// variant payload.
type sectionHeader struct {
	Type SectionKind `json:"type"`
}

// UnmarshalJSON decodes a section from its inline-tagged JSON form.
// Returns ErrInvalidSectionType for an unknown or missing "type" field.
func (s *ContentSection) UnmarshalJSON(data []byte) error {
	var header sectionHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}

	*s = ContentSection{Kind: header.Type}
	var err error
	switch header.Type {
	case SectionProse:
		s.Prose = &ProseSection{}
		err = json.Unmarshal(data, s.Prose)
	case SectionPoetry:
		s.Poetry = &PoetrySection{}
		err = json.Unmarshal(data, s.Poetry)
	case SectionVocabulary:
		s.Vocabulary = &VocabularySection{}
		err = json.Unmarshal(data, s.Vocabulary)
	case SectionExercises:
		s.Exercises = &ExercisesSection{}
		err = json.Unmarshal(data, s.Exercises)
	case SectionMedia:
		s.Media = &MediaSection{}
		err = json.Unmarshal(data, s.Media)
	case SectionDialogue:
		s.Dialogue = &DialogueSection{}
		err = json.Unmarshal(data, s.Dialogue)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSectionType, header.Type)
	}
	return err
}

// MarshalJSON encodes the section back to its inline-tagged JSON form.
func (s ContentSection) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SectionProse:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			*ProseSection
		}{s.Kind, s.Prose})
	case SectionPoetry:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			*PoetrySection
		}{s.Kind, s.Poetry})
	case SectionVocabulary:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			*VocabularySection
		}{s.Kind, s.Vocabulary})
	case SectionExercises:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			*ExercisesSection
		}{s.Kind, s.Exercises})
	case SectionMedia:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			*MediaSection
		}{s.Kind, s.Media})
	case SectionDialogue:
		return json.Marshal(struct {
			Type SectionKind `json:"type"`
			*DialogueSection
		}{s.Kind, s.Dialogue})
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSectionType, s.Kind)
	}
}
