package lesson

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// SectionScoring carries the marking instructions for one questionnaire
// section.
type SectionScoring struct {
	MaxScore int    `json:"max_score"`
	Criteria string `json:"criteria"`
}

// QuestionnaireSection is one assembled block of a complete assessment.
// Exactly one of the content fields is populated, selected by Type.
type QuestionnaireSection struct {
	Number       int    `json:"section_number"`
	Title        string `json:"section_title"`
	Type         string `json:"section_type"`
	Instructions string `json:"instructions"`

	Words     []string       `json:"words,omitempty"`
	Sounds    []PictureSound `json:"sounds,omitempty"`
	Story     string         `json:"story,omitempty"`
	Paragraph string         `json:"paragraph,omitempty"`
	Questions []string       `json:"questions,omitempty"`
	Problems  []WordProblem  `json:"problems,omitempty"`
	Sentences []string       `json:"sentences,omitempty"`

	Scoring SectionScoring `json:"scoring"`
}

// Questionnaire is a complete grade-banded assessment assembled from the
// per-item generators, with scoring metadata for the marking teacher.
type Questionnaire struct {
	Title         string                 `json:"title"`
	GradeBand     string                 `json:"grade_band"`
	Language      string                 `json:"language"`
	Instructions  string                 `json:"instructions"`
	Sections      []QuestionnaireSection `json:"sections"`
	TotalMaxScore int                    `json:"total_max_score"`
}

// QuestionnaireStd12 assembles the four-section Standard 1-2 assessment:
// word recognition, initial sound recognition, reading comprehension, and
// single-digit mathematics. A section whose generator fails is skipped with
// a log; assembly fails only when no section could be built.
func (g *AssessmentGenerator) QuestionnaireStd12(ctx context.Context, language string) (*Questionnaire, error) {
	if language == "" {
		language = "Hindi"
	}
	q := &Questionnaire{
		Title:        fmt.Sprintf("Standard 1-2 Assessment - %s", language),
		GradeBand:    "1-2",
		Language:     language,
		Instructions: fmt.Sprintf("This assessment contains multiple sections. Please complete all sections carefully. Use %s for responses where indicated.", language),
	}

	if words, err := g.SimpleWords(ctx, 5, language); err != nil {
		logrus.WithError(err).Warn("word recognition section skipped")
	} else if len(words) > 0 {
		q.addSection(QuestionnaireSection{
			Title:        "Word Recognition",
			Type:         "word_recognition",
			Instructions: "Read the following words aloud",
			Words:        words,
			Scoring: SectionScoring{
				MaxScore: len(words) * 2,
				Criteria: "2 points for correct reading and pronunciation, 1 point for correct reading only",
			},
		})
	}

	if sounds, err := g.PictureSoundSuggestions(ctx, 4, language); err != nil {
		logrus.WithError(err).Warn("sound recognition section skipped")
	} else if len(sounds) > 0 {
		q.addSection(QuestionnaireSection{
			Title:        "Initial Sound Recognition",
			Type:         "sound_recognition",
			Instructions: "Identify the first sound of each object",
			Sounds:       sounds,
			Scoring: SectionScoring{
				MaxScore: len(sounds),
				Criteria: "1 point for each correct initial sound identification",
			},
		})
	}

	if story, err := g.StoryWithQuestions(ctx, 1, language, "daily life"); err != nil {
		logrus.WithError(err).Warn("reading comprehension section skipped")
	} else if story.Story != "" {
		q.addSection(QuestionnaireSection{
			Title:        "Reading Comprehension",
			Type:         "reading_comprehension",
			Instructions: "Read the story and answer the questions",
			Story:        story.Story,
			Questions:    story.Questions,
			Scoring: SectionScoring{
				MaxScore: len(story.Questions) * 2,
				Criteria: "2 points for complete answer, 1 point for partial answer",
			},
		})
	}

	if problems, err := g.WordProblems(ctx, 3, language, "addition"); err != nil {
		logrus.WithError(err).Warn("mathematics section skipped")
	} else if len(problems) > 0 {
		q.addSection(QuestionnaireSection{
			Title:        "Mathematics",
			Type:         "mathematics",
			Instructions: "Solve the following word problems",
			Problems:     problems,
			Scoring: SectionScoring{
				MaxScore: len(problems) * 3,
				Criteria: "3 points for correct answer with working, 2 points for correct answer only, 1 point for correct method",
			},
		})
	}

	if len(q.Sections) == 0 {
		return nil, fmt.Errorf("no questionnaire sections could be generated")
	}
	return q, nil
}

// QuestionnaireStd35 assembles the five-section Standard 3-5 assessment:
// paragraph reading, story inference, two-digit mathematics,
// multiplication/division, and English reading. Math and English sections
// are generated in English regardless of the response language, matching
// how the assessment is administered.
func (g *AssessmentGenerator) QuestionnaireStd35(ctx context.Context, gradeLevel int, language string) (*Questionnaire, error) {
	if gradeLevel < 3 || gradeLevel > 5 {
		gradeLevel = 3
	}
	if language == "" {
		language = "Hindi"
	}
	q := &Questionnaire{
		Title:        fmt.Sprintf("Standard %d Assessment - %s", gradeLevel, language),
		GradeBand:    "3-5",
		Language:     language,
		Instructions: "This assessment contains multiple sections testing different skills. Complete all sections carefully.",
	}

	if paragraph, err := g.ReadingParagraph(ctx, gradeLevel, language, ""); err != nil {
		logrus.WithError(err).Warn("paragraph reading section skipped")
	} else if paragraph != "" {
		q.addSection(QuestionnaireSection{
			Title:        "Reading Comprehension - Paragraph",
			Type:         "paragraph_reading",
			Instructions: "Read the paragraph carefully and be prepared to discuss it",
			Paragraph:    paragraph,
			Scoring: SectionScoring{
				MaxScore: 8,
				Criteria: "2 points each for fluency, pronunciation, comprehension, and expression",
			},
		})
	}

	if story, err := g.InferenceStory(ctx, gradeLevel, language); err != nil {
		logrus.WithError(err).Warn("story inference section skipped")
	} else if story.Story != "" {
		q.addSection(QuestionnaireSection{
			Title:        "Story Comprehension & Inference",
			Type:         "inference_comprehension",
			Instructions: "Read the story and answer all questions thoughtfully",
			Story:        story.Story,
			Questions:    story.Questions,
			Scoring: SectionScoring{
				MaxScore: len(story.Questions) * 3,
				Criteria: "3 points for excellent answer, 2 points for good answer, 1 point for basic answer",
			},
		})
	}

	if problems, err := g.ArithmeticProblems(ctx, 2, "English", "addition_with_carry"); err != nil {
		logrus.WithError(err).Warn("two-digit math section skipped")
	} else if len(problems) > 0 {
		q.addSection(QuestionnaireSection{
			Title:        "Two-Digit Mathematics",
			Type:         "two_digit_math",
			Instructions: "Solve the following problems showing your work",
			Problems:     problems,
			Scoring: SectionScoring{
				MaxScore: len(problems) * 4,
				Criteria: "4 points for correct answer with clear working, 3 points for correct answer, 2 points for correct method, 1 point for partial understanding",
			},
		})
	}

	if problems, err := g.ArithmeticProblems(ctx, 2, "English", "multiplication"); err != nil {
		logrus.WithError(err).Warn("multiplication/division section skipped")
	} else if len(problems) > 0 {
		q.addSection(QuestionnaireSection{
			Title:        "Multiplication & Division",
			Type:         "multiplication_division",
			Instructions: "Solve these multiplication/division problems",
			Problems:     problems,
			Scoring: SectionScoring{
				MaxScore: len(problems) * 4,
				Criteria: "4 points for correct answer with strategy, 3 points for correct answer, 2 points for correct approach, 1 point for effort",
			},
		})
	}

	if sentences, err := g.SimpleEnglishSentences(ctx, 3); err != nil {
		logrus.WithError(err).Warn("english language section skipped")
	} else if len(sentences) > 0 {
		q.addSection(QuestionnaireSection{
			Title:        "English Language",
			Type:         "english_language",
			Instructions: "Read the English sentences aloud and explain their meaning",
			Sentences:    sentences,
			Scoring: SectionScoring{
				MaxScore: len(sentences) * 3,
				Criteria: "3 points for fluent reading with correct meaning, 2 points for good reading, 1 point for basic reading",
			},
		})
	}

	if len(q.Sections) == 0 {
		return nil, fmt.Errorf("no questionnaire sections could be generated")
	}
	return q, nil
}

// addSection numbers the section and folds its score into the total.
func (q *Questionnaire) addSection(s QuestionnaireSection) {
	s.Number = len(q.Sections) + 1
	q.Sections = append(q.Sections, s)
	q.TotalMaxScore += s.Scoring.MaxScore
}
