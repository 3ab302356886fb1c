package lesson

import (
	"context"
	"fmt"
	"strings"

	"github.com/approwess/sahayak-ai/llm"
)

// PictureSound is an object suggestion for initial-sound recognition.
type PictureSound struct {
	Object string `json:"object"`
	Sound  string `json:"sound"`
}

// WordProblem is a generated arithmetic problem with its answer.
type WordProblem struct {
	Problem string `json:"problem"`
	Answer  string `json:"answer"`
}

// StoryAssessment is a short story with comprehension questions.
type StoryAssessment struct {
	Story     string   `json:"story"`
	Questions []string `json:"questions"`
}

// AssessmentGenerator produces grade-banded reading and arithmetic
// assessment material for early-primary classrooms.
type AssessmentGenerator struct {
	provider llm.Provider
}

// NewAssessmentGenerator returns a generator backed by the given text
// provider.
func NewAssessmentGenerator(provider llm.Provider) *AssessmentGenerator {
	return &AssessmentGenerator{provider: provider}
}

func (g *AssessmentGenerator) call(ctx context.Context, promptText string) (string, error) {
	response, err := g.provider.CallLLM(ctx, []llm.Message{{Role: llm.RoleUser, Content: promptText}})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Content), nil
}

// SimpleWords generates short words for Standard 1-2 recognition practice.
func (g *AssessmentGenerator) SimpleWords(ctx context.Context, numWords int, language string) ([]string, error) {
	promptText := fmt.Sprintf(`Generate a list of %d very simple, common %s words (2-3 letters).
These words should be easy for a Standard 1-2 rural Indian child to recognize and read.
Do NOT include any complex characters or conjuncts. Focus on basic, everyday vocabulary.
Present them as a comma-separated list without numbering or extra text.
Example: जल, घर, फल, नल, बस, आम`, numWords, language)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	var words []string
	for _, w := range strings.Split(content, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}

// PictureSoundSuggestions generates object suggestions with their initial
// sounds for Standard 1-2 sound recognition.
func (g *AssessmentGenerator) PictureSoundSuggestions(ctx context.Context, numPics int, language string) ([]PictureSound, error) {
	promptText := fmt.Sprintf(`Suggest %d common objects that a Standard 1-2 rural Indian child would recognize.
These objects should have clear, distinct initial sounds in %s.
For each object, provide the %s word and the initial sound.
Format each item as "Object: [Object Name], Sound: [Initial Sound]". Use simple words only.

Example:
Object: आम, Sound: आ
Object: बकरी, Sound: ब`, numPics, language, language)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	var suggestions []PictureSound
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "Object:") || !strings.Contains(line, "Sound:") {
			continue
		}
		rest := strings.SplitN(line, "Object:", 2)[1]
		object := strings.TrimSpace(strings.SplitN(rest, ",", 2)[0])
		sound := strings.TrimSpace(strings.SplitN(line, "Sound:", 2)[1])
		if object != "" && sound != "" {
			suggestions = append(suggestions, PictureSound{Object: object, Sound: sound})
		}
	}
	return suggestions, nil
}

// StoryWithQuestions generates a short story with direct comprehension
// questions for the given grade.
func (g *AssessmentGenerator) StoryWithQuestions(ctx context.Context, gradeLevel int, language, topic string) (*StoryAssessment, error) {
	if topic == "" {
		topic = "animals"
	}
	promptText := fmt.Sprintf(`Generate a very simple story in %s for a Standard %d rural Indian child.
The story should be about '%s', 3-4 sentences long, using basic, common vocabulary.
Ensure the plot is straightforward and easy to follow.
After the story, provide exactly 2 direct comprehension questions based on the story.

Format:
Story:
[Your simple story text]

Questions:
1. [Question 1]
2. [Question 2]`, language, gradeLevel, topic)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(content, "Questions:", 2)
	story := strings.TrimSpace(strings.Replace(parts[0], "Story:", "", 1))
	var questions []string
	if len(parts) > 1 {
		for _, q := range strings.Split(parts[1], "\n") {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}
	}
	return &StoryAssessment{Story: story, Questions: questions}, nil
}

// ReadingParagraph generates a comprehension paragraph for Standard 3-5.
func (g *AssessmentGenerator) ReadingParagraph(ctx context.Context, gradeLevel int, language, topic string) (string, error) {
	if topic == "" {
		topic = "village life"
	}
	promptText := fmt.Sprintf(`Generate a simple paragraph in %s for a Standard %d child.
The paragraph should be about "%s", 5-7 sentences long, with slightly more complex vocabulary than Standard 1-2, but still easy to understand for a rural Indian child.
Avoid very long sentences or highly abstract concepts.
The paragraph should be coherent and flow naturally.`, language, gradeLevel, topic)

	return g.call(ctx, promptText)
}

// InferenceStory generates a story with recall, inference, and main-idea
// questions for Standard 3-5.
func (g *AssessmentGenerator) InferenceStory(ctx context.Context, gradeLevel int, language string) (*StoryAssessment, error) {
	promptText := fmt.Sprintf(`Generate a short story in %s suitable for a Standard %d child.
The story should be 6-8 sentences long, feature relatable characters or scenarios, and have a clear plot.
Use vocabulary slightly more advanced than basic, but still within a Standard %d child's grasp in rural India.

After the story, provide exactly 3 comprehension questions.
1. A direct recall question.
2. A question requiring simple inference (e.g., character's feeling, reason for an action).
3. A question about a moral or a main idea.

Format:
Story:
[Your short story text]

Questions:
1. [Direct recall question]
2. [Inference question]
3. [Moral/Main idea question]`, language, gradeLevel, gradeLevel)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(content, "Questions:", 2)
	story := strings.TrimSpace(strings.Replace(parts[0], "Story:", "", 1))
	var questions []string
	if len(parts) > 1 {
		for _, q := range strings.Split(parts[1], "\n") {
			if q = strings.TrimSpace(q); q != "" {
				questions = append(questions, q)
			}
		}
	}
	return &StoryAssessment{Story: story, Questions: questions}, nil
}

// WordProblems generates simple single-digit word problems for Standard 1-2.
// operationType selects addition or subtraction scenarios.
func (g *AssessmentGenerator) WordProblems(ctx context.Context, numProblems int, language, operationType string) ([]WordProblem, error) {
	scenario := "addition"
	if strings.EqualFold(operationType, "subtraction") {
		scenario = "subtraction"
	}
	promptText := fmt.Sprintf(`Generate %d very simple single-digit %s word problems in %s for a Standard 1-2 rural Indian child.
Use common objects or scenarios from village life (e.g., fruits, animals, children playing, flowers).
Include the numerical answer for each problem.
Format:
Problem: [Problem text]
Answer: [Numerical answer]

Problem: [Problem text]
Answer: [Numerical answer]`, numProblems, scenario, language)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	var problems []WordProblem
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}
		first := strings.TrimSpace(lines[0])
		second := strings.TrimSpace(lines[1])
		if !strings.HasPrefix(first, "Problem:") || !strings.HasPrefix(second, "Answer:") {
			continue
		}
		problems = append(problems, WordProblem{
			Problem: strings.TrimSpace(strings.TrimPrefix(first, "Problem:")),
			Answer:  strings.TrimSpace(strings.TrimPrefix(second, "Answer:")),
		})
	}
	return problems, nil
}

// SimpleEnglishSentences generates short English reading sentences for
// Standard 3-5.
func (g *AssessmentGenerator) SimpleEnglishSentences(ctx context.Context, numSentences int) ([]string, error) {
	promptText := fmt.Sprintf(`Generate %d very simple English sentences for a Standard 3-5 rural Indian child.
These sentences should use common words and simple grammar, similar to what a child at this level might learn.
Each sentence should be on a new line.
Example:
This is a big house.
The cat runs fast.
She has a red ball.`, numSentences)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	var sentences []string
	for _, s := range strings.Split(content, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences, nil
}

// ArithmeticProblems generates two-digit or times-table problems for
// Standard 3-5 in the inline "Problem: ..., Answer: ..." format.
// operationType is one of addition_with_carry, subtraction_with_borrow,
// multiplication, or division.
func (g *AssessmentGenerator) ArithmeticProblems(ctx context.Context, numProblems int, language, operationType string) ([]WordProblem, error) {
	descriptions := map[string]string{
		"addition_with_carry":     "two-digit addition problems. Each problem MUST involve carrying over.",
		"subtraction_with_borrow": "two-digit subtraction problems. Each problem MUST involve borrowing. Ensure the first number is larger than the second.",
		"multiplication":          "simple multiplication problems (single-digit by two-digit, or two-digit by single-digit).",
		"division":                "simple division problems (two-digit by single-digit, with or without remainder).",
	}
	description, ok := descriptions[operationType]
	if !ok {
		return nil, fmt.Errorf("unknown operation type %q", operationType)
	}
	promptText := fmt.Sprintf(`Generate %d %s in %s for a Standard 3-5 child.
Format each problem as 'Problem: [expression], Answer: [result]'.
Example: Problem: 37 + 45, Answer: 82`, numProblems, description, language)

	content, err := g.call(ctx, promptText)
	if err != nil {
		return nil, err
	}
	var problems []WordProblem
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, "Problem:") || !strings.Contains(line, "Answer:") {
			continue
		}
		rest := strings.SplitN(line, "Problem:", 2)[1]
		parts := strings.SplitN(rest, ", Answer:", 2)
		if len(parts) != 2 {
			continue
		}
		problems = append(problems, WordProblem{
			Problem: strings.TrimSpace(parts[0]),
			Answer:  strings.TrimSpace(parts[1]),
		})
	}
	return problems, nil
}
