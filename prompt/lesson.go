// Package prompt holds the canonical prompt templates for lesson
// generation. Each builder documents its placeholders; steps supply values
// from the workflow state and never hand-assemble prompt text themselves.
package prompt

import (
	"fmt"
	"strings"
)

// SingleGradeParams fills the single-grade lesson template.
// Placeholders: subject, grades, topic, special needs, latest user request.
type SingleGradeParams struct {
	Subject      string
	Grades       string
	Topic        string
	SpecialNeeds string
	Request      string
}

// SingleGradeLesson builds the one-week lesson plan prompt for a single
// grade classroom.
func SingleGradeLesson(p SingleGradeParams) string {
	var b strings.Builder
	b.WriteString("Act as an expert Professor Agent for classroom lesson planning.\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", p.Subject)
	fmt.Fprintf(&b, "Grade Level: %s\n", p.Grades)
	fmt.Fprintf(&b, "Topic: %s\n", p.Topic)
	fmt.Fprintf(&b, "Special Needs: %s\n\n", p.SpecialNeeds)
	fmt.Fprintf(&b, "Request: %s\n\n", p.Request)
	b.WriteString(`Generate a comprehensive one-week lesson plan that includes:
1. Clear learning objectives for the grade level
2. Daily activities with multiple entry points
3. Assessments appropriate for the grade
4. Materials and resources needed
5. Extension activities for advanced learners
6. Support activities for struggling learners

Format as a structured, teacher-ready outline with clear sections.`)
	return b.String()
}

// MultigradeParams fills the multigrade lesson template.
// Placeholders: grades list, topic, subject, board, medium, learning levels,
// and the formatted resource lines produced by FormatResources.
type MultigradeParams struct {
	Grades         string
	Topic          string
	Subject        string
	Board          string
	Medium         string
	LearningLevels []string
	ResourcesText  string
}

// MultigradeLesson builds the structured, integrated lesson plan prompt for
// a multigrade classroom: paired grade-level topics, a common theme,
// differentiated objectives, and a gradual-release 40-minute procedure.
func MultigradeLesson(p MultigradeParams) string {
	board := p.Board
	if board == "" {
		board = "Maharashtra State Board"
	}

	var b strings.Builder
	b.WriteString("I am a teacher handling a multigrade classroom. Please generate a structured, integrated lesson plan based on the following inputs:\n\n")
	b.WriteString("Core Input:\n\n")
	fmt.Fprintf(&b, "Grades: %s\n\n", p.Grades)
	fmt.Fprintf(&b, "Chapter: %s\n\n", p.Topic)
	fmt.Fprintf(&b, "Subject: %s\n\n", p.Subject)
	fmt.Fprintf(&b, "Board: %s\n\n", board)
	fmt.Fprintf(&b, "Medium: %s\n\n", p.Medium)
	fmt.Fprintf(&b, "Student Learning Levels: %s\n\n", strings.Join(p.LearningLevels, ", "))
	b.WriteString(`Instructions for Lesson Plan Generation:

1. Determine Paired Grade-Level Topics from Official Textbooks:

* Analyze the core concept of the provided starting grade and topic.
* Find the corresponding chapter titles for the other grade(s) from the official textbook index, pairing foundational skills downward and progressive skills upward.
* Use the exact chapter titles from the textbook index for all topics.
`)
	if p.ResourcesText != "" {
		b.WriteString("\n")
		b.WriteString(p.ResourcesText)
		b.WriteString("\n")
	}
	b.WriteString(`
2. Identify a Common Theme: Based on the paired topics, identify a single, unifying theme for the lesson.

3. Create Differentiated Objectives: Write separate, clear learning objectives for what students in each grade level should be able to do by the end of the lesson.

4. Structure the Lesson Procedure (40 minutes): The plan must follow this specific four-part structure:

* Combined Hook: An initial activity that engages all grades together under the common theme.

* Shared Introduction: A core teaching segment that introduces the concepts sequentially, building from the simplest to the most complex.

* Differentiated Group Activities: Design distinct activities for each grade level.

* Shared Wrap-up and Evaluation: A concluding activity to quickly assess all grades on their respective objectives.

5. Keep it Practical: Ensure the materials needed are simple and the activities are suitable for a standard classroom environment.

6. Differentiated Targeted Activities (Mandatory):

* Based on the provided student learning levels, design distinct 10-minute activities for Beginner, Intermediate, and Advanced groups.

* Address common misconceptions for each grade explicitly.

* Key Principle: For the Beginner group, ensure activities teach one concept at a time. For the Advanced group, the activity should challenge them to combine concepts creatively.`)
	return b.String()
}

// ResourceLine renders one matched resource as the human-readable line
// embedded in the multigrade prompt.
func ResourceLine(grade, medium, link string) string {
	return fmt.Sprintf("For Grade %s - %s medium chapters use this link for balbharti textbook %s", grade, medium, link)
}

// FormatResources renders matched resources for prompt embedding. An empty
// slice renders as "".
func FormatResources(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Relevant Educational Resources:\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ResourceEnrichment builds the prompt that asks the model to annotate a
// lesson plan with resource placeholders. Placeholder: the lesson plan. The
// response contract is a JSON object with resource_list and lesson_plan
// fields, the latter containing [Resource: <id>] tokens.
func ResourceEnrichment(lessonPlan string) string {
	var b strings.Builder
	b.WriteString(`You are enriching a lesson plan with matched textbook resources.

Read the lesson plan below. Identify points where a cataloged educational resource (textbook chapter image, audio passage, or video clip) would support the teaching, and rewrite the plan with a placeholder of the form [Resource: <unique_id>] at each such point.

Respond with ONLY a JSON object in this exact shape:
{
  "resource_list": [
    {"unique_id": "...", "type": "image|audio|video", "grade": "...", "medium": "...", "subject": "...", "topic": "..."}
  ],
  "lesson_plan": "the rewritten lesson plan containing [Resource: <unique_id>] placeholders"
}

LESSON PLAN:
`)
	b.WriteString(lessonPlan)
	return b.String()
}

// ExtractRequirements builds the prompt for the generative pass of visual
// requirement extraction. Placeholder: the lesson plan. The response
// contract is a JSON array of {section, description} objects.
func ExtractRequirements(lessonPlan string) string {
	var b strings.Builder
	b.WriteString(`Analyze this lesson plan and identify sections that need visual content.

LESSON PLAN:
`)
	b.WriteString(lessonPlan)
	b.WriteString(`

Find mentions of:
- Pictures to show students
- Visual aids or materials
- Examples that can be illustrated
- Activities requiring images

Return ONLY a JSON array like this:
[
    {"section": "Hook Activity", "description": "festival scene"},
    {"section": "Teaching Example", "description": "child with ice cream"}
]`)
	return b.String()
}
