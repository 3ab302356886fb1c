package visual

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSectionKey maps a section title to the key used for image
// lookup: lower-cased, non-alphanumeric runs collapsed to single
// underscores, trimmed. The same function runs at image-store time and at
// document-assembly time; titles must never miss their image over casing or
// punctuation.
func NormalizeSectionKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	key = nonAlnum.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// Section is one titled chunk of a lesson plan.
type Section struct {
	Title string
	Body  string
}

// Lesson-plan lines containing these words start a new section even without
// heading markup.
var sectionKeywords = []string{"hook", "objective", "instruction", "practice"}

// ParseSections splits lesson text into ordered titled sections. A line
// starts a new section when it is bold-wrapped, a markdown heading, ends
// with a colon, or contains a section keyword; all other lines accumulate
// as body text. Text before the first header lands in "Overview".
func ParseSections(lessonPlan string) []Section {
	var sections []Section
	currentTitle := "Overview"
	var currentBody []string

	flush := func() {
		if len(currentBody) > 0 {
			sections = append(sections, Section{
				Title: currentTitle,
				Body:  strings.Join(currentBody, "\n"),
			})
		}
	}

	for _, line := range strings.Split(lessonPlan, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isSectionHeader(line) {
			flush()
			currentTitle = strings.TrimSpace(strings.Trim(line, "*#:"))
			currentBody = nil
		} else {
			currentBody = append(currentBody, line)
		}
	}
	flush()

	return sections
}

func isSectionHeader(line string) bool {
	if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
		return true
	}
	if strings.HasPrefix(line, "#") {
		return true
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	lower := strings.ToLower(line)
	for _, keyword := range sectionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// DocumentBuilder assembles the downloadable visual lesson document from
// lesson text and generated images.
type DocumentBuilder struct {
	outputDir string
}

// NewDocumentBuilder creates a builder writing documents under outputDir.
func NewDocumentBuilder(outputDir string) *DocumentBuilder {
	return &DocumentBuilder{outputDir: outputDir}
}

// Build writes the visual lesson plan PDF and returns its path. Each
// section renders as a heading plus body; when an image keyed by the
// section's normalized title exists on disk it is embedded below the body.
func (b *DocumentBuilder) Build(lessonPlan string, images map[string]string) (string, error) {
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Visual Lesson Plan", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Visual Lesson Plan", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range ParseSections(lessonPlan) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, section.Title, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.Body, "", "L", false)
		pdf.Ln(2)

		key := NormalizeSectionKey(section.Title)
		imagePath, ok := images[key]
		if !ok || imagePath == "" {
			continue
		}

		if embeddableImage(imagePath) {
			opts := fpdf.ImageOptions{ReadDpi: true}
			pdf.ImageOptions(imagePath, 15, 0, 120, 0, true, opts, 0, "")
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, fmt.Sprintf("Generated image for: %s", section.Title), "", "L", false)
		} else {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, fmt.Sprintf("[Visual Content: %s] %s", section.Title, imagePath), "", "L", false)
			logrus.WithFields(logrus.Fields{
				"section": section.Title,
				"path":    imagePath,
			}).Warn("image not embeddable, noted in document instead")
		}
		pdf.Ln(3)
	}

	outputPath := filepath.Join(b.outputDir, fmt.Sprintf("visual_lesson_plan_%s.pdf", uuid.NewString()[:8]))
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return outputPath, nil
}

// embeddableImage reports whether the path exists and carries an image
// extension the document writer accepts.
func embeddableImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
	default:
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
