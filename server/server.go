// Package server exposes the lesson workflow over HTTP.
package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/approwess/sahayak-ai/lesson"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server routes HTTP requests into the lesson engine.
type Server struct {
	engine      *lesson.Engine
	assessments *lesson.AssessmentGenerator
	outputDir   string
}

// New creates a server around the given engine. outputDir is where visual
// documents are written and served from.
func New(engine *lesson.Engine, assessments *lesson.AssessmentGenerator, outputDir string) *Server {
	return &Server{engine: engine, assessments: assessments, outputDir: outputDir}
}

// Router builds the gin handler with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.home)
	router.GET("/api/health", s.health)
	router.POST("/api/generate-lesson", s.generateLesson)
	router.POST("/api/generate-visual-lesson", s.generateVisualLesson)
	router.GET("/api/download-visual-lesson/:filename", s.downloadVisualLesson)
	router.POST("/api/generate-assessment", s.generateAssessment)
	router.POST("/api/assessment/questionnaire/std1-2", s.questionnaireStd12)
	router.POST("/api/assessment/questionnaire/std3-5", s.questionnaireStd35)
	router.POST("/api/generate-lesson-simple", s.generateLessonSimple)
	router.GET("/api/lesson-templates", s.lessonTemplates)
	return router
}

func (s *Server) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Professor Agent API is running",
		"endpoints": gin.H{
			"generate_lesson":        "/api/generate-lesson [POST]",
			"generate_visual_lesson": "/api/generate-visual-lesson [POST]",
			"download_visual_lesson": "/api/download-visual-lesson/<filename> [GET]",
			"generate_assessment":    "/api/generate-assessment [POST]",
			"health":                 "/api/health [GET]",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Professor Agent API",
		"version": Version,
	})
}

type lessonRequest struct {
	Subject      string `json:"subject"`
	Grades       string `json:"grades"`
	Topic        string `json:"topic"`
	Medium       string `json:"medium"`
	SpecialNeeds string `json:"special_needs"`
	Message      string `json:"message"`
}

func (r *lessonRequest) toLessonRequest(visuals bool) lesson.Request {
	specialNeeds := r.SpecialNeeds
	if specialNeeds == "" {
		specialNeeds = "Standard differentiation"
	}
	return lesson.Request{
		Subject:         r.Subject,
		Grades:          r.Grades,
		Topic:           r.Topic,
		Medium:          r.Medium,
		SpecialNeeds:    specialNeeds,
		Message:         r.Message,
		GenerateVisuals: visuals,
	}
}

func (r *lessonRequest) complete() bool {
	return r.Subject != "" && r.Grades != "" && r.Topic != "" && r.Medium != ""
}

func (s *Server) generateLesson(c *gin.Context) {
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	state, err := s.engine.Generate(c.Request.Context(), lesson.NewState(req.toLessonRequest(false)))
	if err != nil {
		logrus.WithError(err).Error("lesson generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"lesson_plan": state.LessonPlan,
		"metadata": gin.H{
			"subject":                           state.Subject,
			"grades":                            state.Grades,
			"topic":                             state.Topic,
			"medium":                            state.Medium,
			"special_needs":                     state.SpecialNeeds,
			"class_type":                        state.ClassType,
			"resources":                         state.Resources,
			"lesson_plan_with_resource_mapping": state.LessonPlanWithResourceMapping,
		},
	})
}

func (s *Server) generateVisualLesson(c *gin.Context) {
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Message == "" {
		req.Message = "Generate a lesson plan with visual materials"
	}

	state, err := s.engine.Generate(c.Request.Context(), lesson.NewState(req.toLessonRequest(true)))
	if err != nil {
		logrus.WithError(err).Error("visual lesson generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	response := gin.H{
		"success":     true,
		"lesson_plan": state.LessonPlan,
		"metadata": gin.H{
			"subject":                           state.Subject,
			"grades":                            state.Grades,
			"topic":                             state.Topic,
			"medium":                            state.Medium,
			"special_needs":                     state.SpecialNeeds,
			"class_type":                        state.ClassType,
			"visual_content_generated":          state.VisualDocumentPath != "",
			"resources":                         state.Resources,
			"lesson_plan_with_resource_mapping": state.LessonPlanWithResourceMapping,
		},
	}

	if state.VisualDocumentPath != "" {
		filename := filepath.Base(state.VisualDocumentPath)
		sections := make([]string, 0, len(state.GeneratedImages))
		for section := range state.GeneratedImages {
			sections = append(sections, section)
		}
		response["visual_document"] = gin.H{
			"filename":              filename,
			"download_url":          "/api/download-visual-lesson/" + filename,
			"images_generated":      len(state.GeneratedImages),
			"sections_with_visuals": sections,
		}
	}
	if len(state.VisualGenerationErrors) > 0 {
		response["visual_warnings"] = state.VisualGenerationErrors
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) downloadVisualLesson(c *gin.Context) {
	// filepath.Base strips any traversal components
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(s.outputDir, filename)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	contentType := "application/octet-stream"
	if filepath.Ext(filename) == ".pdf" {
		contentType = "application/pdf"
	}
	c.Header("Content-Type", contentType)
	c.FileAttachment(path, filename)
}

type assessmentRequest struct {
	Type      string `json:"type"`
	Grade     int    `json:"grade"`
	Language  string `json:"language"`
	Topic     string `json:"topic"`
	Operation string `json:"operation"`
	Count     int    `json:"count"`
}

func (s *Server) generateAssessment(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing assessment type"})
		return
	}
	if req.Language == "" {
		req.Language = "Hindi"
	}
	if req.Grade == 0 {
		req.Grade = 1
	}

	ctx := c.Request.Context()
	var result any
	var err error

	switch req.Type {
	case "simple_words":
		count := req.Count
		if count == 0 {
			count = 7
		}
		result, err = s.assessments.SimpleWords(ctx, count, req.Language)
	case "picture_sounds":
		count := req.Count
		if count == 0 {
			count = 5
		}
		result, err = s.assessments.PictureSoundSuggestions(ctx, count, req.Language)
	case "story":
		result, err = s.assessments.StoryWithQuestions(ctx, req.Grade, req.Language, req.Topic)
	case "paragraph":
		result, err = s.assessments.ReadingParagraph(ctx, req.Grade, req.Language, req.Topic)
	case "inference_story":
		result, err = s.assessments.InferenceStory(ctx, req.Grade, req.Language)
	case "word_problems":
		count := req.Count
		if count == 0 {
			count = 2
		}
		operation := req.Operation
		if operation == "" {
			operation = "addition"
		}
		result, err = s.assessments.WordProblems(ctx, count, req.Language, operation)
	case "arithmetic":
		count := req.Count
		if count == 0 {
			count = 3
		}
		operation := req.Operation
		if operation == "" {
			operation = "addition_with_carry"
		}
		result, err = s.assessments.ArithmeticProblems(ctx, count, req.Language, operation)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown assessment type: " + req.Type})
		return
	}

	if err != nil {
		logrus.WithError(err).Error("assessment generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "type": req.Type, "result": result})
}

type questionnaireRequest struct {
	Grade    int    `json:"grade"`
	Language string `json:"language"`
}

func (s *Server) questionnaireStd12(c *gin.Context) {
	var req questionnaireRequest
	_ = c.ShouldBindJSON(&req) // all fields optional

	questionnaire, err := s.assessments.QuestionnaireStd12(c.Request.Context(), req.Language)
	if err != nil {
		logrus.WithError(err).Error("questionnaire assembly failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"questionnaire": questionnaire,
		"grade_level":   questionnaire.GradeBand,
		"metadata": gin.H{
			"language":       questionnaire.Language,
			"total_sections": len(questionnaire.Sections),
			"estimated_time": "45-60 minutes",
		},
	})
}

func (s *Server) questionnaireStd35(c *gin.Context) {
	var req questionnaireRequest
	_ = c.ShouldBindJSON(&req)

	questionnaire, err := s.assessments.QuestionnaireStd35(c.Request.Context(), req.Grade, req.Language)
	if err != nil {
		logrus.WithError(err).Error("questionnaire assembly failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"questionnaire": questionnaire,
		"grade_level":   questionnaire.GradeBand,
		"metadata": gin.H{
			"language":       questionnaire.Language,
			"total_sections": len(questionnaire.Sections),
			"estimated_time": "60-75 minutes",
		},
	})
}

type simpleLessonRequest struct {
	Message        string `json:"message"`
	IncludeVisuals bool   `json:"include_visuals"`
}

// generateLessonSimple runs the workflow with generic defaults so callers
// can try the service with nothing but a message.
func (s *Server) generateLessonSimple(c *gin.Context) {
	var req simpleLessonRequest
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "Generate a basic lesson plan"
	}

	state, err := s.engine.Generate(c.Request.Context(), lesson.NewState(lesson.Request{
		Subject:         "General",
		Grades:          "Mixed",
		Topic:           "General Learning",
		SpecialNeeds:    "Standard differentiation",
		Message:         req.Message,
		GenerateVisuals: req.IncludeVisuals,
	}))
	if err != nil {
		logrus.WithError(err).Error("simple lesson generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	response := gin.H{
		"success":     true,
		"lesson_plan": state.LessonPlan,
	}
	if req.IncludeVisuals && state.VisualDocumentPath != "" {
		filename := filepath.Base(state.VisualDocumentPath)
		response["visual_document"] = gin.H{
			"filename":     filename,
			"download_url": "/api/download-visual-lesson/" + filename,
		}
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) lessonTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"templates": gin.H{
			"elementary": gin.H{
				"subjects":          []string{"Math", "Science", "English", "Social Studies"},
				"suggested_visuals": []string{"Activity illustrations", "Character drawings", "Step-by-step diagrams"},
				"image_style":       "cartoon",
			},
			"middle_school": gin.H{
				"subjects":          []string{"Mathematics", "Science", "Language Arts", "History", "Geography"},
				"suggested_visuals": []string{"Concept diagrams", "Historical illustrations", "Scientific processes"},
				"image_style":       "simple",
			},
			"high_school": gin.H{
				"subjects":          []string{"Advanced Mathematics", "Physics", "Chemistry", "Literature", "World History"},
				"suggested_visuals": []string{"Complex diagrams", "Timeline graphics", "Process flows"},
				"image_style":       "realistic",
			},
		},
		"visual_options": gin.H{
			"image_styles":     []string{"cartoon", "simple", "realistic"},
			"visual_types":     []string{"illustrations", "diagrams", "characters", "scenes"},
			"document_formats": []string{"pdf"},
		},
	})
}
