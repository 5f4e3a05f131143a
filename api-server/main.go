// api-server exposes the script generation pipeline over HTTP. Runs are
// asynchronous: POST /generate-script returns a record ID immediately and
// the pipeline executes in the background, with progress queryable from
// MongoDB-backed run records.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"book_video_automation/config"
	"book_video_automation/credentials"
	"book_video_automation/elevenlabs"
	"book_video_automation/pipeline"
	"book_video_automation/storage"
	"book_video_automation/storyplanner"
	"book_video_automation/voiceover"
)

type server struct {
	cfg   *config.Config
	store *storage.Store
}

type generateRequest struct {
	BookName string `json:"book_name"`
	Language string `json:"language,omitempty"`
	VoiceID  string `json:"voice_id,omitempty"`
}

type generateResponse struct {
	Success  bool   `json:"success"`
	ScriptID string `json:"script_id,omitempty"`
	Message  string `json:"message,omitempty"`
	Status   string `json:"status,omitempty"`
	BookName string `json:"book_name,omitempty"`
	Language string `json:"language,omitempty"`
	Error    string `json:"error,omitempty"`
}

func main() {
	cfg := config.Load()
	if err := cfg.ValidateForGeneration(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	store, err := storage.Connect(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer store.Disconnect(context.Background())
	fmt.Println("✓ MongoDB connected successfully")

	srv := &server{cfg: cfg, store: store}

	r := gin.Default()
	r.Use(corsMiddleware())

	r.POST("/generate-script", srv.generateScript)
	r.GET("/scripts", srv.listScripts)
	r.GET("/scripts/:id", srv.getScript)
	r.GET("/scripts/:id/sections", srv.getScriptSections)
	r.GET("/health", srv.health)

	fmt.Println("=== Book Video Script Generator API ===")
	fmt.Printf("Server starting on port %s\n", cfg.Port)
	fmt.Println("Endpoints:")
	fmt.Println("  POST /generate-script        - Generate book video script")
	fmt.Println("  GET  /scripts                - List script runs")
	fmt.Println("  GET  /scripts/:id            - Get script run status")
	fmt.Println("  GET  /scripts/:id/sections   - Get section audio records")
	fmt.Println("  GET  /health                 - Health check")
	fmt.Println(strings.Repeat("=", 50))

	log.Fatal(r.Run(":" + cfg.Port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *server) generateScript(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, generateResponse{Success: false, Error: "Invalid JSON request body"})
		return
	}

	req.BookName = strings.TrimSpace(req.BookName)
	if req.BookName == "" {
		c.JSON(http.StatusBadRequest, generateResponse{Success: false, Error: "Book name cannot be empty"})
		return
	}

	language := strings.ToLower(strings.TrimSpace(req.Language))
	if language == "" {
		language = "en"
	}
	if !storyplanner.IsSupported(language) {
		c.JSON(http.StatusBadRequest, generateResponse{
			Success: false,
			Error:   fmt.Sprintf("Unsupported language code: %s", language),
		})
		return
	}

	gen := &storage.ScriptGeneration{
		BookName: req.BookName,
		Language: language,
	}
	scriptID, err := s.store.InsertScript(c.Request.Context(), gen)
	if err != nil {
		c.JSON(http.StatusInternalServerError, generateResponse{Success: false, Error: err.Error()})
		return
	}

	go s.processScriptGeneration(scriptID, req.BookName, language, req.VoiceID)

	c.JSON(http.StatusOK, generateResponse{
		Success:  true,
		ScriptID: scriptID.Hex(),
		Message:  "Script generation started",
		Status:   storage.StatusPending,
		BookName: req.BookName,
		Language: language,
	})

	log.Printf("✓ Script generation started for book: %s | language: %s | ID: %s",
		req.BookName, language, scriptID.Hex())
}

func (s *server) processScriptGeneration(scriptID primitive.ObjectID, bookName, language, voiceID string) {
	ctx := context.Background()
	startTime := time.Now()

	if err := s.store.MarkProcessing(ctx, scriptID); err != nil {
		log.Printf("Failed to update script record: %v", err)
	}

	automation, err := s.buildAutomation(language, voiceID)
	if err != nil {
		s.failRun(ctx, scriptID, err, startTime)
		return
	}

	result, err := automation.Run(bookName)
	if err != nil {
		s.failRun(ctx, scriptID, err, startTime)
		return
	}

	if err := s.store.MarkCompleted(ctx, scriptID, result.Script, result.Paths.Root, time.Since(startTime)); err != nil {
		log.Printf("Failed to update completed script: %v", err)
	}

	for _, af := range result.AudioFiles {
		record := &storage.SectionAudio{
			ScriptID:     scriptID,
			SectionIndex: af.SectionIndex,
			Part:         af.Part,
			Title:        af.Title,
			CharCount:    af.CharCount,
			AudioFile:    af.Path,
		}
		if err := s.store.SaveSectionAudio(ctx, record); err != nil {
			log.Printf("Warning: failed to save section audio record: %v", err)
		}
	}

	log.Printf("✅ Script generation completed for ID: %s | Time: %.2fs",
		scriptID.Hex(), time.Since(startTime).Seconds())
}

// buildAutomation assembles a fresh pipeline per run so each run gets its
// own key pool cursor.
func (s *server) buildAutomation(language, voiceID string) (*pipeline.BookAutomation, error) {
	pool, err := credentials.LoadFile(s.cfg.KeysFile)
	if err != nil {
		return nil, fmt.Errorf("loading API keys: %w", err)
	}

	if voiceID == "" {
		voiceID = s.cfg.VoiceID
	}

	groq := storyplanner.NewGroqService(s.cfg.GroqAPIKey, s.cfg.GroqModel)
	planner := storyplanner.NewScriptService(groq, storyplanner.GetLanguageConfig(language))
	synth := voiceover.NewSynthesizer(pool, elevenlabs.NewClient(nil))

	return &pipeline.BookAutomation{
		Planner: planner,
		Synth:   synth,
		Voice: pipeline.VoiceConfig{
			VoiceID:      voiceID,
			ModelID:      s.cfg.ModelID,
			OutputFormat: s.cfg.OutputFormat,
		},
		BaseDir:    s.cfg.OutputDir,
		Pause:      s.cfg.Pause,
		MergeAudio: s.cfg.MergeAudio,
	}, nil
}

func (s *server) failRun(ctx context.Context, scriptID primitive.ObjectID, runErr error, startTime time.Time) {
	if err := s.store.MarkFailed(ctx, scriptID, runErr.Error(), time.Since(startTime)); err != nil {
		log.Printf("Failed to update failed script: %v", err)
	}
	log.Printf("❌ Script generation failed for ID: %s | Error: %v", scriptID.Hex(), runErr)
}

func (s *server) getScript(c *gin.Context) {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid script ID format"})
		return
	}

	script, err := s.store.GetScript(c.Request.Context(), objectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Script not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
		return
	}

	c.JSON(http.StatusOK, script)
}

func (s *server) getScriptSections(c *gin.Context) {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid script ID format"})
		return
	}

	sections, err := s.store.GetSectionAudios(c.Request.Context(), objectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"script_id":      c.Param("id"),
		"total_sections": len(sections),
		"sections":       sections,
	})
}

func (s *server) listScripts(c *gin.Context) {
	scripts, err := s.store.ListScripts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Database error: %v", err)})
		return
	}

	c.JSON(http.StatusOK, scripts)
}

func (s *server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		mongoStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "Book Video Script Generator API",
		"mongodb":   mongoStatus,
	})
}
