// Package storage persists script generation runs to MongoDB for the API
// server. The CLIs write only to disk and do not use this package.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"book_video_automation/storyplanner"
)

// Script generation lifecycle states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const connectTimeout = 10 * time.Second

// ScriptGeneration is one pipeline run.
type ScriptGeneration struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookName string             `bson:"book_name" json:"book_name"`
	Language string             `bson:"language" json:"language"`
	Status   string             `bson:"status" json:"status"`

	Script       *storyplanner.VideoScript `bson:"script,omitempty" json:"script,omitempty"`
	OutputFolder string                    `bson:"output_folder,omitempty" json:"output_folder,omitempty"`

	CreatedAt         time.Time  `bson:"created_at" json:"created_at"`
	StartedAt         *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt       *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	ErrorMessage      string     `bson:"error_message,omitempty" json:"error_message,omitempty"`
	ProcessingTime    float64    `bson:"processing_time_seconds,omitempty" json:"processing_time_seconds,omitempty"`
	SectionsGenerated int        `bson:"sections_generated,omitempty" json:"sections_generated,omitempty"`
}

// SectionAudio records one synthesized audio file of a run. Sections
// whose voice-over was split into multiple requests produce one record
// per part, sharing a section index.
type SectionAudio struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ScriptID     primitive.ObjectID `bson:"script_id" json:"script_id"`
	SectionIndex int                `bson:"section_index" json:"section_index"`
	Part         int                `bson:"part" json:"part"`
	Title        string             `bson:"title" json:"title"`
	CharCount    int                `bson:"char_count" json:"char_count"`
	AudioFile    string             `bson:"audio_file" json:"audio_file"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Store wraps the MongoDB collections used by the API server.
type Store struct {
	client        *mongo.Client
	scripts       *mongo.Collection
	sectionAudios *mongo.Collection
}

// Connect establishes the MongoDB connection and creates indexes.
func Connect(mongoURI, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	store := &Store{
		client:        client,
		scripts:       db.Collection("script_generations"),
		sectionAudios: db.Collection("section_audios"),
	}

	if err := store.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

// Disconnect closes the MongoDB connection.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.scripts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "book_name", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = s.sectionAudios.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "script_id", Value: 1}, {Key: "section_index", Value: 1}, {Key: "part", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// InsertScript creates a new pending run record.
func (s *Store) InsertScript(ctx context.Context, gen *ScriptGeneration) (primitive.ObjectID, error) {
	gen.Status = StatusPending
	gen.CreatedAt = time.Now()

	result, err := s.scripts.InsertOne(ctx, gen)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create script record: %w", err)
	}

	id := result.InsertedID.(primitive.ObjectID)
	gen.ID = id
	return id, nil
}

// MarkProcessing stamps the run as started.
func (s *Store) MarkProcessing(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	return s.updateScript(ctx, id, bson.M{
		"status":     StatusProcessing,
		"started_at": &now,
	})
}

// MarkCompleted records the run outcome and timing.
func (s *Store) MarkCompleted(ctx context.Context, id primitive.ObjectID, script *storyplanner.VideoScript, outputFolder string, elapsed time.Duration) error {
	now := time.Now()
	return s.updateScript(ctx, id, bson.M{
		"status":                  StatusCompleted,
		"script":                  script,
		"output_folder":           outputFolder,
		"sections_generated":      len(script.Sections),
		"processing_time_seconds": elapsed.Seconds(),
		"completed_at":            &now,
	})
}

// MarkFailed records a failed run with its error message.
func (s *Store) MarkFailed(ctx context.Context, id primitive.ObjectID, errMsg string, elapsed time.Duration) error {
	now := time.Now()
	return s.updateScript(ctx, id, bson.M{
		"status":                  StatusFailed,
		"error_message":           errMsg,
		"processing_time_seconds": elapsed.Seconds(),
		"completed_at":            &now,
	})
}

func (s *Store) updateScript(ctx context.Context, id primitive.ObjectID, updateData bson.M) error {
	_, err := s.scripts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData})
	return err
}

// SaveSectionAudio records one synthesized section audio file.
func (s *Store) SaveSectionAudio(ctx context.Context, audio *SectionAudio) error {
	audio.CreatedAt = time.Now()
	_, err := s.sectionAudios.InsertOne(ctx, audio)
	if err != nil {
		return fmt.Errorf("failed to save section audio record: %w", err)
	}
	return nil
}

// GetScript looks up one run by ID.
func (s *Store) GetScript(ctx context.Context, id primitive.ObjectID) (*ScriptGeneration, error) {
	var gen ScriptGeneration
	err := s.scripts.FindOne(ctx, bson.M{"_id": id}).Decode(&gen)
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

// ListScripts returns runs newest first.
func (s *Store) ListScripts(ctx context.Context) ([]ScriptGeneration, error) {
	cursor, err := s.scripts.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scripts []ScriptGeneration
	if err := cursor.All(ctx, &scripts); err != nil {
		return nil, err
	}
	return scripts, nil
}

// GetSectionAudios returns the audio records of a run in section order,
// split parts in sequence within their section.
func (s *Store) GetSectionAudios(ctx context.Context, scriptID primitive.ObjectID) ([]SectionAudio, error) {
	cursor, err := s.sectionAudios.Find(ctx, bson.M{"script_id": scriptID},
		options.Find().SetSort(bson.D{{Key: "section_index", Value: 1}, {Key: "part", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var audios []SectionAudio
	if err := cursor.All(ctx, &audios); err != nil {
		return nil, err
	}
	return audios, nil
}
