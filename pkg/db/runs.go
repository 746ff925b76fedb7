package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RunsCollection = "runs"

// Run is the evaluation record of one train/test repetition. Model
// parameters are never stored.
type Run struct {
	ID           string        `bson:"_id"`
	Started      time.Time     `bson:"started"`
	Duration     time.Duration `bson:"duration"`
	Repetition   int           `bson:"repetition"`
	Data         string        `bson:"data"`
	LearningRate float64       `bson:"learningRate"`
	Epochs       int           `bson:"epochs"`
	Classes      int           `bson:"classes"`
	TrainRatio   float64       `bson:"trainRatio"`
	Seed         int64         `bson:"seed"`
	TrainSamples int           `bson:"trainSamples"`
	TestSamples  int           `bson:"testSamples"`
	Accuracy     float64       `bson:"accuracy"`
	Loss         float64       `bson:"loss"`
	Confusion    [][]int       `bson:"confusion"`
}

func runsIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "started", Value: -1}},
		Options: options.Index().SetName("started"),
	}
}

// RecordRun stores run, assigning a new id when it has none, and returns
// the id.
func RecordRun(ctx context.Context, db *mongo.Database, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	if err := EnsureIndex(db, ctx, RunsCollection, runsIndex()); err != nil {
		return "", fmt.Errorf("failed to ensure runs index: %w", err)
	}

	if _, err := WithTransaction(db, ctx, func(ctx context.Context) (any, error) {
		return db.Collection(RunsCollection).InsertOne(ctx, run)
	}); err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	return run.ID, nil
}

func FindRun(ctx context.Context, db *mongo.Database, id string) (Run, error) {
	var run Run
	if err := db.Collection(RunsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&run); err != nil {
		return Run{}, err
	}
	return run, nil
}
