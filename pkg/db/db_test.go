package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/grexie/iris/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	name, err := db.DatabaseName("mongodb://localhost:27017/experiments")
	require.NoError(t, err)
	assert.Equal(t, "experiments", name)

	name, err = db.DatabaseName("mongodb://localhost:27017")
	require.NoError(t, err)
	assert.Equal(t, "iris", name)

	_, err = db.DatabaseName("mongodb://%zz")
	assert.Error(t, err)
}

func TestRecordRun(t *testing.T) {
	mongoUrl := os.Getenv("MONGO_URL")
	if mongoUrl == "" {
		t.Skip("MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.ConnectMongo(ctx, mongoUrl)
	require.NoError(t, err)
	defer database.Client().Disconnect(ctx)

	run := db.Run{
		Started:      time.Now().UTC().Truncate(time.Millisecond),
		Duration:     1500 * time.Millisecond,
		Data:         "Iris.csv",
		LearningRate: 0.1,
		Epochs:       100,
		Classes:      3,
		TrainRatio:   0.8,
		Seed:         42,
		TrainSamples: 120,
		TestSamples:  30,
		Accuracy:     96.66666666666667,
		Loss:         0.12,
		Confusion:    [][]int{{10, 0, 0}, {0, 9, 1}, {0, 0, 10}},
	}

	id, err := db.RecordRun(ctx, database, run)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	defer database.Collection(db.RunsCollection).DeleteOne(ctx, map[string]string{"_id": id})

	stored, err := db.FindRun(ctx, database, id)
	require.NoError(t, err)
	run.ID = id
	assert.Equal(t, run, stored)
}
