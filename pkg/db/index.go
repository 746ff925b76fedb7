package db

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndex(db *mongo.Database, ctx context.Context, collectionName string, model mongo.IndexModel) error {
	c := db.Collection(collectionName)

	idxs := c.Indexes()

	v := model.Options.Name
	if v == nil {
		return fmt.Errorf("must provide a name for index")
	}
	expectedName := *v

	cur, err := idxs.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list indexes: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var d bson.M

		if err := cur.Decode(&d); err != nil {
			return fmt.Errorf("unable to decode bson index document: %w", err)
		}

		if name, ok := d["name"].(string); ok && name == expectedName {
			return nil
		}
	}

	_, err = idxs.CreateOne(ctx, model)
	return err
}

// DatabaseName returns the database named by the path of a mongo URL,
// defaulting to "iris".
func DatabaseName(mongoUrl string) (string, error) {
	uri, err := url.Parse(mongoUrl)
	if err != nil {
		return "", err
	}
	if dbName := strings.Trim(uri.Path, "/"); dbName != "" {
		return dbName, nil
	}
	return "iris", nil
}

func ConnectMongo(ctx context.Context, mongoUrl string) (*mongo.Database, error) {
	registry := bson.NewRegistry()
	registry.RegisterTypeMapEntry(0x03, reflect.TypeOf(bson.M{}))

	dbName, err := DatabaseName(mongoUrl)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUrl).SetRegistry(registry))
	if err != nil {
		return nil, err
	}
	return client.Database(dbName), nil
}
