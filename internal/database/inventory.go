package database

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Inventory describes what the server holds for the configured database and collection.
type Inventory struct {
	Databases        []string
	Database         string
	DatabaseExists   bool
	Collections      []string
	Collection       string
	CollectionExists bool
	Count            int64
}

// TakeInventory lists databases, the collections of database and, when present,
// the number of documents in collection.
func TakeInventory(ctx context.Context, client *mongo.Client, database, collection string) (*Inventory, error) {
	inv := &Inventory{Database: database, Collection: collection}

	dbs, err := client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	inv.Databases = dbs
	inv.DatabaseExists = slices.Contains(dbs, database)
	if !inv.DatabaseExists {
		return inv, nil
	}

	db := client.Database(database)
	cols, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	inv.Collections = cols
	inv.CollectionExists = slices.Contains(cols, collection)
	if !inv.CollectionExists {
		return inv, nil
	}

	n, err := db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	inv.Count = n
	return inv, nil
}
