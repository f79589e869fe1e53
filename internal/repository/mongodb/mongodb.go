// Package mongodb implements the profile document store on MongoDB.
//
// WHY A DOCUMENT STORE FOR PROFILES?
// A profile is a self-contained document: optional text fields plus four
// growing reference lists (skills, hackathons, teams, badges) that other
// parts of the platform append to. Mongo gives us the two primitives the
// profile lifecycle needs natively:
//
//   - atomic create-if-absent ($setOnInsert + upsert) for the first-login
//     bootstrap — two concurrent federated logins cannot create two
//     documents or clobber an existing one
//   - merge writes ($set on exactly the supplied fields, $currentDate for
//     the update stamp) for partial profile updates
package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo owns the client connection and hands out repositories.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// New connects to MongoDB and verifies the connection with a ping. The
// returned handle owns the client; call Close on shutdown.
func New(ctx context.Context, uri, dbName string, logger *slog.Logger) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: pinging: %w", err)
	}

	logger.Info("connected to MongoDB", slog.String("database", dbName))

	return &Mongo{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Profiles returns the profile repository backed by this connection.
func (m *Mongo) Profiles() *ProfileStore {
	return NewProfileStore(m.db.Collection("profiles"))
}
