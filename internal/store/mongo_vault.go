// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	mongoCollection      = "vault_entries"
	mongoDefaultDatabase = "go_pass_vault"
	mongoPingTimeout     = 5 * time.Second
)

// mongoVaultEntry is the BSON shape of a [models.VaultEntry].
type mongoVaultEntry struct {
	ID        bson.ObjectID `bson:"_id"`
	OwnerID   string        `bson:"owner_id"`
	Envelope  string        `bson:"envelope"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

func (d mongoVaultEntry) toModel() models.VaultEntry {
	return models.VaultEntry{
		ID:        d.ID.Hex(),
		OwnerID:   d.OwnerID,
		Envelope:  d.Envelope,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoVaultStore is the MongoDB implementation of [VaultStore]. Entry ids
// are ObjectID hex strings.
type MongoVaultStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
	logger *logger.Logger
}

// NewConnectMongo connects to MongoDB, verifies the connection and ensures
// the owner listing index exists.
func NewConnectMongo(ctx context.Context, cfg config.DB, log *logger.Logger) (*MongoVaultStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting mongo")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting mongo (ping)")
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	name := cfg.Name
	if name == "" {
		name = mongoDefaultDatabase
	}
	coll := client.Database(name).Collection(mongoCollection)

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("owner_created"),
	})
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error creating owner index")
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", name).Msg("connected to mongo successfully")

	return &MongoVaultStore{
		client: client,
		coll:   coll,
		now:    mongoNow,
		logger: log,
	}, nil
}

// BSON dates carry milliseconds.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (m *MongoVaultStore) Create(ctx context.Context, ownerID, envelope string) (string, error) {
	now := m.now()
	doc := mongoVaultEntry{
		ID:        bson.NewObjectID(),
		OwnerID:   ownerID,
		Envelope:  envelope,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "MongoVaultStore.Create").Msg("failed to insert vault entry")
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return doc.ID.Hex(), nil
}

func (m *MongoVaultStore) List(ctx context.Context, ownerID string) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	cursor, err := m.coll.Find(ctx,
		bson.D{{Key: "owner_id", Value: ownerID}},
		options.Find().SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}),
	)
	if err != nil {
		log.Err(err).Str("func", "MongoVaultStore.List").Msg("failed to query vault entries")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	var docs []mongoVaultEntry
	if err = cursor.All(ctx, &docs); err != nil {
		log.Err(err).Str("func", "MongoVaultStore.List").Msg("failed to decode vault entries")
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	entries := make([]models.VaultEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, doc.toModel())
	}

	return entries, nil
}

func (m *MongoVaultStore) Get(ctx context.Context, entryID, ownerID string) (models.VaultEntry, error) {
	filter, ok := ownedEntryFilter(entryID, ownerID)
	if !ok {
		return models.VaultEntry{}, ErrNotFound
	}

	var doc mongoVaultEntry
	if err := m.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.VaultEntry{}, m.wrapError(ctx, "MongoVaultStore.Get", err)
	}

	return doc.toModel(), nil
}

func (m *MongoVaultStore) Update(ctx context.Context, entryID, ownerID, envelope string) (models.VaultEntry, error) {
	filter, ok := ownedEntryFilter(entryID, ownerID)
	if !ok {
		return models.VaultEntry{}, ErrNotFound
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "envelope", Value: envelope},
		{Key: "updated_at", Value: m.now()},
	}}}

	var doc mongoVaultEntry
	err := m.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return models.VaultEntry{}, m.wrapError(ctx, "MongoVaultStore.Update", err)
	}

	return doc.toModel(), nil
}

func (m *MongoVaultStore) Delete(ctx context.Context, entryID, ownerID string) error {
	filter, ok := ownedEntryFilter(entryID, ownerID)
	if !ok {
		return ErrNotFound
	}

	res, err := m.coll.DeleteOne(ctx, filter)
	if err != nil {
		return m.wrapError(ctx, "MongoVaultStore.Delete", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Ping implements [HealthChecker].
func (m *MongoVaultStore) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoVaultStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoVaultStore) wrapError(ctx context.Context, fn string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("mongo operation failed")
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// ownedEntryFilter matches one entry by id and owner. An id that is not an
// ObjectID cannot exist, so it reports !ok instead of querying.
func ownedEntryFilter(entryID, ownerID string) (bson.D, bool) {
	oid, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, false
	}

	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "owner_id", Value: ownerID},
	}, true
}
