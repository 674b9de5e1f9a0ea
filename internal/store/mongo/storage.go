package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionOrders      = "orders"
	CollectionTables      = "tables"
	CollectionProfiles    = "profiles"
	CollectionMenu        = "menu_items"
	CollectionSessions    = "sessions"
	CollectionManagerLock = "manager_lock"
	CollectionOrderAudit  = "order_status_audit"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

func (s *Storage) StartSession() (mongo.Session, error) {
	return s.client.StartSession()
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// create indexes for orders collection
	ordersIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "table_number", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection(CollectionOrders).Indexes().CreateMany(ctx, ordersIndexes); err != nil {
		return fmt.Errorf("failed to create orders indexes: %w", err)
	}

	// create indexes for tables collection
	tablesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "table_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection(CollectionTables).Indexes().CreateMany(ctx, tablesIndexes); err != nil {
		return fmt.Errorf("failed to create tables indexes: %w", err)
	}

	// create indexes for profiles collection
	profilesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "staff_id", Value: 1}, {Key: "role", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection(CollectionProfiles).Indexes().CreateMany(ctx, profilesIndexes); err != nil {
		return fmt.Errorf("failed to create profiles indexes: %w", err)
	}

	// create indexes for sessions collection
	sessionsIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection(CollectionSessions).Indexes().CreateMany(ctx, sessionsIndexes); err != nil {
		return fmt.Errorf("failed to create sessions indexes: %w", err)
	}

	// create indexes for order_status_audit collection
	auditIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "order_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: 1}},
		},
	}
	if _, err := s.database.Collection(CollectionOrderAudit).Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create order_status_audit indexes: %w", err)
	}

	return nil
}
