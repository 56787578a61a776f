package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoTxRunner wraps a callback in a session transaction. Requires a
// replica set or mongos; standalone servers reject transactions.
type MongoTxRunner struct {
	client *mongo.Client
}

var _ TxRunner = (*MongoTxRunner)(nil)

func NewMongoTxRunner(client *mongo.Client) *MongoTxRunner {
	return &MongoTxRunner{client: client}
}

func (t *MongoTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc context.Context) (any, error) {
		return nil, fn(sc)
	})
	return err
}
