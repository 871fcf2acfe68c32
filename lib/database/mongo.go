package database

import (
	"context"
	"errors"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrMongoNotConfigured = errors.New("MONGO_URL not configured")

func InitMongo(ctx context.Context) (*mongo.Client, error) {
	mongoURI := viper.GetString("MONGO_URL")
	if mongoURI == "" {
		return nil, ErrMongoNotConfigured
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}
