package handlers

import (
	"time"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
)

// HandlerConfig groups dependencies shared by all route groups.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI
	Redis            catalog.RedisAPI

	UsersTable    string
	SneakersTable string
	CartsTable    string
	OrdersTable   string

	QueueURL   string
	JWTSecret  []byte
	CatalogTTL time.Duration
}
