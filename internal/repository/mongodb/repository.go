package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jchamizo/productos/internal/domain/models"
)

const (
	productsCollection = "products"
	countersCollection = "counters"
)

// Repository implements repository.ProductRepository and
// repository.SequenceAllocator on top of a MongoDB database.
type Repository struct {
	client *mongo.Client
	dbName string
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

func (r *Repository) products() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(productsCollection)
}

func (r *Repository) counters() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(countersCollection)
}

// GetAll returns every product document in store-native order.
func (r *Repository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.products().Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID returns (nil, nil) when the id does not exist.
func (r *Repository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := r.products().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return &product, nil
}

func (r *Repository) Insert(ctx context.Context, product models.Product) error {
	if _, err := r.products().InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to insert product %d: %w", product.ID, err)
	}
	return nil
}

// Replace overwrites the full document; it never upserts.
func (r *Repository) Replace(ctx context.Context, product models.Product) (bool, error) {
	result, err := r.products().ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return false, fmt.Errorf("failed to replace product %d: %w", product.ID, err)
	}
	return result.MatchedCount > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.products().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}

type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

// Next atomically increments the counter document for key and returns the
// new value. The upsert creates the counter on first use, so sequences start
// at 1.
func (r *Repository) Next(ctx context.Context, key string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDocument
	err := r.counters().
		FindOneAndUpdate(ctx, bson.M{"_id": key}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", key, err)
	}
	return counter.Seq, nil
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
