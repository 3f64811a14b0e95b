package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doafacil/doafacil/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, limit, skip int64) ([]*models.Product, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Product, error)
	ListByReciever(ctx context.Context, reciever primitive.ObjectID) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SetReciever(ctx context.Context, id, reciever primitive.ObjectID) error
	MarkDonated(ctx context.Context, id primitive.ObjectID, donatedAt time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productRepo struct {
	collection *mongo.Collection
}

func NewProductRepository(db *DB) ProductRepository {
	return &productRepo{
		collection: db.Database.Collection("products"),
	}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// List returns a page of products, newest first.
func (r *productRepo) List(ctx context.Context, limit, skip int64) ([]*models.Product, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(limit).
		SetSkip(skip)
	return r.find(ctx, bson.M{}, opts)
}

func (r *productRepo) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]*models.Product, error) {
	return r.find(ctx, bson.M{"owner": owner})
}

func (r *productRepo) ListByReciever(ctx context.Context, reciever primitive.ObjectID) ([]*models.Product, error) {
	return r.find(ctx, bson.M{"reciever": reciever})
}

func (r *productRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.Product, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	var products []*models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": product})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *productRepo) SetReciever(ctx context.Context, id, reciever primitive.ObjectID) error {
	return r.setFields(ctx, id, bson.M{"reciever": reciever})
}

func (r *productRepo) MarkDonated(ctx context.Context, id primitive.ObjectID, donatedAt time.Time) error {
	return r.setFields(ctx, id, bson.M{"available": false, "donated_at": donatedAt})
}

func (r *productRepo) setFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update product fields: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
