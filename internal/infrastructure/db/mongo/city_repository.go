package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

const collectionCities = "cities"

type CityRepository struct {
	col *mongo.Collection
}

func NewCityRepository(db *mongo.Database) *CityRepository {
	return &CityRepository{col: db.Collection(collectionCities)}
}

type mongoCity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CityName  string             `bson:"cityName"`
	Status    string             `bson:"status"`
	CreatedBy string             `bson:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (m mongoCity) toDomain() *domain.City {
	return &domain.City{
		ID:        m.ID.Hex(),
		CityName:  m.CityName,
		Status:    domain.EntityStatus(m.Status),
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// List returns cities sorted by name.
func (r *CityRepository) List(ctx context.Context, f ports.CityFilter) ([]*domain.City, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["cityName"] = containsIgnoreCase(f.Search)
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "cityName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find cities: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}

	out := make([]*domain.City, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CityRepository) FindByID(ctx context.Context, id string) (*domain.City, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCity
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCityNotFound
		}
		return nil, fmt.Errorf("find city: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs skips malformed ids.
func (r *CityRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.City, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find cities by id: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}
	out := make([]*domain.City, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CityRepository) FindByName(ctx context.Context, name, excludeID string) (*domain.City, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"cityName": equalsIgnoreCase(name)}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	var doc mongoCity
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find city by name: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the city and sets its ID.
func (r *CityRepository) Create(ctx context.Context, c *domain.City) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCity{
		ID:        primitive.NewObjectID(),
		CityName:  c.CityName,
		Status:    string(c.Status),
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCityExists
		}
		return fmt.Errorf("insert city: %w", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (r *CityRepository) Update(ctx context.Context, c *domain.City) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"cityName":  c.CityName,
		"status":    string(c.Status),
		"updatedAt": c.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCityExists
		}
		return fmt.Errorf("update city: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

func (r *CityRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

// EnsureIndexes creates the unique case-insensitive name index and the status index.
func (r *CityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cityName", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
