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

const collectionAbout = "abouts"

type AboutRepository struct {
	col *mongo.Collection
}

func NewAboutRepository(db *mongo.Database) *AboutRepository {
	return &AboutRepository{col: db.Collection(collectionAbout)}
}

type mongoFeature struct {
	Icon        string `bson:"icon"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Color       string `bson:"color"`
	BgColor     string `bson:"bgColor"`
	Order       int    `bson:"order"`
}

type mongoStat struct {
	Label string `bson:"label"`
	Value string `bson:"value"`
	Icon  string `bson:"icon"`
	Order int    `bson:"order"`
}

type mongoAbout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AppName     string             `bson:"appName"`
	Version     string             `bson:"version"`
	Description string             `bson:"description"`
	Logo        string             `bson:"logo"`
	Features    []mongoFeature     `bson:"features"`
	Stats       []mongoStat        `bson:"stats"`
	IsActive    bool               `bson:"isActive"`
	UpdatedBy   string             `bson:"updatedBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m mongoAbout) toDomain() *domain.About {
	a := &domain.About{
		ID:          m.ID.Hex(),
		AppName:     m.AppName,
		Version:     m.Version,
		Description: m.Description,
		Logo:        m.Logo,
		Features:    make([]domain.AboutFeature, 0, len(m.Features)),
		Stats:       make([]domain.AboutStat, 0, len(m.Stats)),
		IsActive:    m.IsActive,
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, f := range m.Features {
		a.Features = append(a.Features, domain.AboutFeature(f))
	}
	for _, s := range m.Stats {
		a.Stats = append(a.Stats, domain.AboutStat(s))
	}
	return a
}

func toMongoFeatures(in []domain.AboutFeature) []mongoFeature {
	out := make([]mongoFeature, 0, len(in))
	for _, f := range in {
		out = append(out, mongoFeature(f))
	}
	return out
}

func toMongoStats(in []domain.AboutStat) []mongoStat {
	out := make([]mongoStat, 0, len(in))
	for _, s := range in {
		out = append(out, mongoStat(s))
	}
	return out
}

func (r *AboutRepository) FindActive(ctx context.Context) (*domain.About, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAbout
	if err := r.col.FindOne(ctx, bson.M{"isActive": true}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find about: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts the page and fills in its ID and timestamps.
func (r *AboutRepository) Create(ctx context.Context, a *domain.About) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoAbout{
		ID:          primitive.NewObjectID(),
		AppName:     a.AppName,
		Version:     a.Version,
		Description: a.Description,
		Logo:        a.Logo,
		Features:    toMongoFeatures(a.Features),
		Stats:       toMongoStats(a.Stats),
		IsActive:    a.IsActive,
		UpdatedBy:   a.UpdatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert about: %w", err)
	}
	a.ID = doc.ID.Hex()
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// UpsertActive updates the active page in place, creating it when none exists.
func (r *AboutRepository) UpsertActive(ctx context.Context, u ports.AboutUpdate) (*domain.About, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"appName":     u.AppName,
		"version":     u.Version,
		"description": u.Description,
		"updatedBy":   u.UpdatedBy,
		"updatedAt":   now,
	}
	onInsert := bson.M{"createdAt": now}

	if u.Logo != nil {
		set["logo"] = *u.Logo
	} else {
		onInsert["logo"] = ""
	}
	if u.Features != nil {
		set["features"] = toMongoFeatures(u.Features)
	} else {
		onInsert["features"] = []mongoFeature{}
	}
	if u.Stats != nil {
		set["stats"] = toMongoStats(u.Stats)
	} else {
		onInsert["stats"] = []mongoStat{}
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc mongoAbout
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"isActive": true},
		bson.M{"$set": set, "$setOnInsert": onInsert},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("upsert about: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AboutRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "isActive", Value: 1}}})
	return err
}
