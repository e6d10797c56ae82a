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

const collectionHubs = "hubs"

type HubRepository struct {
	col *mongo.Collection
}

func NewHubRepository(db *mongo.Database) *HubRepository {
	return &HubRepository{col: db.Collection(collectionHubs)}
}

type mongoHub struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	CityID              primitive.ObjectID `bson:"cityId"`
	HubName             string             `bson:"hubName"`
	HubArea             string             `bson:"hubArea,omitempty"`
	ServiceablePincodes []string           `bson:"serviceablePincodes"`
	Status              string             `bson:"status"`
	CreatedBy           string             `bson:"createdBy,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}

func (m mongoHub) toDomain() *domain.Hub {
	pincodes := m.ServiceablePincodes
	if pincodes == nil {
		pincodes = []string{}
	}
	return &domain.Hub{
		ID:                  m.ID.Hex(),
		CityID:              m.CityID.Hex(),
		HubName:             m.HubName,
		HubArea:             m.HubArea,
		ServiceablePincodes: pincodes,
		Status:              domain.EntityStatus(m.Status),
		CreatedBy:           m.CreatedBy,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// List returns hubs sorted by name. A malformed city filter matches nothing.
func (r *HubRepository) List(ctx context.Context, f ports.HubFilter) ([]*domain.Hub, error) {
	filter := bson.M{}
	if f.CityID != "" {
		oid, err := primitive.ObjectIDFromHex(f.CityID)
		if err != nil {
			return []*domain.Hub{}, nil
		}
		filter["cityId"] = oid
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["hubName"] = containsIgnoreCase(f.Search)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "hubName", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find hubs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoHub
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode hubs: %w", err)
	}
	out := make([]*domain.Hub, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *HubRepository) FindByID(ctx context.Context, id string) (*domain.Hub, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoHub
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHubNotFound
		}
		return nil, fmt.Errorf("find hub: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *HubRepository) FindByName(ctx context.Context, cityID, name, excludeID string) (*domain.Hub, error) {
	cityOID, err := primitive.ObjectIDFromHex(cityID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"cityId": cityOID, "hubName": equalsIgnoreCase(name)}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	var doc mongoHub
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find hub by name: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *HubRepository) CountByCity(ctx context.Context, cityID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(cityID)
	if err != nil {
		return 0, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"cityId": oid})
	if err != nil {
		return 0, fmt.Errorf("count hubs: %w", err)
	}
	return n, nil
}

func (r *HubRepository) Create(ctx context.Context, h *domain.Hub) error {
	cityOID, err := primitive.ObjectIDFromHex(h.CityID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoHub{
		ID:                  primitive.NewObjectID(),
		CityID:              cityOID,
		HubName:             h.HubName,
		HubArea:             h.HubArea,
		ServiceablePincodes: h.ServiceablePincodes,
		Status:              string(h.Status),
		CreatedBy:           h.CreatedBy,
		CreatedAt:           h.CreatedAt,
		UpdatedAt:           h.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrHubExists
		}
		return fmt.Errorf("insert hub: %w", err)
	}
	h.ID = doc.ID.Hex()
	return nil
}

func (r *HubRepository) Update(ctx context.Context, h *domain.Hub) error {
	oid, err := primitive.ObjectIDFromHex(h.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	cityOID, err := primitive.ObjectIDFromHex(h.CityID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"cityId":              cityOID,
		"hubName":             h.HubName,
		"hubArea":             h.HubArea,
		"serviceablePincodes": h.ServiceablePincodes,
		"status":              string(h.Status),
		"updatedAt":           h.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrHubExists
		}
		return fmt.Errorf("update hub: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHubNotFound
	}
	return nil
}

func (r *HubRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete hub: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHubNotFound
	}
	return nil
}

// EnsureIndexes creates the unique (cityId, hubName) index plus lookup indexes.
func (r *HubRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cityId", Value: 1}, {Key: "hubName", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
		},
		{Keys: bson.D{{Key: "serviceablePincodes", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
