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

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

const bootcampCollection = "bootcamps"

// BootcampRepository persists listings in the bootcamps collection.
type BootcampRepository struct {
	coll *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{coll: db.Collection(bootcampCollection)}
}

type mongoBootcamp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        primitive.ObjectID `bson:"user"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Website       string             `bson:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty"`
	Email         string             `bson:"email,omitempty"`
	Address       string             `bson:"address,omitempty"`
	Location      *domain.Location   `bson:"location,omitempty"`
	Careers       []string           `bson:"careers,omitempty"`
	Housing       bool               `bson:"housing"`
	JobAssistance bool               `bson:"job_assistance"`
	JobGuarantee  bool               `bson:"job_guarantee"`
	AcceptGi      bool               `bson:"accept_gi"`
	AverageRating *float64           `bson:"average_rating,omitempty"`
	Photo         string             `bson:"photo,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (mb *mongoBootcamp) toDomain() *domain.Bootcamp {
	return &domain.Bootcamp{
		ID:            mb.ID.Hex(),
		UserID:        mb.UserID.Hex(),
		Name:          mb.Name,
		Description:   mb.Description,
		Website:       mb.Website,
		Phone:         mb.Phone,
		Email:         mb.Email,
		Address:       mb.Address,
		Location:      mb.Location,
		Careers:       mb.Careers,
		Housing:       mb.Housing,
		JobAssistance: mb.JobAssistance,
		JobGuarantee:  mb.JobGuarantee,
		AcceptGi:      mb.AcceptGi,
		AverageRating: mb.AverageRating,
		Photo:         mb.Photo,
		CreatedAt:     mb.CreatedAt,
	}
}

func (r *BootcampRepository) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	ownerID, err := primitive.ObjectIDFromHex(b.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBootcamp{
		UserID:        ownerID,
		Name:          b.Name,
		Description:   b.Description,
		Website:       b.Website,
		Phone:         b.Phone,
		Email:         b.Email,
		Address:       b.Address,
		Location:      b.Location,
		Careers:       b.Careers,
		Housing:       b.Housing,
		JobAssistance: b.JobAssistance,
		JobGuarantee:  b.JobGuarantee,
		AcceptGi:      b.AcceptGi,
		CreatedAt:     time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert bootcamp: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *BootcampRepository) FindByID(ctx context.Context, id string) (*domain.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *BootcampRepository) FindByUser(ctx context.Context, userID string) (*domain.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}
	return r.findOne(ctx, bson.M{"user": oid})
}

func (r *BootcampRepository) List(ctx context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(countCtx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count bootcamps: %w", err)
	}

	bootcamps, err := r.findAll(ctx, bson.M{}, findOptions(q))
	if err != nil {
		return nil, 0, err
	}
	return bootcamps, total, nil
}

func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]*domain.Bootcamp, error) {
	return r.findAll(ctx, bson.M{
		"location.coordinates": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radiusRadians},
			},
		},
	})
}

func (r *BootcampRepository) Update(ctx context.Context, id string, update ports.BootcampUpdate) (*domain.Bootcamp, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if update.Website != "" {
		set["website"] = update.Website
	}
	if update.Phone != "" {
		set["phone"] = update.Phone
	}
	if update.Email != "" {
		set["email"] = update.Email
	}
	if update.Address != "" {
		set["address"] = update.Address
	}
	if update.Careers != nil {
		set["careers"] = update.Careers
	}
	if update.Housing != nil {
		set["housing"] = *update.Housing
	}
	if update.JobAssistance != nil {
		set["job_assistance"] = *update.JobAssistance
	}
	if update.JobGuarantee != nil {
		set["job_guarantee"] = *update.JobGuarantee
	}
	if update.AcceptGi != nil {
		set["accept_gi"] = *update.AcceptGi
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBootcamp
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mb)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, fmt.Errorf("update bootcamp: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id string, filename string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"photo": filename}})
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

// SetAverageRating persists the derived average; nil unsets the field so a
// listing without reviews carries no rating at all.
func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, avg *float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$unset": bson.M{"average_rating": ""}}
	if avg != nil {
		update = bson.M{"$set": bson.M{"average_rating": *avg}}
	}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("set average rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bootcamp: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

// EnsureIndexes creates the owner and geospatial indexes.
func (r *BootcampRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "location.coordinates", Value: "2dsphere"}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BootcampRepository) findOne(ctx context.Context, filter bson.M) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBootcamp
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, fmt.Errorf("find bootcamp: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BootcampRepository) findAll(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("list bootcamps: %w", err)
	}
	defer cursor.Close(ctx)

	bootcamps := make([]*domain.Bootcamp, 0)
	for cursor.Next(ctx) {
		var mb mongoBootcamp
		if err := cursor.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, mb.toDomain())
	}
	return bootcamps, cursor.Err()
}
