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

const reviewCollection = "reviews"

// ReviewRepository persists reviews in the reviews collection. The unique
// (bootcamp, user) compound index is the enforcement point for the
// one-review-per-bootcamp invariant.
type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection(reviewCollection)}
}

type mongoReview struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BootcampID primitive.ObjectID `bson:"bootcamp"`
	UserID     primitive.ObjectID `bson:"user"`
	Title      string             `bson:"title"`
	Text       string             `bson:"text"`
	Rating     int                `bson:"rating"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (mr *mongoReview) toDomain() *domain.Review {
	return &domain.Review{
		ID:         mr.ID.Hex(),
		BootcampID: mr.BootcampID.Hex(),
		UserID:     mr.UserID.Hex(),
		Title:      mr.Title,
		Text:       mr.Text,
		Rating:     mr.Rating,
		CreatedAt:  mr.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	bootcampID, err := primitive.ObjectIDFromHex(review.BootcampID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}
	userID, err := primitive.ObjectIDFromHex(review.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoReview{
		BootcampID: bootcampID,
		UserID:     userID,
		Title:      review.Title,
		Text:       review.Text,
		Rating:     review.Rating,
		CreatedAt:  time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateReview
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReview
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReviewRepository) List(ctx context.Context, bootcampID string, q ports.ListQuery) ([]*domain.Review, int64, error) {
	filter := bson.M{}
	if bootcampID != "" {
		oid, err := primitive.ObjectIDFromHex(bootcampID)
		if err != nil {
			return nil, 0, domain.ErrBootcampNotFound
		}
		filter["bootcamp"] = oid
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, findOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]*domain.Review, 0)
	for cursor.Next(ctx) {
		var mr mongoReview
		if err := cursor.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode review: %w", err)
		}
		reviews = append(reviews, mr.toDomain())
	}
	return reviews, total, cursor.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, id string, update ports.ReviewUpdate) (*domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReviewNotFound
	}

	set := bson.M{}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.Text != "" {
		set["text"] = update.Text
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoReview
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReviewNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// AverageRating runs the mean aggregation over one bootcamp's reviews. A
// bootcamp without reviews yields nil.
func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (*float64, error) {
	oid, err := primitive.ObjectIDFromHex(bootcampID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": oid}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$bootcamp",
			"average_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var result struct {
		AverageRating float64 `bson:"average_rating"`
	}
	if !cursor.Next(ctx) {
		return nil, cursor.Err()
	}
	if err := cursor.Decode(&result); err != nil {
		return nil, fmt.Errorf("decode aggregate: %w", err)
	}
	return &result.AverageRating, nil
}

// EnsureIndexes creates the unique (bootcamp, user) compound index.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bootcamp", Value: 1}, {Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
