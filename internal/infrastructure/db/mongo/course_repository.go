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

const courseCollection = "courses"

// CourseRepository persists courses in the courses collection.
type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(courseCollection)}
}

type mongoCourse struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	BootcampID           primitive.ObjectID `bson:"bootcamp"`
	UserID               primitive.ObjectID `bson:"user"`
	Title                string             `bson:"title"`
	Description          string             `bson:"description"`
	Weeks                int                `bson:"weeks"`
	Tuition              float64            `bson:"tuition"`
	MinimumSkill         string             `bson:"minimum_skill"`
	ScholarshipAvailable bool               `bson:"scholarship_available"`
	CreatedAt            time.Time          `bson:"created_at"`
}

func (mc *mongoCourse) toDomain() *domain.Course {
	return &domain.Course{
		ID:                   mc.ID.Hex(),
		BootcampID:           mc.BootcampID.Hex(),
		UserID:               mc.UserID.Hex(),
		Title:                mc.Title,
		Description:          mc.Description,
		Weeks:                mc.Weeks,
		Tuition:              mc.Tuition,
		MinimumSkill:         mc.MinimumSkill,
		ScholarshipAvailable: mc.ScholarshipAvailable,
		CreatedAt:            mc.CreatedAt,
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	bootcampID, err := primitive.ObjectIDFromHex(c.BootcampID)
	if err != nil {
		return nil, domain.ErrBootcampNotFound
	}
	userID, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCourse{
		BootcampID:           bootcampID,
		UserID:               userID,
		Title:                c.Title,
		Description:          c.Description,
		Weeks:                c.Weeks,
		Tuition:              c.Tuition,
		MinimumSkill:         c.MinimumSkill,
		ScholarshipAvailable: c.ScholarshipAvailable,
		CreatedAt:            time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CourseRepository) FindByUser(ctx context.Context, userID string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return r.findOne(ctx, bson.M{"user": oid})
}

func (r *CourseRepository) List(ctx context.Context, bootcampID string, q ports.ListQuery) ([]*domain.Course, int64, error) {
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
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, findOptions(q))
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := make([]*domain.Course, 0)
	for cursor.Next(ctx) {
		var mc mongoCourse
		if err := cursor.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode course: %w", err)
		}
		courses = append(courses, mc.toDomain())
	}
	return courses, total, cursor.Err()
}

func (r *CourseRepository) Update(ctx context.Context, id string, update ports.CourseUpdate) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	set := bson.M{}
	if update.Title != "" {
		set["title"] = update.Title
	}
	if update.Description != "" {
		set["description"] = update.Description
	}
	if update.Weeks != nil {
		set["weeks"] = *update.Weeks
	}
	if update.Tuition != nil {
		set["tuition"] = *update.Tuition
	}
	if update.MinimumSkill != "" {
		set["minimum_skill"] = update.MinimumSkill
	}
	if update.ScholarshipAvailable != nil {
		set["scholarship_available"] = *update.ScholarshipAvailable
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by the nested routes and the
// one-course-per-user pre-check.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bootcamp", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}
