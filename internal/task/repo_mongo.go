package task

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marektacina/task-manager/internal/model"
)

const collectionName = "tasks"

// MongoRepo stores tasks in a MongoDB collection. Ids are ObjectID hex
// strings, stored as the string _id of each document.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

func (r *MongoRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = primitive.NewObjectID().Hex()
	t.FieldIDs = slices.Clone(t.FieldIDs)
	if t.FieldIDs == nil {
		t.FieldIDs = []string{}
	}
	if t.Deadline.IsZero() {
		t.Deadline = time.Now().UTC().Truncate(time.Millisecond)
	}
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (f ListFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.Text != nil {
		filter["text"] = *f.Text
	}
	if f.FieldID != nil {
		filter["fieldIDs"] = *f.FieldID
	}
	if f.IsDone != nil {
		filter["isDone"] = *f.IsDone
	}
	return filter
}

func (r *MongoRepo) Find(ctx context.Context, f ListFilter) ([]model.Task, error) {
	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cur, err := r.col.Find(ctx, f.toBSON(), opts)
	if err != nil {
		return nil, err
	}
	out := []model.Task{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *MongoRepo) UpdateByID(ctx context.Context, id string, p Patch) (model.Task, error) {
	if p.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{}
	if p.Text != nil {
		set["text"] = *p.Text
	}
	if p.FieldIDs != nil {
		set["fieldIDs"] = *p.FieldIDs
	}
	if p.IsDone != nil {
		set["isDone"] = *p.IsDone
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t model.Task
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *MongoRepo) DeleteByID(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *MongoRepo) CountByField(ctx context.Context, fieldID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"fieldIDs": fieldID})
}
