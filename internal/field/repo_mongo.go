package field

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marektacina/task-manager/internal/model"
)

const collectionName = "fields"

// MongoRepo stores fields in a MongoDB collection. Ids are ObjectID hex
// strings, stored as the string _id of each document.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection(collectionName)}
}

func (r *MongoRepo) Create(ctx context.Context, f model.Field) (model.Field, error) {
	f.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		return model.Field{}, err
	}
	return f, nil
}

func (r *MongoRepo) Find(ctx context.Context, limit int64) ([]model.Field, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []model.Field{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (model.Field, error) {
	var f model.Field
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Field{}, ErrNotFound
	}
	if err != nil {
		return model.Field{}, err
	}
	return f, nil
}

func (r *MongoRepo) FindRefs(ctx context.Context, ids []string) ([]model.FieldRef, error) {
	if len(ids) == 0 {
		return []model.FieldRef{}, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "text": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	out := []model.FieldRef{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) UpdateByID(ctx context.Context, id string, p Patch) (model.Field, error) {
	if p.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	set := bson.M{}
	if p.Text != nil {
		set["text"] = *p.Text
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var f model.Field
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Field{}, ErrNotFound
	}
	if err != nil {
		return model.Field{}, err
	}
	return f, nil
}

func (r *MongoRepo) DeleteByID(ctx context.Context, id string) (model.Field, error) {
	var f model.Field
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Field{}, ErrNotFound
	}
	if err != nil {
		return model.Field{}, err
	}
	return f, nil
}
