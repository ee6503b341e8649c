// Package department implements the department store using a MongoDB collection.
// Documents have the shape {_id, name, code, createdAt, updatedAt}.
package department

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heartmarshall/coursereview-backend/internal/adapter/mongodb"
	"github.com/heartmarshall/coursereview-backend/internal/domain"
)

type document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Code      string             `bson:"code"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty"`
}

// Repo provides department persistence backed by a MongoDB collection.
type Repo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// New creates a department repository over the given collection.
func New(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll, now: time.Now}
}

// List returns every department document in insertion order.
// Returns an empty slice (not nil) when the collection is empty.
func (r *Repo) List(ctx context.Context) ([]domain.Department, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "code": 1, "createdAt": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, mongodb.MapError(err, "departments", "find")
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongodb.MapError(err, "departments", "decode")
	}

	depts := make([]domain.Department, len(docs))
	for i, d := range docs {
		depts[i] = toDomain(d)
	}
	return depts, nil
}

// Insert stores a single department and returns it with its assigned ID.
// Returns domain.ErrAlreadyExists if a unique index rejects the document.
func (r *Repo) Insert(ctx context.Context, d domain.Department) (domain.Department, error) {
	now := r.now().UTC()
	doc := document{
		ID:        primitive.NewObjectID(),
		Name:      d.Name,
		Code:      d.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Department{}, mongodb.MapError(err, "department", fmt.Sprintf("%q", d.Code))
	}

	return toDomain(doc), nil
}

func toDomain(d document) domain.Department {
	return domain.Department{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Code:      d.Code,
		CreatedAt: d.CreatedAt,
	}
}
