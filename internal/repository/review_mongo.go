package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/starprofs/server/internal/models"
)

// ReviewMongo serves review retrieval from a MongoDB Atlas Vector Search
// index, for deployments that keep the review embeddings in Atlas instead
// of Pinecone.
//
// Expected schema:
//
//	reviews
//	  { _id: ObjectId, id: string (professor name), review, subject, stars, vector: []float32 }
type ReviewMongo struct {
	col       *mongo.Collection
	vectorIdx string // name of the Atlas Vector Search index
}

// NewReviewRepository wires the reviews collection.
func NewReviewRepository(db *mongo.Database) *ReviewMongo {
	return &ReviewMongo{
		col:       db.Collection("reviews"),
		vectorIdx: "review_embedding_index",
	}
}

// Search performs a K-NN search across the review embeddings.
func (r *ReviewMongo) Search(ctx context.Context, vector []float32, topK int) ([]models.ReviewMatch, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.vectorIdx},
			{Key: "queryVector", Value: vector},
			{Key: "path", Value: "vector"},
			{Key: "numCandidates", Value: topK * 10},
			{Key: "limit", Value: topK},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: 1},
			{Key: "review", Value: 1},
			{Key: "subject", Value: 1},
			{Key: "stars", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo vector search: %w", err)
	}
	defer cursor.Close(ctx)

	matches := []models.ReviewMatch{}
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, fmt.Errorf("mongo vector search: decode results: %w", err)
	}
	return matches, nil
}
