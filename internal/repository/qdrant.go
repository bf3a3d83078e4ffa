package repository

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/starprofs/server/internal/models"
)

// Qdrant serves review retrieval from a Qdrant collection over gRPC, for
// self-hosted deployments. Payload fields mirror the Pinecone metadata:
// id (professor name), review, subject, stars.
type Qdrant struct {
	conn       *grpc.ClientConn
	points     pb.PointsClient
	collection string
}

// NewQdrant connects to a Qdrant instance.
func NewQdrant(host string, port int, collection string) (*Qdrant, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant connect: %w", err)
	}
	return &Qdrant{
		conn:       conn,
		points:     pb.NewPointsClient(conn),
		collection: collection,
	}, nil
}

// Search returns the topK nearest reviews to vector, ordered by descending
// similarity.
func (q *Qdrant) Search(ctx context.Context, vector []float32, topK int) ([]models.ReviewMatch, error) {
	resp, err := q.points.Search(ctx, &pb.SearchPoints{
		CollectionName: q.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search: %w", err)
	}

	matches := make([]models.ReviewMatch, len(resp.Result))
	for i, pt := range resp.Result {
		m := models.ReviewMatch{Score: float64(pt.Score)}
		for k, v := range pt.Payload {
			switch k {
			case "id":
				m.Professor = v.GetStringValue()
			case "review":
				m.Review = v.GetStringValue()
			case "subject":
				m.Subject = v.GetStringValue()
			case "stars":
				if d := v.GetDoubleValue(); d != 0 {
					m.Stars = d
				} else {
					m.Stars = float64(v.GetIntegerValue())
				}
			}
		}
		matches[i] = m
	}
	return matches, nil
}

// Close tears down the gRPC connection.
func (q *Qdrant) Close() error {
	return q.conn.Close()
}
