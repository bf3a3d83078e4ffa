package service

import (
	"context"
	"fmt"
	"os"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// VertexEmbedder generates query embeddings through Vertex AI's prediction
// endpoint. Alternative to GeminiEmbedder for deployments that run on
// Google Cloud service-account credentials instead of an API key.
type VertexEmbedder struct {
	client   *aiplatform.PredictionClient
	endpoint string
}

// NewVertexEmbedder creates the prediction client. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS when set, otherwise application default
// credentials apply.
func NewVertexEmbedder(ctx context.Context, projectID, location, model string) (*VertexEmbedder, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := aiplatform.NewPredictionClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create prediction client: %w", err)
	}

	return &VertexEmbedder{
		client: client,
		endpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			projectID, location, model),
	}, nil
}

// Embed generates the embedding vector for text with
// task_type = "RETRIEVAL_QUERY" so it aligns with document embeddings.
func (v *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	instance, err := structpb.NewStruct(map[string]interface{}{
		"content":   text,
		"task_type": "RETRIEVAL_QUERY",
	})
	if err != nil {
		return nil, fmt.Errorf("build instance: %w", err)
	}

	resp, err := v.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  v.endpoint,
		Instances: []*structpb.Value{structpb.NewStructValue(instance)},
	})
	if err != nil {
		return nil, fmt.Errorf("vertex embed: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("vertex embed: no predictions returned")
	}

	prediction := resp.Predictions[0].GetStructValue()
	embeddings := prediction.GetFields()["embeddings"].GetStructValue()
	values := embeddings.GetFields()["values"].GetListValue().GetValues()
	if len(values) == 0 {
		return nil, fmt.Errorf("vertex embed: empty embedding returned")
	}

	result := make([]float32, len(values))
	for i, val := range values {
		result[i] = float32(val.GetNumberValue())
	}
	return result, nil
}

// Close releases the prediction client resources.
func (v *VertexEmbedder) Close() error {
	return v.client.Close()
}
