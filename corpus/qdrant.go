package corpus

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// QdrantSource reads documents out of an existing Qdrant collection over
// gRPC. Points are expected to carry a "text" payload field and optionally a
// "label" field; the point vector becomes the document vector, so collections
// loaded this way skip tf-idf vectorisation.
type QdrantSource struct {
	connection     *grpc.ClientConn
	pointsClient   pb.PointsClient
	collectionName string
}

// NewQdrantSource connects to a Qdrant instance at the given address. The
// collection is read as-is and never created or modified.
func NewQdrantSource(address, collectionName string) (*QdrantSource, error) {
	connection, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant: %w", err)
	}

	return &QdrantSource{
		connection:     connection,
		pointsClient:   pb.NewPointsClient(connection),
		collectionName: collectionName,
	}, nil
}

// Documents scrolls through the whole collection and returns every point as
// a document with its stored vector.
func (source *QdrantSource) Documents(ctx context.Context) ([]Document, error) {
	var documents []Document
	var pageOffset *pb.PointId

	for {
		scrollResponse, err := source.pointsClient.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: source.collectionName,
			WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
			WithVectors:    &pb.WithVectorsSelector{SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: true}},
			Limit:          pb.PtrOf(uint32(1000)),
			Offset:         pageOffset,
		})
		if err != nil {
			return nil, fmt.Errorf("scroll points: %w", err)
		}

		for _, retrievedPoint := range scrollResponse.Result {
			var document Document
			if textPayload, exists := retrievedPoint.Payload["text"]; exists {
				document.Text = textPayload.GetStringValue()
			}
			if labelPayload, exists := retrievedPoint.Payload["label"]; exists {
				document.Label = labelPayload.GetStringValue()
			}
			if vectorData := retrievedPoint.Vectors.GetVector(); vectorData != nil {
				document.Vector = vectorData.Data
			}
			documents = append(documents, document)
		}

		pageOffset = scrollResponse.NextPageOffset
		if pageOffset == nil {
			break
		}
	}

	return documents, nil
}

// Close terminates the gRPC connection to the Qdrant server.
func (source *QdrantSource) Close() error {
	return source.connection.Close()
}
