// Package cluster derives synthetic class labels for unlabeled corpora by
// k-means clustering the feature matrix. The labels feed the visualizer the
// same way real annotations would, so unlabeled projections can still be
// colored by structure.
package cluster

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/mat"
)

// Labels partitions the rows of X into k clusters and returns one label per
// row, named "cluster 0" through "cluster k-1". Cluster numbering follows
// first appearance in row order, so runs over the same partition are stable.
func Labels(X mat.Matrix, k int) ([]string, error) {
	rows, cols := X.Dims()
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 clusters, got %d", k)
	}
	if rows < k {
		return nil, fmt.Errorf("cannot split %d rows into %d clusters", rows, k)
	}

	observations := make(clusters.Observations, rows)
	for rowIndex := 0; rowIndex < rows; rowIndex++ {
		coordinates := make(clusters.Coordinates, cols)
		for columnIndex := 0; columnIndex < cols; columnIndex++ {
			coordinates[columnIndex] = X.At(rowIndex, columnIndex)
		}
		observations[rowIndex] = coordinates
	}

	km := kmeans.New()
	partition, err := km.Partition(observations, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition: %w", err)
	}

	// Partition reorders points within clusters, so label each original
	// row by the cluster whose center is nearest.
	nameByIndex := map[int]string{}
	labels := make([]string, rows)
	for rowIndex, observation := range observations {
		clusterIndex := partition.Nearest(observation)
		name, ok := nameByIndex[clusterIndex]
		if !ok {
			name = fmt.Sprintf("cluster %d", len(nameByIndex))
			nameByIndex[clusterIndex] = name
		}
		labels[rowIndex] = name
	}

	return labels, nil
}
