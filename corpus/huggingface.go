package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const datasetViewerBaseURL = "https://datasets-server.huggingface.co"

// HFClient fetches dataset rows from the Hugging Face Dataset Viewer API and
// turns them into documents.
type HFClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHFClient creates a new Hugging Face Dataset Viewer client.
func NewHFClient() *HFClient {
	return &HFClient{
		baseURL:    datasetViewerBaseURL,
		httpClient: &http.Client{},
	}
}

// SplitsResponse represents the response from the /splits endpoint.
type SplitsResponse struct {
	Splits []Split `json:"splits"`
}

// Split represents a dataset split.
type Split struct {
	Dataset string `json:"dataset"`
	Config  string `json:"config"`
	Split   string `json:"split"`
}

// RowsResponse represents the response from the /rows endpoint.
type RowsResponse struct {
	Rows []RowWrapper `json:"rows"`
}

// RowWrapper wraps an individual row from the dataset.
type RowWrapper struct {
	RowIdx int                    `json:"row_idx"`
	Row    map[string]interface{} `json:"row"`
}

// GetSplits fetches available splits for a dataset.
func (c *HFClient) GetSplits(dataset string) (*SplitsResponse, error) {
	reqURL := fmt.Sprintf("%s/splits?dataset=%s", c.baseURL, url.QueryEscape(dataset))

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result SplitsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// GetRows fetches rows from a dataset split.
func (c *HFClient) GetRows(dataset, config, split string, offset, length int) (*RowsResponse, error) {
	reqURL := fmt.Sprintf("%s/rows?dataset=%s&config=%s&split=%s&offset=%s&length=%s",
		c.baseURL,
		url.QueryEscape(dataset),
		url.QueryEscape(config),
		url.QueryEscape(split),
		strconv.Itoa(offset),
		strconv.Itoa(length),
	)

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result RowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// FetchDocuments fetches documents from a dataset split, reading text from
// textColumn and, when labelColumn is non-empty, labels from labelColumn.
// It paginates through the dataset in chunks of 100 rows (API max).
func (c *HFClient) FetchDocuments(dataset, config, split, textColumn, labelColumn string, maxRows int) ([]Document, error) {
	var documents []Document
	offset := 0
	pageSize := 100

	for {
		if maxRows > 0 && offset >= maxRows {
			break
		}

		remaining := pageSize
		if maxRows > 0 && offset+pageSize > maxRows {
			remaining = maxRows - offset
		}

		rows, err := c.GetRows(dataset, config, split, offset, remaining)
		if err != nil {
			return nil, err
		}

		if len(rows.Rows) == 0 {
			break
		}

		for _, wrapper := range rows.Rows {
			text, ok := rowString(wrapper.Row, textColumn)
			if !ok || text == "" {
				continue
			}
			document := Document{Text: text}
			if labelColumn != "" {
				document.Label, _ = rowString(wrapper.Row, labelColumn)
			}
			documents = append(documents, document)
		}

		offset += len(rows.Rows)

		if len(rows.Rows) < remaining {
			break
		}
	}

	return documents, nil
}

// rowString extracts a row value as a string. Class columns in many datasets
// hold numeric class indices, so numbers are rendered rather than dropped.
func rowString(row map[string]interface{}, column string) (string, bool) {
	value, ok := row[column]
	if !ok {
		return "", false
	}
	switch typed := value.(type) {
	case string:
		return typed, true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}
