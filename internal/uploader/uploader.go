// Package uploader talks to the platform's hdfs-uploader application to
// place local files on HDFS before a deployment references them.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// DefaultCategory is used when the caller does not classify the file.
const DefaultCategory = "other"

// Client uploads files through a running hdfs-uploader instance.
type Client struct {
	httpClient *internalhttp.Client
}

// New creates a client for the uploader exposed on the platform's base
// domain, e.g. http://hdfs-uploader.example.com for api.example.com.
func New(apiURL string, tokens internalhttp.TokenSource, opts ...internalhttp.Option) *Client {
	baseURL := "http://hdfs-uploader." + tap.BaseDomain(apiURL)

	return &Client{httpClient: internalhttp.NewClient(baseURL, tokens, opts...)}
}

// NewWithHTTPClient creates a client on an existing HTTP client. Useful
// for tests and for uploaders exposed on non-standard addresses.
func NewWithHTTPClient(httpClient *internalhttp.Client) *Client {
	return &Client{httpClient: httpClient}
}

// uploadResponse is the uploader's success body.
type uploadResponse struct {
	ObjectStoreID   string `json:"objectStoreId"`
	IDInObjectStore string `json:"idInObjectStore"`
}

// Upload sends a local file to HDFS under the given organization and
// returns its object-store path "<objectStoreId>/<idInObjectStore>".
func (c *Client) Upload(ctx context.Context, orgGUID, localPath, title, category string) (string, error) {
	if category == "" {
		category = DefaultCategory
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("reading upload file: %w", err)
	}

	form, contentType, err := encodeUploadForm(orgGUID, filepath.Base(localPath), title, category, content)
	if err != nil {
		return "", err
	}

	path := "/rest/upload/" + orgGUID

	resp, err := c.httpClient.PostRaw(ctx, path, form, contentType)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", localPath, err)
	}

	var result uploadResponse
	if err := decodeUploadResponse(path, resp.Body, &result); err != nil {
		return "", err
	}

	return result.ObjectStoreID + "/" + result.IDInObjectStore, nil
}

func decodeUploadResponse(path string, body []byte, out *uploadResponse) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &tap.APIError{
			Path:        path,
			Description: "unexpected uploader response",
			Body:        body,
		}
	}

	if out.ObjectStoreID == "" || out.IDInObjectStore == "" {
		return &tap.APIError{
			Path:        path,
			Description: "uploader response missing object store location",
			Body:        body,
		}
	}

	return nil
}

func encodeUploadForm(orgGUID, filename, title, category string, content []byte) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"orgUUID":       orgGUID,
		"category":      category,
		"title":         title,
		"publicRequest": strconv.FormatBool(false),
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}

	if _, err := part.Write(content); err != nil {
		return nil, "", fmt.Errorf("writing file to form: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
