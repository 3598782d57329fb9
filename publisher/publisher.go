// Package publisher stores encoded artifacts on disk and optionally mirrors them to an upload endpoint.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"synthetic_data_generator/apperrors"
	"synthetic_data_generator/logger"
)

const defaultPrefix = "synthetic_"

// Config 输出目录与可选的上传地址。
type Config struct {
	Dir       string
	Prefix    string
	UploadURL string
}

// Artifact is one encoded file awaiting persistence.
type Artifact struct {
	Data   []byte
	Suffix string
}

// Receipt tells where an artifact ended up.
type Receipt struct {
	Path string
	URL  string
}

type uploadResp struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Publisher writes artifacts to uniquely named files.
type Publisher struct {
	cfg    Config
	client *http.Client
}

// New 校验并创建输出目录；client 为空时使用 60s 超时的默认客户端。
func New(cfg Config, client *http.Client) (*Publisher, error) {
	if cfg.Dir == "" {
		cfg.Dir = os.TempDir()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "Failed to prepare output directory")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Publisher{cfg: cfg, client: client}, nil
}

// Dir returns the resolved output directory.
func (p *Publisher) Dir() string { return p.cfg.Dir }

// Publish writes the artifact and, when configured, uploads it.
// Every call creates a new file; existing files are never overwritten.
func (p *Publisher) Publish(ctx context.Context, art Artifact) (Receipt, error) {
	if len(art.Data) == 0 {
		return Receipt{}, apperrors.New(apperrors.CodeEncodingFailed, "Refusing to publish an empty file")
	}

	f, err := os.CreateTemp(p.cfg.Dir, p.cfg.Prefix+"*"+art.Suffix)
	if err != nil {
		return Receipt{}, apperrors.Wrap(err, apperrors.CodeStorageFailed, "Failed to create output file")
	}
	path := f.Name()
	if _, err := f.Write(art.Data); err != nil {
		f.Close()
		os.Remove(path)
		return Receipt{}, apperrors.Wrap(err, apperrors.CodeStorageFailed, "Failed to write output file")
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Receipt{}, apperrors.Wrap(err, apperrors.CodeStorageFailed, "Failed to write output file")
	}
	logger.Debug(ctx, "artifact written", "path", path, "bytes", len(art.Data))

	receipt := Receipt{Path: path}
	if p.cfg.UploadURL == "" {
		return receipt, nil
	}
	url, err := uploadFile(ctx, p.client, p.cfg.UploadURL, path)
	if err != nil {
		logger.Warn(ctx, "artifact upload failed, keeping local copy", "path", path, "error", err.Error())
		return receipt, nil
	}
	logger.Info(ctx, "artifact uploaded", "path", path, "url", url)
	receipt.URL = url
	return receipt, nil
}

func uploadFile(ctx context.Context, client *http.Client, endpoint, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload failed: %s %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	var data uploadResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.URL == "" {
		return "", fmt.Errorf("upload failed: %s", data.Error)
	}
	return data.URL, nil
}
