package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/config"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// LoaderAdapter loads Truffle artifacts from disk or over HTTP
type LoaderAdapter struct {
	projectRoot string
	baseURL     string
	httpClient  *http.Client
	now         func() time.Time
}

// NewLoaderAdapter creates a new artifact loader
func NewLoaderAdapter(cfg *config.RuntimeConfig) *LoaderAdapter {
	baseURL := ""
	if cfg.Project != nil {
		baseURL = cfg.Project.Artifacts.BaseURL
	}
	return &LoaderAdapter{
		projectRoot: cfg.ProjectRoot,
		baseURL:     baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
}

// Load fetches and parses the artifact at location. Every failure is an ArtifactLoadError.
func (l *LoaderAdapter) Load(ctx context.Context, location string) (*models.Artifact, error) {
	source, remote := l.resolve(location)

	var (
		data []byte
		err  error
	)
	if remote {
		source, err = l.cacheBusted(source)
		if err == nil {
			data, err = l.fetch(ctx, source)
		}
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, &domain.ArtifactLoadError{Location: source, Err: err}
	}

	artifact, err := Parse(data)
	if err != nil {
		return nil, &domain.ArtifactLoadError{Location: source, Err: err}
	}
	artifact.Source = source
	artifact.LoadedAt = l.now()

	return artifact, nil
}

// resolve turns a configured location into a file path or URL
func (l *LoaderAdapter) resolve(location string) (string, bool) {
	if isRemote(location) {
		return location, true
	}
	if l.baseURL != "" && !filepath.IsAbs(location) {
		return strings.TrimRight(l.baseURL, "/") + "/" + strings.TrimPrefix(location, "./"), true
	}
	if filepath.IsAbs(location) {
		return location, false
	}
	return filepath.Join(l.projectRoot, location), false
}

// cacheBusted adds the t=<unix millis> query parameter
func (l *LoaderAdapter) cacheBusted(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(l.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (l *LoaderAdapter) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Parse decodes a Truffle artifact document
func Parse(data []byte) (*models.Artifact, error) {
	var file models.ArtifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed artifact JSON: %w", err)
	}

	name := file.ContractName
	if name == "" {
		name = file.NewName
	}
	binary := file.UnlinkedBinary
	if binary == "" {
		binary = file.Bytecode
	}

	trimmed := bytes.TrimSpace(file.ABI)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errors.New("artifact has no abi")
	}
	if strings.TrimPrefix(binary, "0x") == "" {
		return nil, errors.New("artifact has no bytecode")
	}
	if strings.Contains(binary, "__") {
		return nil, errors.New("artifact bytecode has unlinked library references")
	}

	parsed, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid abi: %w", err)
	}

	return &models.Artifact{
		ContractName:   name,
		RawABI:         file.ABI,
		ABI:            parsed,
		UnlinkedBinary: binary,
	}, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Ensure LoaderAdapter implements ArtifactLoader
var _ usecase.ArtifactLoader = (*LoaderAdapter)(nil)
