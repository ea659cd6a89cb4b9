package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/remtori/image-resize/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// RemoteSource fetches files from an upstream CDN over HTTP. The client is
// shared across requests and pools its connections.
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

func NewRemoteSource(baseURL string, connectTimeout time.Duration) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
	}
}

// Fetch downloads the file at path joined onto the base URL with exactly one
// separating slash. Any non-2xx status counts as a failed fetch.
func (s *RemoteSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := s.baseURL + "/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Warn().Err(err).Str("url", url).Send()
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Warn().Err(err).Str("url", url).Send()
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("unexpected status code on fetch: %d", res.StatusCode)
		log.Warn().Err(err).Str("url", url).Send()
		return nil, err
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response %w", err)
		log.Warn().Err(err).Str("url", url).Send()
		return nil, err
	}

	return buf, nil
}

func (s *RemoteSource) Type() domain.SourceType {
	return domain.SourceRemote
}
