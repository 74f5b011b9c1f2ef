package adapters

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/shared"
	"xbuildenv/internal/types"
)

const defaultKeyFetchTimeout = 10 * time.Second

// HTTPKeyFetcherAdapter downloads mirror keys. Each request is tried once.
type HTTPKeyFetcherAdapter struct {
	Timeout time.Duration
}

func NewHTTPKeyFetcherAdapter() HTTPKeyFetcherAdapter {
	return HTTPKeyFetcherAdapter{Timeout: defaultKeyFetchTimeout}
}

func (a HTTPKeyFetcherAdapter) FetchKey(ctx context.Context, url string) (string, error) {
	url = types.ReplaceLocalMachine(url)
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = defaultKeyFetchTimeout
	}
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid key url " + url).
			WithCause(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch key " + url).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch key " + url).
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read key " + url).
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("url", url).Int("bytes", len(body)).Msg("mirror key fetched")
	return string(body), nil
}

var _ ports.KeyFetcherPort = HTTPKeyFetcherAdapter{}
