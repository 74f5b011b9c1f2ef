package adapters

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/lestrrat-go/libxml2"
	"github.com/lestrrat-go/libxml2/parser"
	"github.com/lestrrat-go/libxml2/xsd"
	"github.com/rs/zerolog/log"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/shared"
)

// DefaultSchemaLocation is the published descriptor schema.
const DefaultSchemaLocation = "https://www.linutronix.de/projects/Elbe/dbsfed.xsd"

const schemaFetchTimeout = 30 * time.Second

// XSDSchemaEngineAdapter validates descriptors with libxml2. The schema is
// loaded from Location, a file path or an http(s) URL, on first use.
type XSDSchemaEngineAdapter struct {
	Location string

	once    sync.Once
	schema  *xsd.Schema
	loadErr error
}

func NewXSDSchemaEngineAdapter(location string) *XSDSchemaEngineAdapter {
	if strings.TrimSpace(location) == "" {
		location = DefaultSchemaLocation
	}
	return &XSDSchemaEngineAdapter{Location: location}
}

func (a *XSDSchemaEngineAdapter) Validate(ctx context.Context, document []byte) ([]string, error) {
	schema, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := libxml2.Parse(document, parser.XMLParseHuge)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(err.Error()).
			WithCause(err)
	}
	defer doc.Free()

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var errLog interface{ Errors() []error }
	if !errors.As(err, &errLog) {
		return []string{err.Error()}, nil
	}
	messages := make([]string, 0, len(errLog.Errors()))
	for _, verr := range errLog.Errors() {
		messages = append(messages, strings.TrimSpace(verr.Error()))
	}
	return messages, nil
}

// Close releases the compiled schema.
func (a *XSDSchemaEngineAdapter) Close() {
	if a.schema != nil {
		a.schema.Free()
		a.schema = nil
	}
}

func (a *XSDSchemaEngineAdapter) load(ctx context.Context) (*xsd.Schema, error) {
	a.once.Do(func() {
		data, err := readSchema(ctx, a.Location)
		if err != nil {
			a.loadErr = err
			return
		}
		schema, err := xsd.Parse(data)
		if err != nil {
			a.loadErr = errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to compile schema " + a.Location).
				WithCause(err)
			return
		}
		a.schema = schema
		log.Ctx(ctx).Debug().Str("schema", a.Location).Msg("schema loaded")
	})
	return a.schema, a.loadErr
}

func readSchema(ctx context.Context, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("failed to read schema " + location).
				WithCause(err)
		}
		return data, nil
	}
	client := &http.Client{Timeout: schemaFetchTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create schema request").
			WithCause(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch schema " + location).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch schema " + location).
			WithCause(shared.HTTPStatusError(resp.StatusCode, location))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read schema " + location).
			WithCause(err)
	}
	return data, nil
}

var _ ports.SchemaEnginePort = (*XSDSchemaEngineAdapter)(nil)
