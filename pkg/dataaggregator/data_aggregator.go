package dataaggregator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/viaplanner/pkg/dataaggregator/source"
)

var ErrNoMatchingSource = errors.New("failed to find a matching data source for type")

// Aggregator routes typed lookups to the first registered source that can answer them
type Aggregator struct {
	Sources []DataSource
}

func New() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks each source supporting T in registration order. A source answering
// source.UnsupportedSourceError passes the query on to the next one.
func Lookup[T any](ctx context.Context, a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range a.Sources {
		matches := false
		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}
		if !matches {
			continue
		}

		returnValue, err := dataSource.Lookup(ctx, query)
		if errors.Is(err, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, err
		}

		value, ok := returnValue.(T)
		if !ok {
			return empty, fmt.Errorf("data source %s returned %T for %s", dataSource.GetName(), returnValue, lookupType)
		}
		return value, err
	}

	return empty, fmt.Errorf("%w %s", ErrNoMatchingSource, lookupType)
}
