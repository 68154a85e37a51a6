package dataaggregator

import (
	"context"
	"reflect"
)

type DataSource interface {
	GetName() string
	Supports() []reflect.Type
	Lookup(ctx context.Context, query any) (interface{}, error)
}
