package query

type Metadata struct{}
