package hypertable

//go:generate mockgen --source schema/schema.go --destination mocks/schema.go -package mocks
