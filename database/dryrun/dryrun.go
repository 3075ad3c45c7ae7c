// Package dryrun records the statements a migration would run instead of
// sending them to a database.
package dryrun

import (
	"context"
	"sync"

	"github.com/frain-dev/hypertable/schema"
)

var (
	_ schema.Executor     = &Recorder{}
	_ schema.TableBuilder = &Recorder{}
)

type Recorder struct {
	mu         sync.Mutex
	statements []string
}

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Execute(_ context.Context, statement string) ([]schema.Row, error) {
	r.record(statement)
	return nil, nil
}

// CreateTable records the DDL the postgres table builder would run.
func (r *Recorder) CreateTable(_ context.Context, relation string, args schema.Options, block schema.TableBlock) error {
	opts, err := schema.NewTableOptions(args)
	if err != nil {
		return err
	}

	r.record(schema.Define(block).ToSQL(relation, opts)...)
	return nil
}

// Statements returns the recorded statements in execution order.
func (r *Recorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.statements...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statements = nil
}

func (r *Recorder) record(statements ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statements = append(r.statements, statements...)
}
