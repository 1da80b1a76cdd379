package fetch

import (
	"bytes"
	"context"
	"io"

	"github.com/dydra/dydra/pkg/errors"
	"github.com/dydra/dydra/pkg/rpc/status"
	"github.com/geoknoesis/rdf-go/rdf"
)

// Statements is a list of RDF statements
type Statements []rdf.Statement

// Decode an N-Triples body
func Decode(ctx context.Context, body []byte) (Statements, error) {
	reader, err := rdf.NewReader(bytes.NewReader(body), rdf.FormatNTriples, rdf.OptContext(ctx), rdf.OptSafeLimits())
	if err != nil {
		return nil, status.ErrUnexpectedResult.Wrap(err)
	}
	defer func() {
		_ = reader.Close()
	}()

	var statements Statements
	for {
		statement, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return statements, nil
		}
		if err != nil {
			return nil, status.ErrUnexpectedResult.Wrapf("invalid N-Triples: %w", err)
		}
		statements = append(statements, statement)
	}
}

// Len is the number of statements
func (s Statements) Len() int {
	return len(s)
}

// WriteNTriples serializes statements as N-Triples
func (s Statements) WriteNTriples(w io.Writer) error {
	writer, err := rdf.NewWriter(w, rdf.FormatNTriples)
	if err != nil {
		return err
	}
	for _, statement := range s {
		if err = writer.Write(statement); err != nil {
			_ = writer.Close()
			return err
		}
	}
	if err = writer.Flush(); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}
