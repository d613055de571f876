package graph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestClassifySyntaxError(t *testing.T) {
	raw := &neo4j.Neo4jError{
		Code: "Neo.ClientError.Statement.SyntaxError",
		Msg:  "Invalid input 'MATCHX'",
	}
	err := classify(raw)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), "Invalid input 'MATCHX'")
}

func TestClassifyWrappedSyntaxError(t *testing.T) {
	raw := fmt.Errorf("run query: %w", &neo4j.Neo4jError{
		Code: "Neo.ClientError.Statement.SyntaxError",
		Msg:  "unexpected token",
	})
	assert.ErrorIs(t, classify(raw), ErrSyntax)
}

func TestClassifyOtherErrorsPassThrough(t *testing.T) {
	for _, err := range []error{
		errors.New("connection refused"),
		&neo4j.Neo4jError{Code: "Neo.ClientError.Security.Unauthorized", Msg: "bad credentials"},
	} {
		classified := classify(err)
		assert.NotErrorIs(t, classified, ErrSyntax)
		assert.Equal(t, err, classified)
	}
}

func TestSchemaDescriptionNamesGraphElements(t *testing.T) {
	assert.Contains(t, SchemaDescription, "Person")
	assert.Contains(t, SchemaDescription, "Email")
	assert.Contains(t, SchemaDescription, "SENT")
	assert.Contains(t, SchemaDescription, "RECEIVED")
}
