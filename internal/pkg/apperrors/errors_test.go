package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForbiddenErrorMessage(t *testing.T) {
	err := &ForbiddenError{Role: "finance", Partition: "marketing"}
	assert.Equal(t, "Not authorized: Finance users cannot access Marketing data.", err.Error())
}

func TestPartitionNotFoundErrorMessage(t *testing.T) {
	err := &PartitionNotFoundError{Partition: "hr"}
	assert.Equal(t, "Knowledge base not found for department: Hr.", err.Error())
}

func TestInternalErrorIsOpaque(t *testing.T) {
	cause := errors.New("pgvector: connection refused to 10.0.0.12:5432")
	err := Internal("retrieve chunks", cause)

	// Nothing about the cause may surface in the message.
	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "retrieve chunks", err.Op)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"finance", "Finance"},
		{"hr", "Hr"},
		{"", ""},
		{"Engineering", "Engineering"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Title(tt.in))
	}
}
