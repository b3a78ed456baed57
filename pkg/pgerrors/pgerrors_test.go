package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      error
		retryable bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, ErrConcurrentUpdate, true},
		{"deadlock", &pq.Error{Code: "40P01"}, ErrConcurrentUpdate, true},
		{"lock timeout", &pq.Error{Code: "55P03"}, ErrLockTimeout, false},
		{"check violation", &pq.Error{Code: "23514"}, ErrConstraintViolation, false},
		{"wrapped", fmt.Errorf("exec: %w", &pq.Error{Code: "40001"}), ErrConcurrentUpdate, true},
		{"syntax error", &pq.Error{Code: "42601"}, nil, false},
		{"not a pq error", errors.New("boom"), nil, false},
		{"nil", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}
