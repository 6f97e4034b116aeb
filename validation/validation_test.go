package validation

import (
	"testing"

	"github.com/ayalpani/remotekit/errors"
)

type tuning struct {
	Chunk  int     `validate:"min=1"`
	Factor float64 `validate:"gte=1"`
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(tuning{Chunk: 10, Factor: 2}); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	err := Validate(tuning{Chunk: 0, Factor: 0.5})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if errors.CodeOf(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", errors.CodeOf(err))
	}
}
