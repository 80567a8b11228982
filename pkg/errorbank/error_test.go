package errorbank

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad").StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound("missing").StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict("dup").StatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, Unprocessable("nope").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal("boom").StatusCode())
}

func TestGRPCCodes(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, BadRequest("bad").GRPCCode())
	assert.Equal(t, codes.NotFound, NotFound("missing").GRPCCode())
	assert.Equal(t, codes.Internal, Internal("boom").GRPCCode())
}

func TestWithCauseUnwraps(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Internal("storage fault", WithCause(cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage fault: disk on fire", err.Error())
}

func TestWithDetail(t *testing.T) {
	err := BadRequest("invalid field", WithDetail("field", "cantidad"))

	assert.Equal(t, map[string]any{"field": "cantidad"}, err.Details())
}

func TestFrom(t *testing.T) {
	appErr := NotFound("missing")
	assert.Equal(t, appErr, From(appErr))
	assert.Equal(t, appErr, From(fmt.Errorf("wrapped: %w", appErr)))

	plain := From(errors.New("unexpected"))
	assert.Equal(t, KindInternal, plain.Kind())

	assert.Nil(t, From(nil))
}
