package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// NewDatabaseError classifies a gorm error from `operation` on `entity` into
// an ApiErr with the right status code. Record-not-found becomes 404,
// duplicate keys 409, everything else a 500 with the cause preserved.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("failed to %s %s", operation, entity)

	if cause != nil {
		switch {
		case errors.Is(cause, gorm.ErrRecordNotFound):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				err:        ErrNotFound,
				Details:    fmt.Sprintf("%s not found", entity),
				Cause:      cause,
			}
		case errors.Is(cause, gorm.ErrDuplicatedKey),
			strings.Contains(cause.Error(), "duplicate key"),
			strings.Contains(cause.Error(), "UNIQUE constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        ErrConflict,
				Details:    fmt.Sprintf("%s already exists", entity),
				Cause:      cause,
			}
		case errors.Is(cause, gorm.ErrForeignKeyViolated),
			strings.Contains(cause.Error(), "foreign key constraint"):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				err:        ErrBadRequest,
				Details:    fmt.Sprintf("invalid reference in %s", entity),
				Cause:      cause,
			}
		case strings.Contains(cause.Error(), "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "unable to reach database",
				Cause:      cause,
			}
		}
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}
