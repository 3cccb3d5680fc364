package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		KindValidation,
		"INVALID_REQUEST",
		"Invalid request parameters",
	)

	ErrValidation = New(
		KindValidation,
		"VALIDATION_ERROR",
		"Validation failed",
	)

	ErrInvalidObjectID = New(
		KindValidation,
		"INVALID_OBJECT_ID",
		"Invalid object ID",
	)

	ErrTooManyPhones = New(
		KindValidation,
		"TOO_MANY_PHONES",
		"At most 5 phones are allowed",
	)

	ErrNoPublishedTranslation = New(
		KindValidation,
		"NO_PUBLISHED_TRANSLATION",
		"At least one translation must be published",
	)

	ErrRelatedRecordNotFound = New(
		KindValidation,
		"RELATED_RECORD_NOT_FOUND",
		"Referenced record does not exist",
	)

	ErrConstraintViolation = New(
		KindValidation,
		"CONSTRAINT_VIOLATION",
		"Data violates a database constraint",
	)

	ErrObjectNotFound = New(
		KindNotFound,
		"OBJECT_NOT_FOUND",
		"Object not found",
	)

	ErrRecordNotFound = New(
		KindNotFound,
		"RECORD_NOT_FOUND",
		"Record not found",
	)

	ErrRouteNotFound = New(
		KindNotFound,
		"ROUTE_NOT_FOUND",
		"Route not found",
	)

	ErrAlreadyExists = New(
		KindConflict,
		"ALREADY_EXISTS",
		"Record with the same data already exists",
	)

	ErrMissingToken = New(
		KindUnauthorized,
		"MISSING_TOKEN",
		"Authorization token is not provided",
	)

	ErrInvalidToken = New(
		KindUnauthorized,
		"INVALID_TOKEN",
		"Token is invalid or expired",
	)

	ErrInvalidCredentials = New(
		KindUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
	)

	ErrAccountDeactivated = New(
		KindUnauthorized,
		"ACCOUNT_DEACTIVATED",
		"Account is deactivated",
	)

	ErrForbidden = New(
		KindForbidden,
		"FORBIDDEN",
		"Insufficient permissions",
	)

	ErrTooManyRequests = &AppError{
		Kind:       KindValidation,
		Code:       "TOO_MANY_REQUESTS",
		Message:    "Too many requests, try again later",
		StatusCode: http.StatusTooManyRequests,
	}

	ErrDatabaseError = New(
		KindInternal,
		"DATABASE_ERROR",
		"Database operation failed",
	)

	ErrCacheError = New(
		KindInternal,
		"CACHE_ERROR",
		"Cache operation failed",
	)

	ErrGeocodingFailed = New(
		KindInternal,
		"GEOCODING_FAILED",
		"Geocoding request failed",
	)

	ErrInternalServer = New(
		KindInternal,
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
	)
)
