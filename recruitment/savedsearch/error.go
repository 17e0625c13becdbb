package savedsearch

import (
	"net/http"

	"github.com/Abraxas-365/hirematch/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SAVED_SEARCH")

// Error codes
var (
	CodeSavedSearchNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Saved search not found")
	CodeNameTaken               = ErrRegistry.Register("NAME_TAKEN", errx.TypeConflict, http.StatusConflict, "A saved search with this name already exists")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeOnlyRecruiters          = ErrRegistry.Register("ONLY_RECRUITERS", errx.TypeAuthorization, http.StatusForbidden, "Only recruiters can manage saved searches")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeDeliveryFailed          = ErrRegistry.Register("DELIVERY_FAILED", errx.TypeExternal, http.StatusBadGateway, "Notification delivery failed")
)

// Helper functions
func ErrSavedSearchNotFound() *errx.Error {
	return ErrRegistry.New(CodeSavedSearchNotFound)
}

func ErrNameTaken() *errx.Error {
	return ErrRegistry.New(CodeNameTaken)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrOnlyRecruiters() *errx.Error {
	return ErrRegistry.New(CodeOnlyRecruiters)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrDeliveryFailed() *errx.Error {
	return ErrRegistry.New(CodeDeliveryFailed)
}
