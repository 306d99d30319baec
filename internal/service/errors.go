package service

import (
	"errors"

	"github.com/isaktapper/klaralyze/internal/zendesk"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// mapUpstreamError translates zendesk client errors into the service error
// taxonomy: auth rejections surface as 401, everything else as an upstream
// failure. Errors already carrying a DomainError pass through.
func mapUpstreamError(err error) error {
	if err == nil {
		return nil
	}

	var authErr *zendesk.AuthError
	if errors.As(err, &authErr) {
		return apperrors.NewUnauthorized("invalid zendesk credentials")
	}

	var upstreamErr *zendesk.UpstreamError
	if errors.As(err, &upstreamErr) {
		return apperrors.NewUpstreamFailure(upstreamErr.StatusCode, err)
	}

	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	return apperrors.NewUpstreamFailure(0, err)
}
