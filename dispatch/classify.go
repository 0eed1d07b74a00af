package dispatch

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/kbukum/llmcouncil/errors"
	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/llm"
)

// classify translates a provider call error into an AppError plus the
// upstream HTTP status, if there was one. HTTP failures keep the raw body
// text as their message.
func classify(provider string, err error) (*apperrors.AppError, int) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr, 0
	}

	var herr *httpclient.Error
	if errors.As(err, &herr) {
		if herr.StatusCode > 0 {
			return apperrors.FromStatus(herr.StatusCode, herr.Message).
				WithCause(err).
				WithDetail("provider", provider), herr.StatusCode
		}
		if herr.Code == httpclient.ErrCodeCanceled {
			return apperrors.New(apperrors.ErrCodeTimeout, herr.Message, http.StatusRequestTimeout).WithCause(err), 0
		}
	}
	if httpclient.IsConnection(err) {
		return apperrors.New(apperrors.ErrCodeConnectionFailed, herr.Message, http.StatusBadGateway).
			WithCause(err).
			WithDetail("provider", provider), 0
	}

	switch {
	case errors.Is(err, llm.ErrUnexpectedShape):
		ae := apperrors.UnexpectedResponse(provider, err)
		ae.Message = err.Error()
		return ae, 0
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperrors.New(apperrors.ErrCodeTimeout, err.Error(), http.StatusRequestTimeout).WithCause(err), 0
	}
	return apperrors.Internal(err), 0
}
