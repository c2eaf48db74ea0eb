package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/urbanexpress/storefront/pkg/errors"
	"github.com/urbanexpress/storefront/pkg/logger"
	"github.com/urbanexpress/storefront/pkg/types"
)

// WriteSuccess prints data inside the success envelope.
func WriteSuccess(w io.Writer, data any) error {
	return writeJSON(w, types.SuccessEnvelope{Data: data})
}

// WriteError prints err inside the error envelope, logs it with its dump
// fields and returns the process exit code for its error code.
func WriteError(ctx context.Context, logg *logger.Logger, w io.Writer, err error) int {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeStateConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.ErrorEnvelope{
		Error: types.CommandError{
			Code:      string(typed.Code()),
			Message:   msg,
			Retryable: meta.Retryable,
		},
	}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Error.Details = details
		}
	}

	if logg != nil {
		logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), "command.error", err)
	}

	if werr := writeJSON(w, payload); werr != nil && logg != nil {
		logg.Error(ctx, "failed to encode error", werr)
	}
	return meta.ExitCode
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
