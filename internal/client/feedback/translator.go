package feedback

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jafa/internal/client/client"
	"github.com/dmitrijs2005/jafa/internal/logging"
)

// Translator maps errors to error toasts. Every reported error is logged.
type Translator struct {
	notifier Notifier
	logger   logging.Logger
}

func NewTranslator(n Notifier, logger logging.Logger) *Translator {
	return &Translator{notifier: n, logger: logger.With("module", "feedback")}
}

// Report shows err to the user.
//
// Backend errors read "[<type>]: <error>", or just the error text when the
// backend gave no type. Other errors show their message. Cancellations are
// only logged: the view that started the call is gone.
func (t *Translator) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	t.logger.Error(ctx, "operation failed", "error", err)

	if errors.Is(err, context.Canceled) {
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		t.notifier.Notify(apiErr.Error(), KindError)
		return
	}

	if msg := err.Error(); msg != "" {
		t.notifier.Notify(msg, KindError)
	}
}
