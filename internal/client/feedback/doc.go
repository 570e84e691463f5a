// Package feedback delivers short-lived notifications (toasts) to the user.
//
// A Channel keeps a bounded FIFO of toasts that expire after a fixed TTL and
// hands every new toast to a presenter as soon as it is raised. A Translator
// turns errors into error toasts.
package feedback
