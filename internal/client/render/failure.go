package render

import (
	"strings"

	"github.com/tenacious-integration/deskctl/internal/client/models"
	"github.com/tenacious-integration/deskctl/internal/client/rpc"
)

// UnknownError stands in for a missing failure reason.
const UnknownError = "Unknown error"

// FailureText is prefix followed by the server's reason for err. Transport
// failures and failures without a reason read "Unknown error"; their
// detail belongs in the log.
func FailureText(prefix string, err error) string {
	reason := rpc.Reason(err)
	if reason == "" {
		reason = UnknownError
	}
	return prefix + reason
}

// Failure wraps FailureText in a dialog.
func Failure(prefix string, err error) Dialog {
	return Dialog{Body: FailureText(prefix, err), Indicator: models.ColorRed}
}

// Message is a plain informational dialog.
func Message(body string) Dialog {
	return Dialog{Body: body}
}

// Notices turns server messages into dialogs, one per call, in call order.
// Messages that came with an exception read as an error.
func Notices(items []rpc.Notice) []Effect {
	var out []Effect
	for _, n := range items {
		d := Dialog{Title: "Message", Body: strings.Join(n.Messages, "\n")}
		if n.Failed {
			d.Title = "Error"
			d.Indicator = models.ColorRed
		}
		out = append(out, d)
	}
	return out
}
