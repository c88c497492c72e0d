package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Presenter shows the screen-side effects. Data effects are applied by the
// form session and skipped here.
type Presenter interface {
	Present(effects []Effect)
}

// TextPresenter prints effects as plain text. It is safe for concurrent
// use; output of one Present call is never interleaved with another.
type TextPresenter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTextPresenter(w io.Writer) *TextPresenter {
	return &TextPresenter{w: w}
}

func (p *TextPresenter) Present(effects []Effect) {
	var b strings.Builder
	for _, e := range effects {
		writeEffect(&b, e)
	}
	if b.Len() == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, b.String())
}

func writeEffect(b *strings.Builder, e Effect) {
	switch x := e.(type) {
	case Dialog:
		if x.Title != "" {
			fmt.Fprintf(b, "== %s ==", x.Title)
			if x.Indicator != "" {
				fmt.Fprintf(b, " (%s)", x.Indicator)
			}
			b.WriteString("\n")
		}
		b.WriteString(x.Body)
		b.WriteString("\n")
	case Alert:
		fmt.Fprintf(b, "* %s\n", x.Message)
	case OpenURL:
		fmt.Fprintf(b, "Open in your browser: %s\n", x.URL)
	case SetDescription:
		fmt.Fprintf(b, "hint [%s]: %s\n", x.Field, x.Text)
	case ToggleRequired:
		state := "optional"
		if x.Required {
			state = "required"
		}
		fmt.Fprintf(b, "now %s: %s\n", state, strings.Join(x.Fields, ", "))
	}
}
