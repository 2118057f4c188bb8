package extract

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// WhenResolver resolves natural-language dates embedded in free text.
// Relative expressions ("tomorrow 5pm", "next friday") resolve forward from
// the supplied base time.
type WhenResolver struct {
	parser *when.Parser
}

func NewWhenResolver() *WhenResolver {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &WhenResolver{parser: w}
}

func (r *WhenResolver) Resolve(text string, base time.Time) (time.Time, bool) {
	res, err := r.parser.Parse(text, base)
	if err != nil || res == nil {
		return time.Time{}, false
	}
	return res.Time, true
}
