// internal/handlers/effects.go
package handlers

// Prompt is a confirm dialog the view raised and the answer it was given.
type Prompt struct {
	Message string `json:"message"`
	Answer  bool   `json:"answer"`
}

// Effects collects what a view would have shown or done in the browser: alerts,
// confirm prompts and the page to navigate to. The caller supplies every
// confirm answer up front.
type Effects struct {
	Alerts   []string `json:"alerts,omitempty"`
	Prompts  []Prompt `json:"prompts,omitempty"`
	Redirect string   `json:"redirect,omitempty"`

	answer bool
}

func newEffects(confirm bool) *Effects {
	return &Effects{answer: confirm}
}

func (e *Effects) Alert(message string) {
	e.Alerts = append(e.Alerts, message)
}

func (e *Effects) Confirm(message string) bool {
	e.Prompts = append(e.Prompts, Prompt{Message: message, Answer: e.answer})
	return e.answer
}

func (e *Effects) Navigate(target string) {
	e.Redirect = target
}

// body is nil when nothing happened, keeping "effects" out of the response.
func (e *Effects) body() interface{} {
	if len(e.Alerts) == 0 && len(e.Prompts) == 0 && e.Redirect == "" {
		return nil
	}
	return e
}
