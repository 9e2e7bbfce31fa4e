package frontend

import (
	"strconv"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Home is the landing page: game settings and the Play button.
type Home struct {
	app.Compo
}

func (h *Home) OnNav(ctx app.Context) {
	klog.V(1).Infof("Home: OnNav called, Path=%s", app.Window().URL().Path)
}

func (h *Home) onCardSizeChange(ctx app.Context, e app.Event) {
	if n, err := strconv.Atoi(ctx.JSSrc().Get("value").String()); err == nil {
		State.Settings.CardSize = n
	}
}

func (h *Home) onAlphabetChange(ctx app.Context, e app.Event) {
	State.Settings.Alphabet = ctx.JSSrc().Get("value").String()
}

func (h *Home) onLayoutChange(ctx app.Context, e app.Event) {
	State.Settings.Layout = ctx.JSSrc().Get("value").String()
}

func (h *Home) onMismatchChange(ctx app.Context, e app.Event) {
	State.Settings.Mismatch = ctx.JSSrc().Get("value").String()
}

func (h *Home) onCountdownChange(ctx app.Context, e app.Event) {
	value := ctx.JSSrc().Get("value").String()
	n, err := strconv.Atoi(value)
	if err != nil && value != "" {
		return
	}
	if n <= 0 {
		n = -1 // Explicitly disabled.
	}
	State.Settings.Countdown = n
}

func (h *Home) onPlay(ctx app.Context, e app.Event) {
	e.PreventDefault()
	klog.Infof("Home: starting game with %+v", State.Settings)
	ctx.Navigate("/play")
}

func selectField(id, label string, current string, onChange app.EventHandler, options ...[2]string) app.UI {
	var opts []app.UI
	for _, o := range options {
		opts = append(opts, app.Option().Value(o[0]).Text(o[1]).Selected(o[0] == current))
	}
	return app.Label().For(id).Body(
		app.Text(label),
		app.Select().ID(id).OnChange(onChange).Body(opts...),
	)
}

func (h *Home) Render() app.UI {
	s := State.Settings
	cardSize := ""
	if s.CardSize > 0 {
		cardSize = strconv.Itoa(s.CardSize)
	}
	countdown := ""
	if s.Countdown > 0 {
		countdown = strconv.Itoa(s.Countdown)
	}

	return app.Main().Class("container").Body(
		&Scoreboard{},
		app.Article().Body(
			app.Header().Body(
				app.H2().Text("Find the common symbol"),
			),
			app.P().Text("Both cards share exactly one symbol. Click it as fast as you can to get a new pair."),
			app.Form().OnSubmit(h.onPlay).Body(
				app.Div().Class("grid").Body(
					app.Label().For("cardSize").Body(
						app.Text("Symbols per card"),
						app.Input().
							Type("number").
							ID("cardSize").
							Min(2).
							Max(13).
							Placeholder("8").
							Value(cardSize).
							OnInput(h.onCardSizeChange),
					),
					app.Label().For("alphabet").Body(
						app.Text("Symbols"),
						app.Input().
							Type("text").
							ID("alphabet").
							Placeholder("letters, digits:20 or your own characters").
							Value(s.Alphabet).
							OnInput(h.onAlphabetChange),
					),
				),
				app.Div().Class("grid").Body(
					selectField("layout", "Layout", s.Layout, h.onLayoutChange,
						[2]string{"", "Server default"}, [2]string{"scatter", "Scattered"}, [2]string{"ring", "Ring"}),
					selectField("mismatch", "Wrong click", s.Mismatch, h.onMismatchChange,
						[2]string{"", "Server default"}, [2]string{"ignore", "Keep playing"}, [2]string{"end", "Game over"}),
					app.Label().For("countdown").Body(
						app.Text("Seconds per round (empty: no timer)"),
						app.Input().
							Type("number").
							ID("countdown").
							Min(0).
							Value(countdown).
							OnInput(h.onCountdownChange),
					),
				),
				app.Button().Type("submit").Text("Play"),
			),
		),
	)
}
