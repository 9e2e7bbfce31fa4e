package frontend

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Scoreboard is the top bar: title, score and the countdown when there is one.
type Scoreboard struct {
	app.Compo
}

func (t *Scoreboard) onTitleClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *Scoreboard) Render() app.UI {
	var stats []app.UI
	if State.Round != nil {
		stats = append(stats, app.Li().Body(app.Strong().Text(fmt.Sprintf("Score: %d", State.Score))))
		if State.Round.TimeLeft > 0 {
			timeLeft := app.Span().Text(fmt.Sprintf("Time: %d", State.TimeLeft))
			if State.TimeLeft <= 3 {
				timeLeft = timeLeft.Style("color", "red")
			}
			stats = append(stats, app.Li().Body(timeLeft))
		}
	}

	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().
					Text("GoDobble").
					Style("cursor", "pointer").
					OnClick(t.onTitleClick),
			),
		),
		app.Ul().Body(stats...),
	)
}
