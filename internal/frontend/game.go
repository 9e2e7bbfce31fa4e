package frontend

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

const GlowDuration = 500 * time.Millisecond

// Game draws the two cards and forwards the clicks to the server.
type Game struct {
	app.Compo
	Error string

	// Feedback of the last click.
	glowHit   *game.Hit
	glowColor string

	onUpdate func()
}

func (g *Game) OnMount(ctx app.Context) {
	klog.Infof("Game component: OnMount called")
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {
			g.Error = State.Error
			if r := State.LastResult; r != nil && r.Hit != nil {
				g.flash(ctx, r)
				State.LastResult = nil
			}
		})
	}
	State.Listeners["game"] = g.onUpdate

	app.Window().Set("dobbleClick", app.FuncOf(func(this app.Value, args []app.Value) any {
		if len(args) >= 2 {
			x, y := args[0].Float(), args[1].Float()
			ctx.Dispatch(func(ctx app.Context) {
				g.onCanvasClick(ctx, x, y)
			})
		}
		return nil
	}))
}

func (g *Game) OnDismount() {
	klog.Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
	app.Window().Set("dobbleClick", app.Undefined())
}

func (g *Game) OnNav(ctx app.Context) {
	klog.Infof("Game component: OnNav called")
	if err := State.ConnectWS(); err != nil {
		g.Error = fmt.Sprintf("Failed to connect to the server: %v", err)
		return
	}
	State.SendStart()
}

func (g *Game) onCanvasClick(ctx app.Context, x, y float64) {
	if State.GameOver != nil {
		return
	}
	State.SendClick(x, y)
}

func (g *Game) onRestart(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.SendRestart()
}

// flash highlights the clicked symbol: gold for a match, red otherwise.
func (g *Game) flash(ctx app.Context, r *game.ResultMessage) {
	switch r.Outcome {
	case "match":
		g.glowColor = "gold"
	case "mismatch":
		g.glowColor = "red"
	default:
		return
	}
	hit := *r.Hit
	g.glowHit = &hit
	time.AfterFunc(GlowDuration, func() {
		ctx.Dispatch(func(ctx app.Context) {
			if g.glowHit != nil && *g.glowHit == hit {
				g.glowHit = nil
			}
		})
	})
}

// renderCanvas builds the SVG with both cards. Clicks are reported in canvas
// coordinates, whatever size the SVG is displayed at.
func (g *Game) renderCanvas(round *game.RoundMessage) app.UI {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %[1]g %[2]g" class="canvas-svg" `+
		`style="width: 100%%; max-width: %[1]gpx; cursor: pointer;" `+
		`onclick="var r = this.getBoundingClientRect(); dobbleClick((event.clientX - r.left) * %[1]g / r.width, (event.clientY - r.top) * %[2]g / r.height)">`,
		round.Width, round.Height)

	for _, card := range round.Cards {
		fmt.Fprintf(&sb, `<circle cx="%g" cy="%g" r="%g" fill="white" stroke="black" stroke-width="2" />`,
			card.Center.X, card.Center.Y, card.Radius)
		for i, p := range card.Placements {
			style := ""
			if g.glowHit != nil && g.glowHit.Side == card.Side && g.glowHit.Index == i {
				style = fmt.Sprintf(` style="filter: drop-shadow(0 0 6px %s);"`, g.glowColor)
			}
			fmt.Fprintf(&sb, `<text x="%g" y="%g" font-size="%g" font-family="Arial" font-weight="bold" `+
				`text-anchor="middle" dominant-baseline="central"%s>%s</text>`,
				p.Position.X, p.Position.Y, p.Symbol.Size, style, html.EscapeString(p.Symbol.ID))
		}
	}
	sb.WriteString(`</svg>`)
	return app.Raw(sb.String())
}

func (g *Game) renderGameOver(over *game.GameOverMessage) app.UI {
	title := "Time is up!"
	if over.Reason == "mismatch" {
		title = "Wrong symbol!"
	}
	return app.Dialog().Open(true).Body(
		app.Article().Body(
			app.Header().Text(title),
			app.P().Text(fmt.Sprintf("The common symbol was %s. Final score: %d", over.Common, over.Score)),
			app.Footer().Body(
				app.Button().Text("Play again").OnClick(g.onRestart),
				app.A().Href("/").Text("Change settings"),
			),
		),
	)
}

func (g *Game) Render() app.UI {
	if g.Error != "" {
		return app.Main().Class("container").Body(
			&Scoreboard{},
			app.Article().Body(
				app.H2().Text("Game Error"),
				app.P().Style("color", "red").Text(g.Error),
				app.A().Href("#").OnClick(func(ctx app.Context, e app.Event) {
					State.Error = ""
					ctx.Navigate("/")
				}).Text("Return to Home"),
			),
		)
	}

	var content app.UI
	if State.Round == nil {
		content = app.Div().Aria("busy", "true").Text("Dealing cards...")
	} else {
		var overlay app.UI = app.Text("")
		if State.GameOver != nil {
			overlay = g.renderGameOver(State.GameOver)
		}
		content = app.Div().Class("card-container").Body(
			overlay,
			g.renderCanvas(State.Round),
		)
	}

	return app.Main().Class("container").Body(
		&Scoreboard{},
		content,
	)
}
