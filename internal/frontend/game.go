package frontend

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// CardsPerColumn is the number of cards stacked in each column of the grid.
const CardsPerColumn = 4

// Game is the game screen: it renders the board received from the server and forwards clicks.
type Game struct {
	app.Compo
	GameID   string
	Snapshot *game.Snapshot
	Error    string

	onUpdate func()
}

func (g *Game) OnAppUpdate(ctx app.Context) {
	klog.Infof("Game component: App update available, not reloading not to interrupt the game...")
}

func (g *Game) OnMount(ctx app.Context) {
	klog.V(1).Infof("Game component: OnMount called")
	g.Snapshot = State.Snapshot
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {
			g.Snapshot = State.Snapshot
			g.Error = State.Error
		})
	}
	State.Listeners["game"] = g.onUpdate
}

func (g *Game) OnDismount() {
	klog.V(1).Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
	if State.Conn != nil {
		State.Conn.CloseNow()
		State.Conn = nil
	}
}

func (g *Game) OnNav(ctx app.Context) {
	path := app.Window().URL().Path
	g.GameID = GameIDFromPath(path)
	klog.Infof("Game component: Navigated to %s, game %q", path, g.GameID)
	if g.GameID == "" {
		g.Error = "No Game ID provided"
		return
	}

	if State.Conn == nil || State.GameID != g.GameID {
		if err := State.ConnectWS(g.GameID); err != nil {
			g.Error = fmt.Sprintf("Failed to connect to game: %v", err)
			klog.Errorf("Game component: Error connecting: %v", err)
		}
	}
}

// GameIDFromPath extracts the game ID from a "/game/<id>" path.
func GameIDFromPath(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "game" {
		return ""
	}
	id, err := url.PathUnescape(parts[1])
	if err != nil {
		return ""
	}
	return id
}

func (g *Game) onCardClick(position int) app.EventHandler {
	return func(ctx app.Context, e app.Event) {
		State.SendClick(position)
	}
}

func (g *Game) onPlayAgain(ctx app.Context, e app.Event) {
	State.SendRestart()
}

// CardImage returns the image shown for a card: the eye for hidden cards, its symbol otherwise.
func CardImage(card game.CardView) string {
	if card.State == game.Hidden || card.FaceID == nil {
		return "/web/images/eye.png"
	}
	return fmt.Sprintf("/web/images/symbol_%02d.png", *card.FaceID)
}

func (g *Game) renderCard(card game.CardView) app.UI {
	alt := "hidden card"
	if card.State != game.Hidden {
		alt = "card found"
	}
	return app.Button().
		Class("memory-card", "memory-card-"+card.State.String()).
		Disabled(card.State == game.Matched).
		OnClick(g.onCardClick(card.Position)).
		Body(
			app.Img().Src(CardImage(card)).Alt(alt),
		)
}

// renderGrid lays the cards out in columns of CardsPerColumn, position order going down each column.
func (g *Game) renderGrid(cards []game.CardView) app.UI {
	var columns []app.UI
	for start := 0; start < len(cards); start += CardsPerColumn {
		end := min(start+CardsPerColumn, len(cards))
		var column []app.UI
		for _, card := range cards[start:end] {
			column = append(column, g.renderCard(card))
		}
		columns = append(columns, app.Div().Class("memory-column").Body(column...))
	}
	return app.Div().Class("memory-grid").Body(columns...)
}

func (g *Game) Render() app.UI {
	if g.Error != "" {
		return app.Main().Class("container").Body(
			&TopBar{},
			app.Article().Body(
				app.H2().Text("Game Error"),
				app.P().Style("color", "red").Text(g.Error),
				app.A().Href("/").Text("Return to Home"),
			),
		)
	}

	var content app.UI
	if g.Snapshot == nil {
		content = app.Div().Aria("busy", "true").Text("Connecting to game...")
	} else {
		var footer app.UI = app.Text("")
		if g.Snapshot.Complete {
			footer = app.Div().Style("text-align", "center").Body(
				app.H3().Text("You found all pairs!"),
				app.Button().OnClick(g.onPlayAgain).Text("Play again"),
			)
		}
		content = app.Div().Body(
			g.renderGrid(g.Snapshot.Cards),
			footer,
		)
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		content,
	)
}
