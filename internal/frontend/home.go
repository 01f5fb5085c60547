package frontend

import (
	"github.com/google/uuid"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Home is the start screen.
type Home struct {
	app.Compo
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, reloading...")
	ctx.Reload()
}

// onStart enters the game screen with a new game ID, so each visit gets a fresh deck.
func (h *Home) onStart(ctx app.Context, e app.Event) {
	e.PreventDefault()
	ctx.Navigate("/game/" + uuid.NewString())
}

func (h *Home) Render() app.UI {
	return app.Main().Class("container").Body(
		&TopBar{},
		app.Article().Style("text-align", "center").Body(
			app.H1().Style("margin-bottom", "3rem").Text("Memory Game!"),
			app.Button().
				Style("font-size", "1.5rem").
				OnClick(h.onStart).
				Text("Start"),
		),
	)
}
