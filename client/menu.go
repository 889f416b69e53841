package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"mitosis-arcade/game"
	"mitosis-arcade/internal/scores"
)

type menuAction int

const (
	actionQuit menuAction = iota
	actionPlay
)

// menuUI is the tview front end shown between games
type menuUI struct {
	app    *tview.Application
	pages  *tview.Pages
	status *tview.TextView
	scores *tview.TextView

	client *scores.Client
	cfg    game.Config
	action menuAction
}

// runMenu blocks until the player picks Play or Quit. cfg carries the
// tuning in and any edits made on the config screen out.
func runMenu(client *scores.Client, cfg game.Config) (menuAction, game.Config, error) {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.BorderColor = tcell.ColorGreen
	tview.Styles.TitleColor = tcell.ColorGreen

	ui := &menuUI{
		app:    tview.NewApplication(),
		client: client,
		cfg:    cfg,
		action: actionQuit,
	}
	ui.build()
	if err := ui.app.SetRoot(ui.pages, true).Run(); err != nil {
		return actionQuit, cfg, err
	}
	return ui.action, ui.cfg, nil
}

func (ui *menuUI) build() {
	ui.status = tview.NewTextView().SetDynamicColors(true)
	ui.status.SetText(" [black:green] arrows[-:-] move  [black:green]space[-:-] obstacle  [black:green]e[-:-] destroy  [black:green]esc[-:-] menu ")

	list := tview.NewList().ShowSecondaryText(false).
		AddItem("Play", "", 'p', func() {
			ui.action = actionPlay
			ui.app.Stop()
		}).
		AddItem("Config", "", 'c', ui.openConfig).
		AddItem("High scores", "", 'h', ui.openScores).
		AddItem("Quit", "", 'q', func() {
			ui.action = actionQuit
			ui.app.Stop()
		})
	list.SetBorder(true).SetTitle(" Mitosis Arcade ")

	menu := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(centered(list, 30, 8), 0, 1, true).
		AddItem(ui.status, 1, 0, false)

	ui.scores = tview.NewTextView().SetDynamicColors(true)
	ui.scores.SetBorder(true).SetTitle(" High scores ")
	ui.scores.SetDoneFunc(func(tcell.Key) { ui.pages.SwitchToPage("menu") })

	ui.pages = tview.NewPages().
		AddPage("menu", menu, true, true).
		AddPage("scores", centered(ui.scores, 40, scores.MaxEntries+2), true, false)
}

func (ui *menuUI) openScores() {
	ui.scores.SetText("Loading...")
	ui.pages.SwitchToPage("scores")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		records, err := ui.client.Top(ctx)
		ui.app.QueueUpdateDraw(func() {
			if err != nil {
				ui.scores.SetText(fmt.Sprintf("[red]could not load high scores[-]\n%v", err))
				return
			}
			ui.scores.SetText(formatHighscores(records))
		})
	}()
}

func (ui *menuUI) openConfig() {
	fields := configFields(ui.cfg)
	form := tview.NewForm()
	form.SetBorder(true).SetTitle(" Config ")

	inputs := make([]*tview.InputField, len(fields))
	for i, f := range fields {
		inputs[i] = tview.NewInputField().
			SetLabel(f.label).
			SetText(strconv.Itoa(f.value)).
			SetFieldWidth(6).
			SetAcceptanceFunc(tview.InputFieldInteger)
		form.AddFormItem(inputs[i])
	}

	closeForm := func() {
		ui.pages.RemovePage("config")
		ui.pages.SwitchToPage("menu")
	}
	form.AddButton("Save", func() {
		values := make([]string, len(inputs))
		for i, in := range inputs {
			values[i] = in.GetText()
		}
		cfg, err := applyConfigFields(ui.cfg, values)
		if err != nil {
			ui.status.SetText(fmt.Sprintf(" [white:red] %v[-:-] ", err))
			return
		}
		ui.cfg = cfg
		ui.status.SetText(" [black:green] saved[-:-] applies to new spawns ")
		closeForm()
	})
	form.AddButton("Cancel", closeForm)
	form.SetCancelFunc(closeForm)

	ui.pages.AddPage("config", centered(form, 44, 2*len(fields)+5), true, true)
}

type configField struct {
	label string
	value int
}

func configFields(cfg game.Config) []configField {
	return []configField{
		{"Enemy speed: ", cfg.EnemySpeed},
		{"Object spawn interval (s): ", cfg.ObjectSpawnInterval},
		{"Object split time (s): ", cfg.ObjectSplitTime},
		{"Enemy lifespan (s): ", cfg.EnemyLifespan},
		{"Object max splits: ", cfg.ObjectMaxSplits},
	}
}

// applyConfigFields parses values in configFields order onto base
func applyConfigFields(base game.Config, values []string) (game.Config, error) {
	targets := []*int{
		&base.EnemySpeed,
		&base.ObjectSpawnInterval,
		&base.ObjectSplitTime,
		&base.EnemyLifespan,
		&base.ObjectMaxSplits,
	}
	if len(values) != len(targets) {
		return base, fmt.Errorf("want %d values, got %d", len(targets), len(values))
	}
	for i, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return base, fmt.Errorf("%s not a number", strings.TrimSuffix(configFields(base)[i].label, ": "))
		}
		*targets[i] = n
	}
	if err := base.Validate(); err != nil {
		return base, err
	}
	return base, nil
}

func formatHighscores(records []scores.Record) string {
	if len(records) == 0 {
		return "No scores yet"
	}
	var b strings.Builder
	for i, r := range records {
		fmt.Fprintf(&b, "%2d. Score: %d - Time: %.2fs\n", i+1, r.Score, r.Time)
	}
	return strings.TrimRight(b.String(), "\n")
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
